package models

import "time"

// DateKeyFormat is the layout of a choice date key. Choices are keyed by
// date, never by timestamp, so "today" is a single boundary for the whole
// family.
const DateKeyFormat = "2006-01-02"

// DailyChoice records that a child completed a meal selection on a calendar
// date. At most one row exists per (child, date); resubmission replaces it.
type DailyChoice struct {
	ID          int64     `json:"id"`
	FamilyID    int64     `json:"family_id"`
	ChildID     int64     `json:"child_id"`
	ChoiceDate  string    `json:"choice_date"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// DailyChoiceItem is one selected food within a day's choice.
type DailyChoiceItem struct {
	ID            int64 `json:"id"`
	DailyChoiceID int64 `json:"daily_choice_id"`
	FoodItemID    int64 `json:"food_item_id"`
}

// ChoiceItemWithFood pairs a choice item with its resolved food row. The
// food row is included even when soft-deleted, so history stays readable.
type ChoiceItemWithFood struct {
	DailyChoiceItem
	Food FoodItem `json:"food_item"`
}

// DailyChoiceWithItems is a choice together with its resolved items.
type DailyChoiceWithItems struct {
	DailyChoice
	Items []ChoiceItemWithFood `json:"items"`
}

// ChildWithChoice is one row of the dashboard aggregate: a child and
// today's choice, or nil when the child has not chosen yet.
type ChildWithChoice struct {
	Child
	Choice *DailyChoiceWithItems `json:"daily_choice"`
}
