package models

import "time"

// Category classifies a food item on the pick screen.
type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryProduce Category = "produce"
	CategoryDrink   Category = "drink"
	CategorySnack   Category = "snack"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryMain,
	CategorySide,
	CategoryProduce,
	CategoryDrink,
	CategorySnack,
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FoodItem represents a selectable catalog entry. Deletion is soft: IsActive
// is cleared so past choices referencing the item keep resolving.
type FoodItem struct {
	ID        int64     `json:"id"`
	FamilyID  int64     `json:"family_id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	Category  Category  `json:"category"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// FoodItemUpdate carries optional fields for a partial food item update.
type FoodItemUpdate struct {
	Name     *string   `json:"name"`
	Emoji    *string   `json:"emoji"`
	Category *Category `json:"category"`
}

// FilterByCategory returns items matching the category, or all items when
// category is nil.
func FilterByCategory(items []FoodItem, category *Category) []FoodItem {
	if category == nil {
		return items
	}
	var filtered []FoodItem
	for _, item := range items {
		if item.Category == *category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
