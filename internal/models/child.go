package models

import "time"

// Child represents a child profile in a family.
// DisplayOrder is a sort key only: it is assigned as the roster size at
// creation time and never renumbered, so deletions leave gaps.
type Child struct {
	ID           int64     `json:"id"`
	FamilyID     int64     `json:"family_id"`
	Name         string    `json:"name"`
	AvatarEmoji  string    `json:"avatar_emoji"`
	Color        string    `json:"color"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChildUpdate carries optional fields for a partial child update.
// Nil pointers leave the current value untouched.
type ChildUpdate struct {
	Name        *string `json:"name"`
	AvatarEmoji *string `json:"avatar_emoji"`
	Color       *string `json:"color"`
}
