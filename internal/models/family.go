package models

import "time"

// Family is the tenant boundary: one parent-owned scope containing the
// child roster, the food catalog, and the daily choices. Each account owns
// at most one family.
type Family struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
