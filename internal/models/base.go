package models

import "time"

// Base contains common columns for all tables. Rows are hard-deleted:
// the category cascade and the (user_id, name, type) unique index both
// depend on deleted rows actually disappearing.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
