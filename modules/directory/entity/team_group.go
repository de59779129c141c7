package entity

import (
	"time"

	"github.com/lib/pq"
)

// TeamGroup is a named set of attendee emails, used to pull whole teams into
// a meeting request at once.
type TeamGroup struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Color       string         `db:"color" json:"color,omitempty"`
	Members     pq.StringArray `db:"members" json:"members"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}
