package models

import "time"

// AvailabilitySlot marks a single calendar date on which an artist is
// bookable. Dates are calendar days only; the backend enforces uniqueness
// per (artist_id, date).
type AvailabilitySlot struct {
	ID        string    `db:"id" json:"id"`
	ArtistID  string    `db:"artist_id" json:"artist_id"`
	Date      time.Time `db:"date" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
