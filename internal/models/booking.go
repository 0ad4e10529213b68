package models

import "time"

// Event types mirror the legacy booking wizard's closed set.
const (
	EventPrivateParty = "Private Feier"
	EventCorporate    = "Firmenfeier"
	EventTeamEvent    = "Teamevent"
	EventStreetShow   = "Streetshow"
)

// BookingRequest is an inbound client inquiry for a show. The stored
// price_min/price_max hold the estimate computed at submission time.
type BookingRequest struct {
	ID              string    `db:"id" json:"id"`
	ArtistID        *string   `db:"artist_id" json:"artist_id,omitempty"`
	ClientName      string    `db:"client_name" json:"client_name"`
	ClientEmail     string    `db:"client_email" json:"client_email"`
	EventType       string    `db:"event_type" json:"event_type"`
	EventDate       time.Time `db:"event_date" json:"-"`
	EventAddress    *string   `db:"event_address" json:"event_address,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	NumGuests       int       `db:"num_guests" json:"num_guests"`
	DistanceKm      float64   `db:"distance_km" json:"distance_km"`
	IsIndoor        bool      `db:"is_indoor" json:"is_indoor"`
	NeedsLight      bool      `db:"needs_light" json:"needs_light"`
	NeedsSound      bool      `db:"needs_sound" json:"needs_sound"`
	TeamSize        string    `db:"team_size" json:"team_size"`
	PriceMin        int       `db:"price_min" json:"price_min"`
	PriceMax        int       `db:"price_max" json:"price_max"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
