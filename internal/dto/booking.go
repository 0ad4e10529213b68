package dto

// BookingCreateRequest is the public inquiry form.
type BookingCreateRequest struct {
	ClientName      string  `json:"client_name" validate:"required,min=2,max=120"`
	ClientEmail     string  `json:"client_email" validate:"required,email"`
	EventType       string  `json:"event_type" validate:"required"`
	EventDate       string  `json:"event_date" validate:"required"`
	EventAddress    *string `json:"event_address" validate:"omitempty,max=255"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0,lte=480"`
	NumGuests       int     `json:"num_guests" validate:"gte=0"`
	DistanceKm      float64 `json:"distance_km" validate:"gte=0"`
	IsIndoor        bool    `json:"is_indoor"`
	NeedsLight      bool    `json:"needs_light"`
	NeedsSound      bool    `json:"needs_sound"`
	TeamSize        string  `json:"team_size"`
	ArtistID        *string `json:"artist_id"`
}

// BookingCreateResponse returns the stored request and its estimate.
type BookingCreateResponse struct {
	RequestID string `json:"request_id"`
	PriceMin  int    `json:"price_min"`
	PriceMax  int    `json:"price_max"`
	Status    string `json:"status"`
}

// PriceEstimate is a quote without persistence.
type PriceEstimate struct {
	PriceMin int `json:"price_min"`
	PriceMax int `json:"price_max"`
}
