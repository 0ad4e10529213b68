package dto

// AddSlotRequest adds a single available day.
type AddSlotRequest struct {
	Date string `json:"date" validate:"required"`
}

// AddRangeRequest adds every day of an inclusive date range.
type AddRangeRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// AddRuleRequest adds days generated by an RFC 5545 recurrence rule,
// e.g. "FREQ=WEEKLY;BYDAY=SA,SU;COUNT=10".
type AddRuleRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	Rule      string `json:"rule" validate:"required"`
	Limit     int    `json:"limit" validate:"omitempty,gte=1,lte=366"`
}

// SlotResponse is the wire shape of one availability slot. Dates travel
// as plain ISO calendar dates, never timestamps.
type SlotResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// SlotListResponse wraps an artist's slots.
type SlotListResponse struct {
	ArtistID string         `json:"artist_id"`
	Slots    []SlotResponse `json:"slots"`
}

// BulkResult reports how a bulk mutation went.
type BulkResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped"`
}
