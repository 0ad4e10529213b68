package models

// Closed sets for the gage criteria enumerations. The German values are the
// wire format the legacy clients already store; they are not translated.
const (
	StageExp0to2  = "0-2"
	StageExp3to5  = "3-5"
	StageExp6to10 = "6-10"
	StageExp10Plus = "10+"

	EmploymentFullTime = "vollzeit"
	EmploymentPartTime = "teilzeit"
	EmploymentHobby    = "hobby"

	AwardsInternational = "international"
	AwardsNational      = "national"
	AwardsRegional      = "regional"
	AwardsLocal         = "lokal"
	AwardsNone          = "keine"
)

// GageCriteria is the fixed-shape criteria object an artist edits.
type GageCriteria struct {
	CircusEducation bool    `json:"circus_education"`
	StageExperience *string `json:"stage_experience" validate:"omitempty,oneof=0-2 3-5 6-10 10+"`
	EmploymentType  *string `json:"employment_type" validate:"omitempty,oneof=vollzeit teilzeit hobby"`
	AwardsLevel     *string `json:"awards_level" validate:"omitempty,oneof=international national regional lokal keine"`
	PepeYears       int     `json:"pepe_years" validate:"gte=0,lte=50"`
	PepeExclusivity bool    `json:"pepe_exclusivity"`
}

// GageRange is a min/max price band in whole euros.
type GageRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GageInfo carries the server-computed fee figures; clients only display
// these, they never derive them.
type GageInfo struct {
	CalculatedGage *int      `json:"calculated_gage"`
	AdminOverride  *int      `json:"admin_override"`
	CurrentRange   GageRange `json:"current_range"`
}

// GageStatus is the payload of GET /api/artists/me/gage-criteria.
type GageStatus struct {
	ArtistID string       `json:"artist_id"`
	Criteria GageCriteria `json:"criteria"`
	GageInfo GageInfo     `json:"gage_info"`
}

// GageUpdateResult is the payload of PUT /api/artists/me/gage-criteria.
type GageUpdateResult struct {
	Message        string    `json:"message"`
	ArtistID       string    `json:"artist_id"`
	CalculatedGage int       `json:"calculated_gage"`
	PriceRange     GageRange `json:"price_range"`
	AdminOverride  *int      `json:"admin_override"`
}

// GageComponent is one weighted contribution in the calculation breakdown.
type GageComponent struct {
	Value        string  `json:"value"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// GageBreakdown is the payload of GET /api/artists/me/gage-calculation.
type GageBreakdown struct {
	TotalGage  int                      `json:"total_gage"`
	BaseRange  string                   `json:"base_range"`
	Components map[string]GageComponent `json:"components"`
}
