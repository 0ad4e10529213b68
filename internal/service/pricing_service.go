package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/internal/models"
)

// Event scores drive the interpolation between an artist's price floor
// and ceiling. Corporate events anchor the top of the band.
var eventScores = map[string]float64{
	models.EventPrivateParty: 0.0,
	models.EventCorporate:    1.0,
	models.EventTeamEvent:    0.7,
	models.EventStreetShow:   0.3,
}

// PriceParams are the inputs to a quote.
type PriceParams struct {
	BaseMin      float64
	BaseMax      float64
	EventType    string
	EventAddress string
	NumGuests    int
	Duration     int
	DistanceKm   float64
	IsWeekend    bool
	IsIndoor     bool
	NeedsLight   bool
	NeedsSound   bool
	TeamSize     string
	TeamCount    int
}

// PricingConfig tunes the calculator.
type PricingConfig struct {
	PrivateMinFactor float64
	RatePerKm        float64
	AgencyFeePct     float64
}

// PricingService estimates a booking's price band from the requesting
// artist's base range and the event's parameters.
type PricingService struct {
	cfg    PricingConfig
	logger *zap.Logger
}

// NewPricingService constructs a PricingService.
func NewPricingService(cfg PricingConfig, logger *zap.Logger) *PricingService {
	if cfg.PrivateMinFactor <= 0 {
		cfg.PrivateMinFactor = 0.6
	}
	if cfg.RatePerKm <= 0 {
		cfg.RatePerKm = 0.5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PricingService{cfg: cfg, logger: logger}
}

// Calculate interpolates within [min_floor, base_max] using averaged
// factor scores, applies the agency fee multiplicatively, then adds the
// fixed tech, distance and travel fees. The returned band is the ±20%
// display spread around the single computed total.
func (s *PricingService) Calculate(p PriceParams) (int, int) {
	minFloor := p.BaseMin
	if p.EventType == models.EventPrivateParty {
		minFloor = p.BaseMin * s.cfg.PrivateMinFactor
	}
	if minFloor > p.BaseMax {
		minFloor = p.BaseMax
	}

	score := (s.eventScore(p.EventType) +
		guestScore(p.NumGuests) +
		durationScore(p.Duration) +
		boolScore(!p.IsIndoor) +
		boolScore(p.IsWeekend)) / 5.0

	basePrice := minFloor + score*(p.BaseMax-minFloor)

	techFee := 0.0
	if p.NeedsLight {
		techFee += 450
	}
	if p.NeedsSound {
		techFee += 450
	}

	surcharge := 0.0
	if p.DistanceKm >= 600 {
		surcharge += 300
	} else if p.DistanceKm >= 300 {
		surcharge += 200
	}
	if isMunich(p.EventAddress) {
		surcharge -= 100
	}

	people := teamHeadcount(p.TeamSize, p.TeamCount)
	travelFee := p.DistanceKm * s.cfg.RatePerKm * float64(people)

	total := basePrice * (1 + s.cfg.AgencyFeePct/100)
	total += techFee + surcharge + travelFee

	return int(total * 0.8), int(total * 1.2)
}

func (s *PricingService) eventScore(eventType string) float64 {
	if score, ok := eventScores[eventType]; ok {
		return score
	}
	return 0.5
}

func guestScore(guests int) float64 {
	switch {
	case guests <= 200:
		return 0.0
	case guests <= 500:
		return 0.5
	default:
		return 1.0
	}
}

// durationScore runs linearly from 5 minutes (0) to 45 minutes (1).
func durationScore(minutes int) float64 {
	clamped := minutes
	if clamped < 5 {
		clamped = 5
	}
	if clamped > 45 {
		clamped = 45
	}
	return float64(clamped-5) / 40.0
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func teamHeadcount(teamSize string, teamCount int) int {
	if teamCount > 0 {
		return teamCount
	}
	switch strings.ToLower(strings.TrimSpace(teamSize)) {
	case "duo", "2":
		return 2
	case "trio", "3":
		return 3
	case "quartet", "4":
		return 4
	default:
		return 1
	}
}

// isMunich checks the city token at the end of the address, since
// Munich-based acts skip part of the travel surcharge.
func isMunich(address string) bool {
	if address == "" {
		return false
	}
	parts := strings.Split(address, ",")
	fields := strings.Fields(strings.TrimSpace(parts[len(parts)-1]))
	if len(fields) == 0 {
		return false
	}
	switch strings.ToLower(fields[len(fields)-1]) {
	case "münchen", "muenchen", "munich":
		return true
	}
	return false
}
