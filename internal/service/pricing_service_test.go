package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/build-with-chris/pepe-api/internal/models"
)

func defaultPricing() *PricingService {
	return NewPricingService(PricingConfig{
		PrivateMinFactor: 0.6,
		RatePerKm:        0.5,
		AgencyFeePct:     20,
	}, nil)
}

// band computes the expected spread the way the calculator does: agency
// fee first, then the fixed add-ons, then ±20%. Assertions allow one
// euro of slack for float truncation.
func band(basePrice, fixedFees float64) (float64, float64) {
	total := basePrice*1.2 + fixedFees
	return total * 0.8, total * 1.2
}

func TestPricingPrivatePartyUsesLoweredFloor(t *testing.T) {
	svc := defaultPricing()
	// All factor scores zero: the quote sits on the lowered floor 500*0.6.
	min, max := svc.Calculate(PriceParams{
		BaseMin:   500,
		BaseMax:   1000,
		EventType: models.EventPrivateParty,
		Duration:  5,
		IsIndoor:  true,
	})
	wantMin, wantMax := band(300, 0)
	assert.InDelta(t, wantMin, float64(min), 1)
	assert.InDelta(t, wantMax, float64(max), 1)
}

func TestPricingNonPrivateKeepsFullFloor(t *testing.T) {
	svc := defaultPricing()
	private, _ := svc.Calculate(PriceParams{BaseMin: 500, BaseMax: 1000, EventType: models.EventPrivateParty, Duration: 5, IsIndoor: true})
	street, _ := svc.Calculate(PriceParams{BaseMin: 500, BaseMax: 1000, EventType: models.EventStreetShow, Duration: 5, IsIndoor: true})
	assert.Greater(t, street, private)
}

func TestPricingCorporateTopsTheBand(t *testing.T) {
	svc := defaultPricing()
	// Every factor score maxed: interpolation lands on base_max, plus
	// both tech fees.
	min, max := svc.Calculate(PriceParams{
		BaseMin:    500,
		BaseMax:    1000,
		EventType:  models.EventCorporate,
		NumGuests:  600,
		Duration:   45,
		IsWeekend:  true,
		IsIndoor:   false,
		NeedsLight: true,
		NeedsSound: true,
	})
	wantMin, wantMax := band(1000, 900)
	assert.InDelta(t, wantMin, float64(min), 1)
	assert.InDelta(t, wantMax, float64(max), 1)
}

func TestPricingDistanceSurchargesAreTiered(t *testing.T) {
	svc := defaultPricing()
	base := PriceParams{BaseMin: 500, BaseMax: 1000, EventType: models.EventPrivateParty, Duration: 5, IsIndoor: true}

	near := base
	near.DistanceKm = 100
	mid := base
	mid.DistanceKm = 300
	far := base
	far.DistanceKm = 600

	nearMin, _ := svc.Calculate(near)
	midMin, _ := svc.Calculate(mid)
	farMin, _ := svc.Calculate(far)

	wantNear, _ := band(300, 50)
	wantMid, _ := band(300, 350)
	wantFar, _ := band(300, 600)
	assert.InDelta(t, wantNear, float64(nearMin), 1)
	assert.InDelta(t, wantMid, float64(midMin), 1)
	assert.InDelta(t, wantFar, float64(farMin), 1)
	assert.Greater(t, midMin, nearMin)
	assert.Greater(t, farMin, midMin)
}

func TestPricingMunichDiscount(t *testing.T) {
	svc := defaultPricing()
	params := PriceParams{
		BaseMin:   500,
		BaseMax:   1000,
		EventType: models.EventPrivateParty,
		Duration:  5,
		IsIndoor:  true,
	}
	baseMin, _ := svc.Calculate(params)

	params.EventAddress = "Marienplatz 1, 80331 München"
	discountedMin, _ := svc.Calculate(params)

	wantMin, _ := band(300, -100)
	assert.InDelta(t, wantMin, float64(discountedMin), 1)
	assert.Less(t, discountedMin, baseMin)
}

func TestPricingTravelFeeScalesWithTeam(t *testing.T) {
	svc := defaultPricing()
	base := PriceParams{BaseMin: 500, BaseMax: 1000, EventType: models.EventPrivateParty, Duration: 5, IsIndoor: true, DistanceKm: 100}

	solo := base
	solo.TeamSize = "solo"
	duo := base
	duo.TeamSize = "duo"
	counted := base
	counted.TeamCount = 4

	soloMin, _ := svc.Calculate(solo)
	duoMin, _ := svc.Calculate(duo)
	countedMin, _ := svc.Calculate(counted)

	wantSolo, _ := band(300, 50)
	wantDuo, _ := band(300, 100)
	wantCounted, _ := band(300, 200)
	assert.InDelta(t, wantSolo, float64(soloMin), 1)
	assert.InDelta(t, wantDuo, float64(duoMin), 1)
	assert.InDelta(t, wantCounted, float64(countedMin), 1)
}

func TestPricingUnknownEventTypeScoresMiddle(t *testing.T) {
	svc := defaultPricing()
	min, _ := svc.Calculate(PriceParams{BaseMin: 500, BaseMax: 1000, EventType: "Gala", Duration: 5, IsIndoor: true})
	// score = 0.5/5, interpolated from the full floor 500.
	wantMin, _ := band(550, 0)
	assert.InDelta(t, wantMin, float64(min), 1)
}

func TestPricingSpreadIsTwentyPercent(t *testing.T) {
	svc := defaultPricing()
	min, max := svc.Calculate(PriceParams{BaseMin: 1000, BaseMax: 1000, EventType: models.EventCorporate, Duration: 45})
	assert.InEpsilon(t, 1.5, float64(max)/float64(min), 0.01)
}
