package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build-with-chris/pepe-api/internal/models"
)

type mockArtistStore struct {
	artists map[string]*models.Artist
	updated int
}

func newMockArtistStore(artists ...*models.Artist) *mockArtistStore {
	store := &mockArtistStore{artists: make(map[string]*models.Artist)}
	for _, a := range artists {
		store.artists[a.ID] = a
	}
	return store
}

func (m *mockArtistStore) FindByID(_ context.Context, id string) (*models.Artist, error) {
	artist, ok := m.artists[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *artist
	return &clone, nil
}

func (m *mockArtistStore) Update(_ context.Context, artist *models.Artist) error {
	clone := *artist
	m.artists[artist.ID] = &clone
	m.updated++
	return nil
}

func (m *mockArtistStore) ListAll(_ context.Context, _ int) ([]models.Artist, error) {
	var out []models.Artist
	for _, a := range m.artists {
		out = append(out, *a)
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestGageCalculateTopArtist(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	artist := &models.Artist{
		CircusEducation: true,
		StageExperience: strPtr(models.StageExp10Plus),
		EmploymentType:  strPtr(models.EmploymentFullTime),
		AwardsLevel:     strPtr(models.AwardsInternational),
		PepeYears:       5,
		PepeExclusivity: true,
	}
	assert.Equal(t, 2500, svc.Calculate(artist))
}

func TestGageCalculateBeginner(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	artist := &models.Artist{
		StageExperience: strPtr(models.StageExp0to2),
		EmploymentType:  strPtr(models.EmploymentHobby),
		AwardsLevel:     strPtr(models.AwardsNone),
	}
	assert.Equal(t, 450, svc.Calculate(artist))
}

func TestGageCalculateMidCareer(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	artist := &models.Artist{
		StageExperience: strPtr(models.StageExp3to5),
		EmploymentType:  strPtr(models.EmploymentPartTime),
		AwardsLevel:     strPtr(models.AwardsLocal),
		PepeYears:       2,
		PepeExclusivity: true,
	}
	assert.Equal(t, 975, svc.Calculate(artist))
}

func TestGageCalculateUnknownCriteriaFloor(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	// Nothing filled in: only the 0.1 education floor contributes.
	assert.Equal(t, 250, svc.Calculate(&models.Artist{}))
}

func TestGageCalculateRoundsToNearest25(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	artist := &models.Artist{
		CircusEducation: true,
		StageExperience: strPtr(models.StageExp10Plus),
		EmploymentType:  strPtr(models.EmploymentFullTime),
		AwardsLevel:     strPtr(models.AwardsInternational),
		PepeYears:       2,
	}
	gage := svc.Calculate(artist)
	assert.Equal(t, 2425, gage)
	assert.Zero(t, gage%25)
}

func TestGageCalculateAdminOverrideShortCircuits(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	override := 1800
	artist := &models.Artist{
		StageExperience:   strPtr(models.StageExp0to2),
		AdminGageOverride: &override,
	}
	assert.Equal(t, 1800, svc.Calculate(artist))
}

func TestGageUpdateCriteriaPersistsSpread(t *testing.T) {
	store := newMockArtistStore(&models.Artist{ID: "artist-1", Name: "Luna", Email: "luna@pepeshows.de"})
	svc := NewGageService(store, nil, nil, 200, 2500)

	result, err := svc.UpdateCriteria(context.Background(), "artist-1", models.GageCriteria{
		CircusEducation: true,
		StageExperience: strPtr(models.StageExp10Plus),
		EmploymentType:  strPtr(models.EmploymentFullTime),
		AwardsLevel:     strPtr(models.AwardsInternational),
		PepeYears:       5,
		PepeExclusivity: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2500, result.CalculatedGage)
	assert.Equal(t, 2000, result.PriceRange.Min)
	assert.Equal(t, 3000, result.PriceRange.Max)

	saved := store.artists["artist-1"]
	require.NotNil(t, saved.CalculatedGage)
	assert.Equal(t, 2500, *saved.CalculatedGage)
	assert.Equal(t, 2000, saved.PriceMin)
	assert.Equal(t, 3000, saved.PriceMax)
}

func TestGageUpdateCriteriaRejectsBadEnum(t *testing.T) {
	store := newMockArtistStore(&models.Artist{ID: "artist-1"})
	svc := NewGageService(store, nil, nil, 200, 2500)

	_, err := svc.UpdateCriteria(context.Background(), "artist-1", models.GageCriteria{
		StageExperience: strPtr("20+"),
	})
	require.Error(t, err)
	assert.Zero(t, store.updated)
}

func TestGageBreakdownComponents(t *testing.T) {
	store := newMockArtistStore(&models.Artist{
		ID:              "artist-1",
		CircusEducation: true,
		StageExperience: strPtr(models.StageExp6to10),
		PepeYears:       3,
		PepeExclusivity: true,
	})
	svc := NewGageService(store, nil, nil, 200, 2500)

	breakdown, err := svc.Breakdown(context.Background(), "artist-1")
	require.NoError(t, err)
	assert.Equal(t, "200€ - 2500€", breakdown.BaseRange)
	require.Len(t, breakdown.Components, 5)

	exp := breakdown.Components["stage_experience"]
	assert.Equal(t, models.StageExp6to10, exp.Value)
	assert.InDelta(t, 0.7, exp.Score, 1e-9)
	assert.InDelta(t, 0.28, exp.Contribution, 1e-9)

	commit := breakdown.Components["pepe_commitment"]
	assert.InDelta(t, 0.85, commit.Score, 1e-9)

	unset := breakdown.Components["employment_type"]
	assert.Equal(t, "Nicht angegeben", unset.Value)
	assert.Zero(t, unset.Score)
}

func TestGageExportBreakdownPDF(t *testing.T) {
	store := newMockArtistStore(&models.Artist{
		ID:              "artist-1",
		StageExperience: strPtr(models.StageExp3to5),
	})
	svc := NewGageService(store, nil, nil, 200, 2500)

	payload, err := svc.ExportBreakdownPDF(context.Background(), "artist-1")
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestGageStatusNotFound(t *testing.T) {
	svc := NewGageService(newMockArtistStore(), nil, nil, 200, 2500)
	_, err := svc.GetStatus(context.Background(), "missing")
	require.Error(t, err)
}

func TestGageSetOverrideAndClear(t *testing.T) {
	store := newMockArtistStore(&models.Artist{ID: "artist-1", StageExperience: strPtr(models.StageExp0to2)})
	svc := NewGageService(store, nil, nil, 200, 2500)

	override := 1500
	result, err := svc.SetOverride(context.Background(), "artist-1", &override)
	require.NoError(t, err)
	assert.Equal(t, 1500, result.CalculatedGage)
	assert.Equal(t, 1200, result.PriceRange.Min)
	assert.Equal(t, 1800, result.PriceRange.Max)

	result, err = svc.SetOverride(context.Background(), "artist-1", nil)
	require.NoError(t, err)
	assert.Nil(t, result.AdminOverride)
	assert.NotEqual(t, 1500, result.CalculatedGage)
}

func TestGageRecalculateAllSkipsUnchanged(t *testing.T) {
	gage := 250
	store := newMockArtistStore(
		&models.Artist{ID: "artist-1", CalculatedGage: &gage},
		&models.Artist{ID: "artist-2", StageExperience: strPtr(models.StageExp10Plus)},
	)
	svc := NewGageService(store, nil, nil, 200, 2500)

	updated, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}
