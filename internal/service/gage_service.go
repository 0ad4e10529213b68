package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/internal/models"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/export"
)

// Gage criteria weights. Stage experience dominates; the commitment
// component rewards tenure and exclusivity with the agency.
const (
	weightStageExperience = 0.40
	weightCircusEducation = 0.25
	weightEmploymentType  = 0.20
	weightAwardsLevel     = 0.10
	weightPepeCommitment  = 0.05
)

var stageExperienceScores = map[string]float64{
	models.StageExp0to2:   0.1,
	models.StageExp3to5:   0.4,
	models.StageExp6to10:  0.7,
	models.StageExp10Plus: 1.0,
}

var employmentTypeScores = map[string]float64{
	models.EmploymentFullTime: 1.0,
	models.EmploymentPartTime: 0.5,
	models.EmploymentHobby:    0.2,
}

var awardsScores = map[string]float64{
	models.AwardsInternational: 1.0,
	models.AwardsNational:      0.8,
	models.AwardsRegional:      0.4,
	models.AwardsLocal:         0.2,
	models.AwardsNone:          0.05,
}

type gageArtistStore interface {
	FindByID(ctx context.Context, id string) (*models.Artist, error)
	Update(ctx context.Context, artist *models.Artist) error
	ListAll(ctx context.Context, limit int) ([]models.Artist, error)
}

// GageService computes and persists artist fees from the weighted
// criteria model.
type GageService struct {
	repo     gageArtistStore
	validate *validator.Validate
	logger   *zap.Logger
	pdf      *export.PDFExporter
	baseMin  int
	baseMax  int
}

// NewGageService constructs a GageService.
func NewGageService(repo gageArtistStore, validate *validator.Validate, logger *zap.Logger, baseMin, baseMax int) *GageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseMin <= 0 {
		baseMin = 200
	}
	if baseMax <= baseMin {
		baseMax = 2500
	}
	return &GageService{repo: repo, validate: validate, logger: logger, pdf: export.NewPDFExporter(), baseMin: baseMin, baseMax: baseMax}
}

// Calculate returns the gage in whole euros, rounded to the nearest 25.
// An admin override short-circuits the criteria model entirely.
func (s *GageService) Calculate(artist *models.Artist) int {
	if artist.AdminGageOverride != nil && *artist.AdminGageOverride > 0 {
		return *artist.AdminGageOverride
	}

	total := s.totalScore(artist)
	gage := float64(s.baseMin) + float64(s.baseMax-s.baseMin)*total
	return int(math.Round(gage/25) * 25)
}

func (s *GageService) totalScore(artist *models.Artist) float64 {
	total := 0.0
	total += lookupScore(stageExperienceScores, artist.StageExperience) * weightStageExperience

	eduScore := 0.1
	if artist.CircusEducation {
		eduScore = 1.0
	}
	total += eduScore * weightCircusEducation

	total += lookupScore(employmentTypeScores, artist.EmploymentType) * weightEmploymentType
	total += lookupScore(awardsScores, artist.AwardsLevel) * weightAwardsLevel
	total += s.commitmentScore(artist) * weightPepeCommitment
	return total
}

// commitmentScore blends tenure (15% per year, capped at 0.6) with a
// flat 0.4 exclusivity bonus.
func (s *GageService) commitmentScore(artist *models.Artist) float64 {
	score := math.Min(float64(artist.PepeYears)*0.15, 0.6)
	if artist.PepeExclusivity {
		score += 0.4
	}
	return math.Min(score, 1.0)
}

func lookupScore(table map[string]float64, value *string) float64 {
	if value == nil {
		return 0.0
	}
	return table[*value]
}

// PriceRange applies the ±20% display spread around a gage.
func PriceRange(gage int) models.GageRange {
	return models.GageRange{
		Min: int(float64(gage) * 0.8),
		Max: int(float64(gage) * 1.2),
	}
}

// GetStatus returns the artist's criteria and current fee figures.
func (s *GageService) GetStatus(ctx context.Context, artistID string) (*models.GageStatus, error) {
	artist, err := s.findArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	status := &models.GageStatus{
		ArtistID: artist.ID,
		Criteria: criteriaOf(artist),
		GageInfo: models.GageInfo{
			CalculatedGage: artist.CalculatedGage,
			AdminOverride:  artist.AdminGageOverride,
			CurrentRange:   models.GageRange{Min: artist.PriceMin, Max: artist.PriceMax},
		},
	}
	return status, nil
}

// UpdateCriteria validates and stores new criteria, recalculates the
// gage and pushes the resulting spread into price_min/price_max.
func (s *GageService) UpdateCriteria(ctx context.Context, artistID string, criteria models.GageCriteria) (*models.GageUpdateResult, error) {
	if err := s.validate.Struct(criteria); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	artist, err := s.findArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	artist.CircusEducation = criteria.CircusEducation
	artist.StageExperience = criteria.StageExperience
	artist.EmploymentType = criteria.EmploymentType
	artist.AwardsLevel = criteria.AwardsLevel
	artist.PepeYears = criteria.PepeYears
	artist.PepeExclusivity = criteria.PepeExclusivity

	gage := s.Calculate(artist)
	spread := PriceRange(gage)
	artist.CalculatedGage = &gage
	artist.PriceMin = spread.Min
	artist.PriceMax = spread.Max

	if err := s.repo.Update(ctx, artist); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("update gage criteria: %v", err))
	}

	s.logger.Info("gage criteria updated",
		zap.String("artist_id", artist.ID),
		zap.Int("calculated_gage", gage))

	return &models.GageUpdateResult{
		Message:        "Gage criteria updated",
		ArtistID:       artist.ID,
		CalculatedGage: gage,
		PriceRange:     spread,
		AdminOverride:  artist.AdminGageOverride,
	}, nil
}

// Breakdown explains each weighted component of the current gage.
func (s *GageService) Breakdown(ctx context.Context, artistID string) (*models.GageBreakdown, error) {
	artist, err := s.findArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	expScore := lookupScore(stageExperienceScores, artist.StageExperience)
	eduScore := 0.1
	eduValue := "Nein"
	if artist.CircusEducation {
		eduScore = 1.0
		eduValue = "Ja"
	}
	empScore := lookupScore(employmentTypeScores, artist.EmploymentType)
	awardScore := lookupScore(awardsScores, artist.AwardsLevel)
	commitScore := s.commitmentScore(artist)

	exclusive := "Nein"
	if artist.PepeExclusivity {
		exclusive = "Ja"
	}

	breakdown := &models.GageBreakdown{
		TotalGage: s.Calculate(artist),
		BaseRange: fmt.Sprintf("%d€ - %d€", s.baseMin, s.baseMax),
		Components: map[string]models.GageComponent{
			"stage_experience": {
				Value:        orUnset(artist.StageExperience),
				Score:        expScore,
				Weight:       weightStageExperience,
				Contribution: expScore * weightStageExperience,
			},
			"circus_education": {
				Value:        eduValue,
				Score:        eduScore,
				Weight:       weightCircusEducation,
				Contribution: eduScore * weightCircusEducation,
			},
			"employment_type": {
				Value:        orUnset(artist.EmploymentType),
				Score:        empScore,
				Weight:       weightEmploymentType,
				Contribution: empScore * weightEmploymentType,
			},
			"awards_level": {
				Value:        orUnset(artist.AwardsLevel),
				Score:        awardScore,
				Weight:       weightAwardsLevel,
				Contribution: awardScore * weightAwardsLevel,
			},
			"pepe_commitment": {
				Value:        fmt.Sprintf("%d Jahre, Exklusiv: %s", artist.PepeYears, exclusive),
				Score:        commitScore,
				Weight:       weightPepeCommitment,
				Contribution: commitScore * weightPepeCommitment,
			},
		},
	}
	return breakdown, nil
}

// breakdownOrder fixes the row order of the downloadable sheet.
var breakdownOrder = []string{
	"stage_experience",
	"circus_education",
	"employment_type",
	"awards_level",
	"pepe_commitment",
}

// ExportBreakdownPDF renders the calculation sheet artists download
// from the dashboard.
func (s *GageService) ExportBreakdownPDF(ctx context.Context, artistID string) ([]byte, error) {
	breakdown, err := s.Breakdown(ctx, artistID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: []string{"Kriterium", "Wert", "Score", "Gewicht", "Beitrag"}}
	for _, key := range breakdownOrder {
		component, ok := breakdown.Components[key]
		if !ok {
			continue
		}
		data.Rows = append(data.Rows, map[string]string{
			"Kriterium": key,
			"Wert":      component.Value,
			"Score":     fmt.Sprintf("%.2f", component.Score),
			"Gewicht":   fmt.Sprintf("%.2f", component.Weight),
			"Beitrag":   fmt.Sprintf("%.3f", component.Contribution),
		})
	}
	data.Rows = append(data.Rows, map[string]string{
		"Kriterium": "Gage",
		"Wert":      fmt.Sprintf("%d€ (Basis %s)", breakdown.TotalGage, breakdown.BaseRange),
	})

	return s.pdf.Render(data, "Gage-Berechnung")
}

// SetOverride stores or clears an admin gage override and reapplies the
// resulting spread.
func (s *GageService) SetOverride(ctx context.Context, artistID string, override *int) (*models.GageUpdateResult, error) {
	if override != nil && *override <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "override must be a positive amount")
	}

	artist, err := s.findArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}

	artist.AdminGageOverride = override
	gage := s.Calculate(artist)
	spread := PriceRange(gage)
	artist.CalculatedGage = &gage
	artist.PriceMin = spread.Min
	artist.PriceMax = spread.Max

	if err := s.repo.Update(ctx, artist); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("set gage override: %v", err))
	}

	message := "Gage override set"
	if override == nil {
		message = "Gage override cleared"
	}
	return &models.GageUpdateResult{
		Message:        message,
		ArtistID:       artist.ID,
		CalculatedGage: gage,
		PriceRange:     spread,
		AdminOverride:  artist.AdminGageOverride,
	}, nil
}

// RecalculateAll reruns the calculator across every artist, returning
// the number updated. Used after weight or base range changes.
func (s *GageService) RecalculateAll(ctx context.Context) (int, error) {
	artists, err := s.repo.ListAll(ctx, 0)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list artists: %v", err))
	}

	updated := 0
	for i := range artists {
		artist := &artists[i]
		gage := s.Calculate(artist)
		if artist.CalculatedGage != nil && *artist.CalculatedGage == gage {
			continue
		}
		spread := PriceRange(gage)
		artist.CalculatedGage = &gage
		artist.PriceMin = spread.Min
		artist.PriceMax = spread.Max
		if err := s.repo.Update(ctx, artist); err != nil {
			s.logger.Warn("gage recalculation failed", zap.String("artist_id", artist.ID), zap.Error(err))
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *GageService) findArtist(ctx context.Context, artistID string) (*models.Artist, error) {
	artist, err := s.repo.FindByID(ctx, artistID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "artist not found")
		}
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("load artist: %v", err))
	}
	return artist, nil
}

func criteriaOf(artist *models.Artist) models.GageCriteria {
	return models.GageCriteria{
		CircusEducation: artist.CircusEducation,
		StageExperience: artist.StageExperience,
		EmploymentType:  artist.EmploymentType,
		AwardsLevel:     artist.AwardsLevel,
		PepeYears:       artist.PepeYears,
		PepeExclusivity: artist.PepeExclusivity,
	}
}

func orUnset(v *string) string {
	if v == nil || *v == "" {
		return "Nicht angegeben"
	}
	return *v
}
