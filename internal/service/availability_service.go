package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/pkg/dates"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/export"
)

const maxRuleOccurrences = 366

type availabilityStore interface {
	ListByArtist(ctx context.Context, artistID string, from *time.Time) ([]models.AvailabilitySlot, error)
	FindByArtistAndDate(ctx context.Context, artistID string, date time.Time) (*models.AvailabilitySlot, error)
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	Delete(ctx context.Context, id, artistID string) error
}

// AvailabilityService manages an artist's available days.
type AvailabilityService struct {
	repo     availabilityStore
	validate *validator.Validate
	logger   *zap.Logger
	csv      *export.CSVExporter
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(repo availabilityStore, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{repo: repo, validate: validate, logger: logger, csv: export.NewCSVExporter()}
}

// List returns the artist's slots. With futureOnly set, days before
// today are filtered out server-side.
func (s *AvailabilityService) List(ctx context.Context, artistID string, futureOnly bool) (*dto.SlotListResponse, error) {
	var from *time.Time
	if futureOnly {
		today := dates.ToLocalDate(time.Now())
		from = &today
	}

	slots, err := s.repo.ListByArtist(ctx, artistID, from)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list availability: %v", err))
	}

	resp := &dto.SlotListResponse{ArtistID: artistID, Slots: make([]dto.SlotResponse, 0, len(slots))}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, dto.SlotResponse{ID: slot.ID, Date: dates.FormatISODate(slot.Date)})
	}
	return resp, nil
}

// Add inserts one available day. Adding a date that already exists is a
// conflict, not a silent no-op, so clients can reconcile their state.
func (s *AvailabilityService) Add(ctx context.Context, artistID string, req dto.AddSlotRequest) (*dto.SlotResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	date, err := dates.ParseISODate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", req.Date))
	}

	if _, err := s.repo.FindByArtistAndDate(ctx, artistID, date); err == nil {
		return nil, appErrors.ErrDuplicateSlot
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("check slot: %v", err))
	}

	slot := &models.AvailabilitySlot{ArtistID: artistID, Date: date}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("create slot: %v", err))
	}
	return &dto.SlotResponse{ID: slot.ID, Date: dates.FormatISODate(slot.Date)}, nil
}

// AddRange inserts every day of the inclusive range, skipping days the
// artist already has.
func (s *AvailabilityService) AddRange(ctx context.Context, artistID string, req dto.AddRangeRequest) (*dto.BulkResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	start, err := dates.ParseISODate(req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start_date %q", req.StartDate))
	}
	end, err := dates.ParseISODate(req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid end_date %q", req.EndDate))
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must not be before start_date")
	}

	return s.addDays(ctx, artistID, dates.DateRange(start, end))
}

// AddRule expands an RFC 5545 recurrence rule from the start date and
// inserts the generated days.
func (s *AvailabilityService) AddRule(ctx context.Context, artistID string, req dto.AddRuleRequest) (*dto.BulkResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	start, err := dates.ParseISODate(req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid start_date %q", req.StartDate))
	}

	rule, err := rrule.StrToRRule(req.Rule)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid recurrence rule: %v", err))
	}
	rule.DTStart(start)

	limit := req.Limit
	if limit <= 0 || limit > maxRuleOccurrences {
		limit = maxRuleOccurrences
	}
	horizon := dates.AddDays(start, maxRuleOccurrences)
	occurrences := rule.Between(start, horizon, true)
	if len(occurrences) > limit {
		occurrences = occurrences[:limit]
	}
	if len(occurrences) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rule yields no dates within a year")
	}

	days := make([]time.Time, 0, len(occurrences))
	for _, occ := range occurrences {
		days = append(days, dates.ToLocalDate(occ))
	}
	return s.addDays(ctx, artistID, days)
}

func (s *AvailabilityService) addDays(ctx context.Context, artistID string, days []time.Time) (*dto.BulkResult, error) {
	result := &dto.BulkResult{Added: []string{}, Skipped: []string{}}
	for _, day := range days {
		iso := dates.FormatISODate(day)
		if _, err := s.repo.FindByArtistAndDate(ctx, artistID, day); err == nil {
			result.Skipped = append(result.Skipped, iso)
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("check slot: %v", err))
		}

		slot := &models.AvailabilitySlot{ArtistID: artistID, Date: day}
		if err := s.repo.Create(ctx, slot); err != nil {
			return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("create slot: %v", err))
		}
		result.Added = append(result.Added, iso)
	}
	s.logger.Info("bulk availability applied",
		zap.String("artist_id", artistID),
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

// Remove deletes a slot, scoped to the owning artist.
func (s *AvailabilityService) Remove(ctx context.Context, artistID, slotID string) error {
	if err := s.repo.Delete(ctx, slotID, artistID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
		}
		return appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("delete slot: %v", err))
	}
	return nil
}

// ExportCSV renders the artist's availability as CSV.
func (s *AvailabilityService) ExportCSV(ctx context.Context, artistID string) ([]byte, error) {
	slots, err := s.repo.ListByArtist(ctx, artistID, nil)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list availability: %v", err))
	}

	data := export.Dataset{Headers: []string{"date", "weekday"}}
	for _, slot := range slots {
		data.Rows = append(data.Rows, map[string]string{
			"date":    dates.FormatISODate(slot.Date),
			"weekday": slot.Date.Weekday().String(),
		})
	}
	return s.csv.Render(data)
}

// ICalFeed renders the artist's availability as an iCalendar feed of
// all-day events, consumable by external calendar apps.
func (s *AvailabilityService) ICalFeed(ctx context.Context, artistID, artistName string) (string, error) {
	slots, err := s.repo.ListByArtist(ctx, artistID, nil)
	if err != nil {
		return "", appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list availability: %v", err))
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//PepeShows//Availability//DE")

	for _, slot := range slots {
		event := cal.AddEvent(fmt.Sprintf("availability-%s@pepeshows.de", slot.ID))
		event.SetAllDayStartAt(slot.Date)
		event.SetAllDayEndAt(dates.AddDays(slot.Date, 1))
		event.SetSummary(fmt.Sprintf("%s verfügbar", artistName))
		event.SetDtStampTime(slot.CreatedAt)
	}
	return cal.Serialize(), nil
}
