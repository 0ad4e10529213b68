package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/pkg/dates"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/mail"
)

type bookingStore interface {
	Create(ctx context.Context, req *models.BookingRequest) error
	FindByID(ctx context.Context, id string) (*models.BookingRequest, error)
	ListByArtist(ctx context.Context, artistID string) ([]models.BookingRequest, error)
	List(ctx context.Context) ([]models.BookingRequest, error)
}

type bookingArtistLookup interface {
	FindByID(ctx context.Context, id string) (*models.Artist, error)
}

// BookingService accepts client inquiries, prices them and notifies the
// agency inbox.
type BookingService struct {
	repo        bookingStore
	artists     bookingArtistLookup
	pricing     *PricingService
	mailer      mail.Sender
	validate    *validator.Validate
	logger      *zap.Logger
	agencyTo    string
	gageBaseMin int
	gageBaseMax int
}

// NewBookingService constructs a BookingService. The gage base range is
// the fallback band when no artist is attached to the inquiry.
func NewBookingService(repo bookingStore, artists bookingArtistLookup, pricing *PricingService, mailer mail.Sender, validate *validator.Validate, logger *zap.Logger, agencyTo string, gageBaseMin, gageBaseMax int) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = mail.NopMailer{}
	}
	return &BookingService{
		repo:        repo,
		artists:     artists,
		pricing:     pricing,
		mailer:      mailer,
		validate:    validate,
		logger:      logger,
		agencyTo:    agencyTo,
		gageBaseMin: gageBaseMin,
		gageBaseMax: gageBaseMax,
	}
}

// Estimate prices an inquiry without storing it.
func (s *BookingService) Estimate(ctx context.Context, req dto.BookingCreateRequest) (*dto.PriceEstimate, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	eventDate, err := dates.ParseISODate(req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid event_date %q, want YYYY-MM-DD", req.EventDate))
	}

	min, max, err := s.price(ctx, req, eventDate)
	if err != nil {
		return nil, err
	}
	return &dto.PriceEstimate{PriceMin: min, PriceMax: max}, nil
}

// Create stores the inquiry with its estimate and sends the agency and
// client notifications. Mail failures are logged, never surfaced: the
// request is already persisted.
func (s *BookingService) Create(ctx context.Context, req dto.BookingCreateRequest) (*dto.BookingCreateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	eventDate, err := dates.ParseISODate(req.EventDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid event_date %q, want YYYY-MM-DD", req.EventDate))
	}
	if eventDate.Before(dates.ToLocalDate(time.Now())) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event_date is in the past")
	}

	min, max, err := s.price(ctx, req, eventDate)
	if err != nil {
		return nil, err
	}

	booking := &models.BookingRequest{
		ArtistID:        req.ArtistID,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		EventType:       req.EventType,
		EventDate:       eventDate,
		EventAddress:    req.EventAddress,
		DurationMinutes: req.DurationMinutes,
		NumGuests:       req.NumGuests,
		DistanceKm:      req.DistanceKm,
		IsIndoor:        req.IsIndoor,
		NeedsLight:      req.NeedsLight,
		NeedsSound:      req.NeedsSound,
		TeamSize:        req.TeamSize,
		PriceMin:        min,
		PriceMax:        max,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("store booking request: %v", err))
	}

	s.notify(booking)

	return &dto.BookingCreateResponse{
		RequestID: booking.ID,
		PriceMin:  booking.PriceMin,
		PriceMax:  booking.PriceMax,
		Status:    booking.Status,
	}, nil
}

// GetByID fetches a stored inquiry.
func (s *BookingService) GetByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking request not found")
		}
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("load booking request: %v", err))
	}
	return booking, nil
}

// ListForArtist returns the inquiries assigned to an artist.
func (s *BookingService) ListForArtist(ctx context.Context, artistID string) ([]models.BookingRequest, error) {
	bookings, err := s.repo.ListByArtist(ctx, artistID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list booking requests: %v", err))
	}
	return bookings, nil
}

// ListAll returns every inquiry. Admin only, enforced at the handler.
func (s *BookingService) ListAll(ctx context.Context) ([]models.BookingRequest, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list booking requests: %v", err))
	}
	return bookings, nil
}

func (s *BookingService) price(ctx context.Context, req dto.BookingCreateRequest, eventDate time.Time) (int, int, error) {
	baseMin := float64(s.gageBaseMin)
	baseMax := float64(s.gageBaseMax)
	if req.ArtistID != nil && *req.ArtistID != "" {
		artist, err := s.artists.FindByID(ctx, *req.ArtistID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, 0, appErrors.Clone(appErrors.ErrNotFound, "artist not found")
			}
			return 0, 0, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("load artist: %v", err))
		}
		if artist.PriceMin > 0 && artist.PriceMax > 0 {
			baseMin = float64(artist.PriceMin)
			baseMax = float64(artist.PriceMax)
		}
	}

	weekday := eventDate.Weekday()
	address := ""
	if req.EventAddress != nil {
		address = *req.EventAddress
	}
	min, max := s.pricing.Calculate(PriceParams{
		BaseMin:      baseMin,
		BaseMax:      baseMax,
		EventType:    req.EventType,
		EventAddress: address,
		NumGuests:    req.NumGuests,
		Duration:     req.DurationMinutes,
		DistanceKm:   req.DistanceKm,
		IsWeekend:    weekday == time.Saturday || weekday == time.Sunday,
		IsIndoor:     req.IsIndoor,
		NeedsLight:   req.NeedsLight,
		NeedsSound:   req.NeedsSound,
		TeamSize:     req.TeamSize,
	})
	return min, max, nil
}

func (s *BookingService) notify(booking *models.BookingRequest) {
	date := dates.FormatISODate(booking.EventDate)

	if s.agencyTo != "" {
		subject := fmt.Sprintf("Neue Buchungsanfrage: %s am %s", booking.EventType, date)
		body := fmt.Sprintf("Anfrage %s von %s (%s)\nEvent: %s am %s\nPreisspanne: %d€ - %d€\n",
			booking.ID, booking.ClientName, booking.ClientEmail, booking.EventType, date, booking.PriceMin, booking.PriceMax)
		if err := s.mailer.Send(s.agencyTo, subject, body); err != nil {
			s.logger.Warn("agency notification failed", zap.String("request_id", booking.ID), zap.Error(err))
		}
	}

	subject := "Deine Anfrage bei PepeShows"
	body := fmt.Sprintf("Hallo %s,\n\nwir haben deine Anfrage für %s am %s erhalten.\nGeschätzte Preisspanne: %d€ - %d€.\n\nWir melden uns innerhalb von 48 Stunden.\n",
		booking.ClientName, booking.EventType, date, booking.PriceMin, booking.PriceMax)
	if err := s.mailer.Send(booking.ClientEmail, subject, body); err != nil {
		s.logger.Warn("client confirmation failed", zap.String("request_id", booking.ID), zap.Error(err))
	}
}
