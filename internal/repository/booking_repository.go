package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/build-with-chris/pepe-api/internal/models"
)

const bookingColumns = `id, artist_id, client_name, client_email, event_type, event_date,
event_address, duration_minutes, num_guests, distance_km, is_indoor, needs_light,
needs_sound, team_size, price_min, price_max, status, created_at`

// BookingRepository manages persistence for booking requests.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking request.
func (r *BookingRepository) Create(ctx context.Context, req *models.BookingRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = "requested"
	}
	const query = `INSERT INTO booking_requests (id, artist_id, client_name, client_email, event_type,
event_date, event_address, duration_minutes, num_guests, distance_km, is_indoor,
needs_light, needs_sound, team_size, price_min, price_max, status, created_at)
VALUES (:id, :artist_id, :client_name, :client_email, :event_type, :event_date,
:event_address, :duration_minutes, :num_guests, :distance_km, :is_indoor,
:needs_light, :needs_sound, :team_size, :price_min, :price_max, :status, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("create booking request: %w", err)
	}
	return nil
}

// FindByID fetches a booking request by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM booking_requests WHERE id = $1", bookingColumns)
	var req models.BookingRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByArtist returns booking requests assigned to the given artist.
func (r *BookingRepository) ListByArtist(ctx context.Context, artistID string) ([]models.BookingRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM booking_requests WHERE artist_id = $1 ORDER BY created_at DESC", bookingColumns)
	var reqs []models.BookingRequest
	if err := r.db.SelectContext(ctx, &reqs, query, artistID); err != nil {
		return nil, fmt.Errorf("list booking requests: %w", err)
	}
	return reqs, nil
}

// List returns all booking requests, newest first.
func (r *BookingRepository) List(ctx context.Context) ([]models.BookingRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM booking_requests ORDER BY created_at DESC", bookingColumns)
	var reqs []models.BookingRequest
	if err := r.db.SelectContext(ctx, &reqs, query); err != nil {
		return nil, fmt.Errorf("list booking requests: %w", err)
	}
	return reqs, nil
}
