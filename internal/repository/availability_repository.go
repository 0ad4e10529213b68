package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/build-with-chris/pepe-api/internal/models"
)

// AvailabilityRepository manages persistence for availability slots.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository constructs an AvailabilityRepository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListByArtist returns an artist's slots, optionally restricted to dates on
// or after from, ordered by date.
func (r *AvailabilityRepository) ListByArtist(ctx context.Context, artistID string, from *time.Time) ([]models.AvailabilitySlot, error) {
	query := "SELECT id, artist_id, date, created_at FROM availability_slots WHERE artist_id = $1"
	args := []interface{}{artistID}
	if from != nil {
		query += " AND date >= $2"
		args = append(args, *from)
	}
	query += " ORDER BY date ASC"

	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	return slots, nil
}

// FindByArtistAndDate fetches the slot for a specific artist/date pair.
func (r *AvailabilityRepository) FindByArtistAndDate(ctx context.Context, artistID string, date time.Time) (*models.AvailabilitySlot, error) {
	const query = "SELECT id, artist_id, date, created_at FROM availability_slots WHERE artist_id = $1 AND date = $2"
	var slot models.AvailabilitySlot
	if err := r.db.GetContext(ctx, &slot, query, artistID, date); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a new availability slot.
func (r *AvailabilityRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO availability_slots (id, artist_id, date, created_at)
VALUES (:id, :artist_id, :date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create availability slot: %w", err)
	}
	return nil
}

// Delete removes a slot scoped to its owning artist. Returns
// sql.ErrNoRows when nothing matched.
func (r *AvailabilityRepository) Delete(ctx context.Context, id, artistID string) error {
	const query = "DELETE FROM availability_slots WHERE id = $1 AND artist_id = $2"
	result, err := r.db.ExecContext(ctx, query, id, artistID)
	if err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByArtistAndDate removes the slot for a date, used by bulk updates.
func (r *AvailabilityRepository) DeleteByArtistAndDate(ctx context.Context, artistID string, date time.Time) error {
	const query = "DELETE FROM availability_slots WHERE artist_id = $1 AND date = $2"
	if _, err := r.db.ExecContext(ctx, query, artistID, date); err != nil {
		return fmt.Errorf("delete availability slot: %w", err)
	}
	return nil
}
