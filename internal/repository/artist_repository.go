package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/build-with-chris/pepe-api/internal/models"
)

const artistColumns = `id, name, email, password_hash, subject_id, phone, address, disciplines,
price_min, price_max, is_admin, approval_status, circus_education, stage_experience,
employment_type, awards_level, pepe_years, pepe_exclusivity, calculated_gage,
admin_gage_override, created_at, updated_at`

// ArtistRepository manages persistence for artists.
type ArtistRepository struct {
	db *sqlx.DB
}

// NewArtistRepository constructs an ArtistRepository.
func NewArtistRepository(db *sqlx.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// List returns artists matching filters along with total count.
func (r *ArtistRepository) List(ctx context.Context, filter models.ArtistFilter) ([]models.Artist, int, error) {
	base := "FROM artists WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("approval_status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	if filter.Discipline != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(disciplines)", len(args)+1))
		args = append(args, filter.Discipline)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY name ASC LIMIT %d OFFSET %d", artistColumns, base, size, offset)
	var artists []models.Artist
	if err := r.db.SelectContext(ctx, &artists, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list artists: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count artists: %w", err)
	}

	return artists, total, nil
}

// FindByID fetches an artist by ID.
func (r *ArtistRepository) FindByID(ctx context.Context, id string) (*models.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists WHERE id = $1", artistColumns)
	var artist models.Artist
	if err := r.db.GetContext(ctx, &artist, query, id); err != nil {
		return nil, err
	}
	return &artist, nil
}

// FindByEmail fetches an artist by email, case-insensitively.
func (r *ArtistRepository) FindByEmail(ctx context.Context, email string) (*models.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists WHERE LOWER(email) = LOWER($1)", artistColumns)
	var artist models.Artist
	if err := r.db.GetContext(ctx, &artist, query, email); err != nil {
		return nil, err
	}
	return &artist, nil
}

// FindBySubject fetches the artist linked to an external auth subject.
func (r *ArtistRepository) FindBySubject(ctx context.Context, subjectID string) (*models.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists WHERE LOWER(subject_id) = LOWER($1)", artistColumns)
	var artist models.Artist
	if err := r.db.GetContext(ctx, &artist, query, subjectID); err != nil {
		return nil, err
	}
	return &artist, nil
}

// ExistsByEmail checks if another artist uses the same email.
func (r *ArtistRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM artists WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check artist email: %w", err)
	}
	return true, nil
}

// Create inserts a new artist record.
func (r *ArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	if artist.ID == "" {
		artist.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if artist.CreatedAt.IsZero() {
		artist.CreatedAt = now
	}
	artist.UpdatedAt = now
	if artist.ApprovalStatus == "" {
		artist.ApprovalStatus = models.ApprovalUnsubmitted
	}
	if artist.Disciplines == nil {
		artist.Disciplines = []string{}
	}

	const query = `INSERT INTO artists (id, name, email, password_hash, subject_id, phone, address, disciplines,
price_min, price_max, is_admin, approval_status, circus_education, stage_experience,
employment_type, awards_level, pepe_years, pepe_exclusivity, calculated_gage,
admin_gage_override, created_at, updated_at)
VALUES (:id, :name, :email, :password_hash, :subject_id, :phone, :address, :disciplines,
:price_min, :price_max, :is_admin, :approval_status, :circus_education, :stage_experience,
:employment_type, :awards_level, :pepe_years, :pepe_exclusivity, :calculated_gage,
:admin_gage_override, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, artist); err != nil {
		return fmt.Errorf("create artist: %w", err)
	}
	return nil
}

// Update modifies an existing artist record.
func (r *ArtistRepository) Update(ctx context.Context, artist *models.Artist) error {
	artist.UpdatedAt = time.Now().UTC()
	const query = `UPDATE artists SET name = :name, email = :email, password_hash = :password_hash,
subject_id = :subject_id, phone = :phone, address = :address, disciplines = :disciplines,
price_min = :price_min, price_max = :price_max, is_admin = :is_admin,
approval_status = :approval_status, circus_education = :circus_education,
stage_experience = :stage_experience, employment_type = :employment_type,
awards_level = :awards_level, pepe_years = :pepe_years, pepe_exclusivity = :pepe_exclusivity,
calculated_gage = :calculated_gage, admin_gage_override = :admin_gage_override,
updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, artist); err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	return nil
}

// ListAll streams every artist, used by the admin gage recalculation.
func (r *ArtistRepository) ListAll(ctx context.Context, limit int) ([]models.Artist, error) {
	query := fmt.Sprintf("SELECT %s FROM artists ORDER BY created_at ASC", artistColumns)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	var artists []models.Artist
	if err := r.db.SelectContext(ctx, &artists, query); err != nil {
		return nil, fmt.Errorf("list all artists: %w", err)
	}
	return artists, nil
}
