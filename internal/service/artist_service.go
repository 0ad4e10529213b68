package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/internal/models"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
)

type artistStore interface {
	List(ctx context.Context, filter models.ArtistFilter) ([]models.Artist, int, error)
	FindByID(ctx context.Context, id string) (*models.Artist, error)
	FindByEmail(ctx context.Context, email string) (*models.Artist, error)
	FindBySubject(ctx context.Context, subjectID string) (*models.Artist, error)
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	Create(ctx context.Context, artist *models.Artist) error
	Update(ctx context.Context, artist *models.Artist) error
}

type galleryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// ArtistProfileUpdate carries the editable profile fields.
type ArtistProfileUpdate struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=120"`
	Phone       *string  `json:"phone" validate:"omitempty,max=40"`
	Address     *string  `json:"address" validate:"omitempty,max=255"`
	Disciplines []string `json:"disciplines" validate:"omitempty,dive,min=2,max=60"`
}

// ArtistList is a paginated gallery page.
type ArtistList struct {
	Artists    []models.Artist   `json:"artists"`
	Pagination models.Pagination `json:"pagination"`
}

// ArtistService manages artist identity and the public gallery.
type ArtistService struct {
	repo     artistStore
	cache    galleryCache
	validate *validator.Validate
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewArtistService constructs an ArtistService.
func NewArtistService(repo artistStore, cache galleryCache, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *ArtistService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &ArtistService{repo: repo, cache: cache, validate: validate, logger: logger, cacheTTL: cacheTTL}
}

// Me resolves the artist linked to the authenticated principal. It tries
// the auth subject first and falls back to the token email. An unlinked
// principal yields ErrArtistNotLinked, whose message the clients match on.
func (s *ArtistService) Me(ctx context.Context, subjectID, email string) (*models.Artist, error) {
	if subjectID != "" {
		artist, err := s.repo.FindBySubject(ctx, subjectID)
		if err == nil {
			return artist, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("resolve artist by subject: %v", err))
		}
	}
	if email != "" {
		artist, err := s.repo.FindByEmail(ctx, email)
		if err == nil {
			return artist, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("resolve artist by email: %v", err))
		}
	}
	return nil, appErrors.ErrArtistNotLinked
}

// Ensure upserts the artist record for an authenticated principal: an
// existing row keyed by email gets the subject linked, otherwise a
// minimal profile is created. No availability is seeded here.
func (s *ArtistService) Ensure(ctx context.Context, subjectID, email, name string) (*models.Artist, bool, error) {
	if email == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "email required to ensure artist")
	}

	artist, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		changed := false
		if (artist.SubjectID == nil || *artist.SubjectID == "") && subjectID != "" {
			artist.SubjectID = &subjectID
			changed = true
		}
		if artist.ApprovalStatus == "" {
			artist.ApprovalStatus = models.ApprovalUnsubmitted
			changed = true
		}
		if changed {
			if err := s.repo.Update(ctx, artist); err != nil {
				return nil, false, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("link artist: %v", err))
			}
		}
		return artist, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("ensure artist: %v", err))
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	created := &models.Artist{
		Name:           name,
		Email:          email,
		ApprovalStatus: models.ApprovalUnsubmitted,
	}
	if subjectID != "" {
		created.SubjectID = &subjectID
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, false, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("create artist: %v", err))
	}

	s.logger.Info("artist ensured", zap.String("artist_id", created.ID), zap.String("email", email))
	return created, true, nil
}

// List returns a gallery page, served from Redis when possible. Only
// pages without a search term are cached.
func (s *ArtistService) List(ctx context.Context, filter models.ArtistFilter) (*ArtistList, error) {
	cacheable := s.cache != nil && filter.Search == ""
	key := galleryCacheKey(filter)
	if cacheable {
		var cached ArtistList
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	artists, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("list artists: %v", err))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	list := &ArtistList{
		Artists: artists,
		Pagination: models.Pagination{
			Page:       page,
			PageSize:   size,
			TotalCount: total,
		},
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, list, s.cacheTTL); err != nil {
			s.logger.Warn("gallery cache write failed", zap.Error(err))
		}
	}
	return list, nil
}

// GetByID fetches an artist profile.
func (s *ArtistService) GetByID(ctx context.Context, id string) (*models.Artist, error) {
	artist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "artist not found")
		}
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("load artist: %v", err))
	}
	return artist, nil
}

// UpdateProfile applies editable fields to the artist's own profile.
func (s *ArtistService) UpdateProfile(ctx context.Context, artistID string, update ArtistProfileUpdate) (*models.Artist, error) {
	if err := s.validate.Struct(update); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	artist, err := s.GetByID(ctx, artistID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		artist.Name = *update.Name
	}
	if update.Phone != nil {
		artist.Phone = update.Phone
	}
	if update.Address != nil {
		artist.Address = update.Address
	}
	if update.Disciplines != nil {
		artist.Disciplines = pq.StringArray(update.Disciplines)
	}

	if err := s.repo.Update(ctx, artist); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("update artist: %v", err))
	}
	s.invalidateGallery(ctx)
	return artist, nil
}

// SetApproval moves an artist through the review pipeline. Admin only,
// enforced at the handler.
func (s *ArtistService) SetApproval(ctx context.Context, artistID string, status models.ApprovalStatus) (*models.Artist, error) {
	switch status {
	case models.ApprovalUnsubmitted, models.ApprovalPending, models.ApprovalApproved, models.ApprovalRejected:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown approval status %q", status))
	}

	artist, err := s.GetByID(ctx, artistID)
	if err != nil {
		return nil, err
	}

	artist.ApprovalStatus = status
	if err := s.repo.Update(ctx, artist); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("update approval: %v", err))
	}
	s.invalidateGallery(ctx)

	s.logger.Info("artist approval changed",
		zap.String("artist_id", artist.ID),
		zap.String("status", string(status)))
	return artist, nil
}

func (s *ArtistService) invalidateGallery(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "gallery:*"); err != nil {
		s.logger.Warn("gallery cache invalidation failed", zap.Error(err))
	}
}

func galleryCacheKey(filter models.ArtistFilter) string {
	status := "any"
	if filter.Status != nil {
		status = string(*filter.Status)
	}
	return fmt.Sprintf("gallery:%s:%s:%d:%d", status, filter.Discipline, filter.Page, filter.PageSize)
}
