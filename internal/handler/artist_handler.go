package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/internal/service"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/response"
)

type artistService interface {
	Me(ctx context.Context, subjectID, email string) (*models.Artist, error)
	Ensure(ctx context.Context, subjectID, email, name string) (*models.Artist, bool, error)
	List(ctx context.Context, filter models.ArtistFilter) (*service.ArtistList, error)
	GetByID(ctx context.Context, id string) (*models.Artist, error)
	UpdateProfile(ctx context.Context, artistID string, update service.ArtistProfileUpdate) (*models.Artist, error)
	SetApproval(ctx context.Context, artistID string, status models.ApprovalStatus) (*models.Artist, error)
}

// ArtistHandler exposes artist identity and gallery endpoints.
type ArtistHandler struct {
	service artistService
	metrics *service.MetricsService
}

// NewArtistHandler builds a new handler.
func NewArtistHandler(svc artistService, metrics *service.MetricsService) *ArtistHandler {
	return &ArtistHandler{service: svc, metrics: metrics}
}

// Me godoc
// @Summary Resolve the authenticated artist
// @Tags Artists
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /artists/me [get]
func (h *ArtistHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	artist, err := h.service.Me(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, artist, nil)
}

// Ensure godoc
// @Summary Ensure an artist record exists for the authenticated user
// @Tags Artists
// @Produce json
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /artists/me/ensure [post]
func (h *ArtistHandler) Ensure(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var body struct {
		Name string `json:"name"`
	}
	// The body is optional; ignore malformed payloads as the token
	// already carries everything required.
	_ = c.ShouldBindJSON(&body)

	artist, created, err := h.service.Ensure(c.Request.Context(), claims.Subject, claims.Email, body.Name)
	if err != nil {
		h.metrics.CountEnsure("error")
		response.Error(c, err)
		return
	}
	if created {
		h.metrics.CountEnsure("created")
		response.Created(c, artist)
		return
	}
	h.metrics.CountEnsure("linked")
	response.JSON(c, http.StatusOK, artist, nil)
}

// List godoc
// @Summary List artists for the public gallery
// @Tags Artists
// @Produce json
// @Param status query string false "Approval status filter"
// @Param discipline query string false "Discipline filter"
// @Param search query string false "Name or email search"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /artists [get]
func (h *ArtistHandler) List(c *gin.Context) {
	filter := models.ArtistFilter{
		Discipline: c.Query("discipline"),
		Search:     c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ApprovalStatus(raw)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list.Artists, &list.Pagination)
}

// Get godoc
// @Summary Get an artist profile
// @Tags Artists
// @Produce json
// @Param id path string true "Artist ID"
// @Success 200 {object} response.Envelope
// @Router /artists/{id} [get]
func (h *ArtistHandler) Get(c *gin.Context) {
	artist, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, artist, nil)
}

// UpdateMe godoc
// @Summary Update the authenticated artist's profile
// @Tags Artists
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /artists/me [put]
func (h *ArtistHandler) UpdateMe(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	artist, err := h.service.Me(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	var update service.ArtistProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), artist.ID, update)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// SetApproval godoc
// @Summary Change an artist's approval status
// @Tags Artists
// @Accept json
// @Produce json
// @Param id path string true "Artist ID"
// @Success 200 {object} response.Envelope
// @Router /artists/{id}/approval [put]
func (h *ArtistHandler) SetApproval(c *gin.Context) {
	var body struct {
		Status models.ApprovalStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approval payload"))
		return
	}

	artist, err := h.service.SetApproval(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, artist, nil)
}
