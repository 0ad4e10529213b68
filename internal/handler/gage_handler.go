package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/build-with-chris/pepe-api/internal/models"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/response"
)

type gageService interface {
	GetStatus(ctx context.Context, artistID string) (*models.GageStatus, error)
	UpdateCriteria(ctx context.Context, artistID string, criteria models.GageCriteria) (*models.GageUpdateResult, error)
	Breakdown(ctx context.Context, artistID string) (*models.GageBreakdown, error)
	ExportBreakdownPDF(ctx context.Context, artistID string) ([]byte, error)
	SetOverride(ctx context.Context, artistID string, override *int) (*models.GageUpdateResult, error)
	RecalculateAll(ctx context.Context) (int, error)
}

type gageArtistResolver interface {
	Me(ctx context.Context, subjectID, email string) (*models.Artist, error)
}

// GageHandler exposes the fee criteria workflow.
type GageHandler struct {
	service gageService
	artists gageArtistResolver
}

// NewGageHandler builds a new handler.
func NewGageHandler(svc gageService, artists gageArtistResolver) *GageHandler {
	return &GageHandler{service: svc, artists: artists}
}

func (h *GageHandler) resolveArtist(c *gin.Context) (*models.Artist, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	artist, err := h.artists.Me(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return artist, true
}

// GetCriteria godoc
// @Summary Get the authenticated artist's gage criteria and fee figures
// @Tags Gage
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /artists/me/gage-criteria [get]
func (h *GageHandler) GetCriteria(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	status, err := h.service.GetStatus(c.Request.Context(), artist.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// UpdateCriteria godoc
// @Summary Update gage criteria and recalculate the fee
// @Tags Gage
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /artists/me/gage-criteria [put]
func (h *GageHandler) UpdateCriteria(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	var criteria models.GageCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid criteria payload"))
		return
	}
	result, err := h.service.UpdateCriteria(c.Request.Context(), artist.ID, criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Breakdown godoc
// @Summary Explain the gage calculation component by component
// @Tags Gage
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /artists/me/gage-calculation [get]
func (h *GageHandler) Breakdown(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	breakdown, err := h.service.Breakdown(c.Request.Context(), artist.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, breakdown, nil)
}

// ExportBreakdownPDF godoc
// @Summary Download the gage calculation as a PDF sheet
// @Tags Gage
// @Produce application/pdf
// @Success 200 {file} binary
// @Router /artists/me/gage-calculation.pdf [get]
func (h *GageHandler) ExportBreakdownPDF(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	payload, err := h.service.ExportBreakdownPDF(c.Request.Context(), artist.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="gage-berechnung.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

// SetOverride godoc
// @Summary Set or clear an admin gage override
// @Tags Gage
// @Accept json
// @Produce json
// @Param id path string true "Artist ID"
// @Success 200 {object} response.Envelope
// @Router /artists/{id}/gage-override [put]
func (h *GageHandler) SetOverride(c *gin.Context) {
	var body struct {
		Override *int `json:"override"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid override payload"))
		return
	}
	result, err := h.service.SetOverride(c.Request.Context(), c.Param("id"), body.Override)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// RecalculateAll godoc
// @Summary Recalculate every artist's gage
// @Tags Gage
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /artists/gage-recalculate [post]
func (h *GageHandler) RecalculateAll(c *gin.Context) {
	updated, err := h.service.RecalculateAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": updated}, nil)
}
