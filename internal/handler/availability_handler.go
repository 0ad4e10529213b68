package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/internal/service"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/response"
)

type availabilityService interface {
	List(ctx context.Context, artistID string, futureOnly bool) (*dto.SlotListResponse, error)
	Add(ctx context.Context, artistID string, req dto.AddSlotRequest) (*dto.SlotResponse, error)
	AddRange(ctx context.Context, artistID string, req dto.AddRangeRequest) (*dto.BulkResult, error)
	AddRule(ctx context.Context, artistID string, req dto.AddRuleRequest) (*dto.BulkResult, error)
	Remove(ctx context.Context, artistID, slotID string) error
	ExportCSV(ctx context.Context, artistID string) ([]byte, error)
	ICalFeed(ctx context.Context, artistID, artistName string) (string, error)
}

type availabilityArtistResolver interface {
	Me(ctx context.Context, subjectID, email string) (*models.Artist, error)
}

// AvailabilityHandler exposes the authenticated artist's availability
// endpoints. Every route resolves the artist from the token first, so
// an unlinked user consistently gets the sentinel error body.
type AvailabilityHandler struct {
	service availabilityService
	artists availabilityArtistResolver
	metrics *service.MetricsService
}

// NewAvailabilityHandler builds a new handler.
func NewAvailabilityHandler(svc availabilityService, artists availabilityArtistResolver, metrics *service.MetricsService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc, artists: artists, metrics: metrics}
}

func (h *AvailabilityHandler) resolveArtist(c *gin.Context) (*models.Artist, bool) {
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

// List godoc
// @Summary List the authenticated artist's available days
// @Tags Availability
// @Produce json
// @Param future_only query bool false "Hide past days"
// @Success 200 {object} response.Envelope
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	list, err := h.service.List(c.Request.Context(), artist.ID, c.Query("future_only") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Add godoc
// @Summary Add one available day
// @Tags Availability
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /availability [post]
func (h *AvailabilityHandler) Add(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	var req dto.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.service.Add(c.Request.Context(), artist.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountSlotMutation("add")
	response.Created(c, slot)
}

// AddRange godoc
// @Summary Add every day of an inclusive range
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/range [post]
func (h *AvailabilityHandler) AddRange(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	var req dto.AddRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid range payload"))
		return
	}
	result, err := h.service.AddRange(c.Request.Context(), artist.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountSlotMutation("add_range")
	response.JSON(c, http.StatusOK, result, nil)
}

// AddRule godoc
// @Summary Add days from a recurrence rule
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/rule [post]
func (h *AvailabilityHandler) AddRule(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	var req dto.AddRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rule payload"))
		return
	}
	result, err := h.service.AddRule(c.Request.Context(), artist.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountSlotMutation("add_rule")
	response.JSON(c, http.StatusOK, result, nil)
}

// Remove godoc
// @Summary Remove an available day
// @Tags Availability
// @Param id path string true "Slot ID"
// @Success 204
// @Router /availability/{id} [delete]
func (h *AvailabilityHandler) Remove(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), artist.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountSlotMutation("remove")
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Download availability as CSV
// @Tags Availability
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /availability/export.csv [get]
func (h *AvailabilityHandler) ExportCSV(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	data, err := h.service.ExportCSV(c.Request.Context(), artist.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=availability-%s.csv", artist.ID))
	c.Data(http.StatusOK, "text/csv", data)
}

// ICalFeed godoc
// @Summary Subscribe to availability as an iCalendar feed
// @Tags Availability
// @Produce text/calendar
// @Success 200 {string} string "iCalendar content"
// @Router /availability/calendar.ics [get]
func (h *AvailabilityHandler) ICalFeed(c *gin.Context) {
	artist, ok := h.resolveArtist(c)
	if !ok {
		return
	}
	feed, err := h.service.ICalFeed(c.Request.Context(), artist.ID, artist.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "text/calendar", []byte(feed))
}
