package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/internal/service"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
	"github.com/build-with-chris/pepe-api/pkg/response"
)

type bookingService interface {
	Create(ctx context.Context, req dto.BookingCreateRequest) (*dto.BookingCreateResponse, error)
	Estimate(ctx context.Context, req dto.BookingCreateRequest) (*dto.PriceEstimate, error)
	GetByID(ctx context.Context, id string) (*models.BookingRequest, error)
	ListForArtist(ctx context.Context, artistID string) ([]models.BookingRequest, error)
	ListAll(ctx context.Context) ([]models.BookingRequest, error)
}

type bookingArtistResolver interface {
	Me(ctx context.Context, subjectID, email string) (*models.Artist, error)
}

// BookingHandler exposes public inquiry endpoints and the artist's
// request inbox.
type BookingHandler struct {
	service bookingService
	artists bookingArtistResolver
	metrics *service.MetricsService
}

// NewBookingHandler builds a new handler.
func NewBookingHandler(svc bookingService, artists bookingArtistResolver, metrics *service.MetricsService) *BookingHandler {
	return &BookingHandler{service: svc, artists: artists, metrics: metrics}
}

// Create godoc
// @Summary Submit a booking inquiry
// @Tags Requests
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /requests [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.CountBooking(req.EventType)
	response.Created(c, resp)
}

// Estimate godoc
// @Summary Price an inquiry without submitting it
// @Tags Requests
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests/estimate [post]
func (h *BookingHandler) Estimate(c *gin.Context) {
	var req dto.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	estimate, err := h.service.Estimate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, estimate, nil)
}

// ListMine godoc
// @Summary List inquiries assigned to the authenticated artist
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	artist, err := h.artists.Me(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	bookings, err := h.service.ListForArtist(c.Request.Context(), artist.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings, nil)
}

// ListAll godoc
// @Summary List every inquiry
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests/all [get]
func (h *BookingHandler) ListAll(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bookings, nil)
}

// Get godoc
// @Summary Get one inquiry
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}
