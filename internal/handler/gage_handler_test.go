package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build-with-chris/pepe-api/internal/models"
)

type gageServiceMock struct {
	updateResult *models.GageUpdateResult
	updateErr    error
}

func (m *gageServiceMock) GetStatus(_ context.Context, artistID string) (*models.GageStatus, error) {
	return &models.GageStatus{ArtistID: artistID}, nil
}

func (m *gageServiceMock) UpdateCriteria(_ context.Context, _ string, _ models.GageCriteria) (*models.GageUpdateResult, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateResult, nil
}

func (m *gageServiceMock) Breakdown(_ context.Context, _ string) (*models.GageBreakdown, error) {
	return &models.GageBreakdown{TotalGage: 975, BaseRange: "200€ - 2500€"}, nil
}

func (m *gageServiceMock) ExportBreakdownPDF(_ context.Context, _ string) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func (m *gageServiceMock) SetOverride(_ context.Context, artistID string, override *int) (*models.GageUpdateResult, error) {
	result := &models.GageUpdateResult{ArtistID: artistID, AdminOverride: override}
	if override != nil {
		result.CalculatedGage = *override
	}
	return result, nil
}

func (m *gageServiceMock) RecalculateAll(_ context.Context) (int, error) {
	return 3, nil
}

func TestGageHandlerGetCriteria(t *testing.T) {
	handler := NewGageHandler(&gageServiceMock{}, linkedResolver())

	c, w := authedContext(t, http.MethodGet, "/api/artists/me/gage-criteria", nil)
	handler.GetCriteria(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "artist-1")
}

func TestGageHandlerUpdateCriteria(t *testing.T) {
	mock := &gageServiceMock{updateResult: &models.GageUpdateResult{
		ArtistID:       "artist-1",
		CalculatedGage: 975,
		PriceRange:     models.GageRange{Min: 780, Max: 1170},
	}}
	handler := NewGageHandler(mock, linkedResolver())

	body := []byte(`{"circus_education":false,"stage_experience":"3-5","employment_type":"teilzeit","awards_level":"lokal","pepe_years":2,"pepe_exclusivity":true}`)
	c, w := authedContext(t, http.MethodPut, "/api/artists/me/gage-criteria", body)
	handler.UpdateCriteria(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "975")
}

func TestGageHandlerUpdateCriteriaMalformed(t *testing.T) {
	handler := NewGageHandler(&gageServiceMock{}, linkedResolver())

	c, w := authedContext(t, http.MethodPut, "/api/artists/me/gage-criteria", []byte(`{`))
	handler.UpdateCriteria(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGageHandlerBreakdown(t *testing.T) {
	handler := NewGageHandler(&gageServiceMock{}, linkedResolver())

	c, w := authedContext(t, http.MethodGet, "/api/artists/me/gage-calculation", nil)
	handler.Breakdown(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "base_range")
}

func TestGageHandlerExportBreakdownPDF(t *testing.T) {
	handler := NewGageHandler(&gageServiceMock{}, linkedResolver())

	c, w := authedContext(t, http.MethodGet, "/api/artists/me/gage-calculation.pdf", nil)
	handler.ExportBreakdownPDF(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gage-berechnung.pdf")
}

func TestGageHandlerSetOverride(t *testing.T) {
	handler := NewGageHandler(&gageServiceMock{}, linkedResolver())

	c, w := authedContext(t, http.MethodPut, "/api/artists/artist-1/gage-override", []byte(`{"override":1800}`))
	c.Params = gin.Params{{Key: "id", Value: "artist-1"}}
	handler.SetOverride(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1800")
}

func TestGageHandlerRecalculateAll(t *testing.T) {
	handler := NewGageHandler(&gageServiceMock{}, linkedResolver())

	c, w := authedContext(t, http.MethodPost, "/api/artists/gage-recalculate", nil)
	handler.RecalculateAll(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "updated")
}
