package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build-with-chris/pepe-api/internal/middleware"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/internal/service"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
)

type artistServiceMock struct {
	meArtist     *models.Artist
	meErr        error
	ensureArtist *models.Artist
	ensureNew    bool
	ensureErr    error
	ensureCalls  int
}

func (m *artistServiceMock) Me(_ context.Context, _, _ string) (*models.Artist, error) {
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.meArtist, nil
}

func (m *artistServiceMock) Ensure(_ context.Context, _, _, _ string) (*models.Artist, bool, error) {
	m.ensureCalls++
	if m.ensureErr != nil {
		return nil, false, m.ensureErr
	}
	return m.ensureArtist, m.ensureNew, nil
}

func (m *artistServiceMock) List(_ context.Context, _ models.ArtistFilter) (*service.ArtistList, error) {
	return &service.ArtistList{Artists: []models.Artist{}, Pagination: models.Pagination{Page: 1, PageSize: 20}}, nil
}

func (m *artistServiceMock) GetByID(_ context.Context, _ string) (*models.Artist, error) {
	return m.meArtist, nil
}

func (m *artistServiceMock) UpdateProfile(_ context.Context, _ string, _ service.ArtistProfileUpdate) (*models.Artist, error) {
	return m.meArtist, nil
}

func (m *artistServiceMock) SetApproval(_ context.Context, _ string, status models.ApprovalStatus) (*models.Artist, error) {
	a := *m.meArtist
	a.ApprovalStatus = status
	return &a, nil
}

func testContext(t *testing.T, method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func authedContext(t *testing.T, method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := testContext(t, method, path, body)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "luna@pepeshows.de"})
	return c, w
}

func TestArtistHandlerMe(t *testing.T) {
	mock := &artistServiceMock{meArtist: &models.Artist{ID: "artist-1", Name: "Luna", Email: "luna@pepeshows.de"}}
	handler := NewArtistHandler(mock, nil)

	c, w := authedContext(t, http.MethodGet, "/api/artists/me", nil)
	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "artist-1")
}

func TestArtistHandlerMeUnlinkedCarriesSentinel(t *testing.T) {
	mock := &artistServiceMock{meErr: appErrors.ErrArtistNotLinked}
	handler := NewArtistHandler(mock, nil)

	c, w := authedContext(t, http.MethodGet, "/api/artists/me", nil)
	handler.Me(c)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.UnlinkedArtistMessage)
}

func TestArtistHandlerMeWithoutToken(t *testing.T) {
	handler := NewArtistHandler(&artistServiceMock{}, nil)

	c, w := testContext(t, http.MethodGet, "/api/artists/me", nil)
	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestArtistHandlerEnsureCreated(t *testing.T) {
	mock := &artistServiceMock{
		ensureArtist: &models.Artist{ID: "artist-2", Email: "neu@pepeshows.de"},
		ensureNew:    true,
	}
	handler := NewArtistHandler(mock, nil)

	c, w := authedContext(t, http.MethodPost, "/api/artists/me/ensure", nil)
	handler.Ensure(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, mock.ensureCalls)
}

func TestArtistHandlerEnsureExisting(t *testing.T) {
	mock := &artistServiceMock{ensureArtist: &models.Artist{ID: "artist-1", Email: "luna@pepeshows.de"}}
	handler := NewArtistHandler(mock, nil)

	c, w := authedContext(t, http.MethodPost, "/api/artists/me/ensure", []byte(`{"name":"Luna"}`))
	handler.Ensure(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestArtistHandlerList(t *testing.T) {
	handler := NewArtistHandler(&artistServiceMock{}, nil)

	c, w := testContext(t, http.MethodGet, "/api/artists?page=1", nil)
	handler.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestArtistHandlerSetApproval(t *testing.T) {
	mock := &artistServiceMock{meArtist: &models.Artist{ID: "artist-1", ApprovalStatus: models.ApprovalPending}}
	handler := NewArtistHandler(mock, nil)

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	c, w := authedContext(t, http.MethodPut, "/api/artists/artist-1/approval", body)
	c.Params = gin.Params{{Key: "id", Value: "artist-1"}}
	handler.SetApproval(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "approved")
}
