package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/pkg/dates"
)

type mockBookingStore struct {
	bookings map[string]*models.BookingRequest
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[string]*models.BookingRequest)}
}

func (m *mockBookingStore) Create(_ context.Context, req *models.BookingRequest) error {
	if req.ID == "" {
		req.ID = "req-1"
	}
	if req.Status == "" {
		req.Status = "requested"
	}
	clone := *req
	m.bookings[req.ID] = &clone
	return nil
}

func (m *mockBookingStore) FindByID(_ context.Context, id string) (*models.BookingRequest, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *b
	return &clone, nil
}

func (m *mockBookingStore) ListByArtist(_ context.Context, artistID string) ([]models.BookingRequest, error) {
	var out []models.BookingRequest
	for _, b := range m.bookings {
		if b.ArtistID != nil && *b.ArtistID == artistID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingStore) List(_ context.Context) ([]models.BookingRequest, error) {
	var out []models.BookingRequest
	for _, b := range m.bookings {
		out = append(out, *b)
	}
	return out, nil
}

type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) Send(to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

func validBookingRequest() dto.BookingCreateRequest {
	future := dates.FormatISODate(dates.AddDays(time.Now(), 30))
	return dto.BookingCreateRequest{
		ClientName:      "Max Muster",
		ClientEmail:     "max@example.com",
		EventType:       models.EventCorporate,
		EventDate:       future,
		DurationMinutes: 20,
		NumGuests:       150,
		IsIndoor:        true,
	}
}

func newBookingService(store *mockBookingStore, artists bookingArtistLookup, mailer *recordingMailer) *BookingService {
	return NewBookingService(store, artists, defaultPricing(), mailer, nil, nil, "booking@pepeshows.de", 200, 2500)
}

func TestBookingCreateStoresEstimateAndNotifies(t *testing.T) {
	store := newMockBookingStore()
	mailer := &recordingMailer{}
	svc := newBookingService(store, newMockArtistRepo(), mailer)

	resp, err := svc.Create(context.Background(), validBookingRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "requested", resp.Status)
	assert.Greater(t, resp.PriceMax, resp.PriceMin)

	saved := store.bookings[resp.RequestID]
	require.NotNil(t, saved)
	assert.Equal(t, resp.PriceMin, saved.PriceMin)

	// Agency inbox first, then client confirmation.
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "booking@pepeshows.de", mailer.sent[0])
	assert.Equal(t, "max@example.com", mailer.sent[1])
}

func TestBookingCreateRejectsPastDate(t *testing.T) {
	svc := newBookingService(newMockBookingStore(), newMockArtistRepo(), &recordingMailer{})

	req := validBookingRequest()
	req.EventDate = "2020-01-01"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestBookingCreateRejectsMalformedDate(t *testing.T) {
	svc := newBookingService(newMockBookingStore(), newMockArtistRepo(), &recordingMailer{})

	req := validBookingRequest()
	req.EventDate = "01.06.2026"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestBookingCreateUsesArtistBand(t *testing.T) {
	artistID := "artist-1"
	artists := newMockArtistRepo(&models.Artist{ID: artistID, Email: "luna@pepeshows.de", PriceMin: 2000, PriceMax: 3000})
	svc := newBookingService(newMockBookingStore(), artists, &recordingMailer{})

	generic, err := svc.Estimate(context.Background(), validBookingRequest())
	require.NoError(t, err)

	req := validBookingRequest()
	req.ArtistID = &artistID
	targeted, err := svc.Estimate(context.Background(), req)
	require.NoError(t, err)

	assert.Greater(t, targeted.PriceMin, generic.PriceMin)
}

func TestBookingCreateUnknownArtist(t *testing.T) {
	artistID := "missing"
	svc := newBookingService(newMockBookingStore(), newMockArtistRepo(), &recordingMailer{})

	req := validBookingRequest()
	req.ArtistID = &artistID
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestBookingEstimateDoesNotPersist(t *testing.T) {
	store := newMockBookingStore()
	mailer := &recordingMailer{}
	svc := newBookingService(store, newMockArtistRepo(), mailer)

	_, err := svc.Estimate(context.Background(), validBookingRequest())
	require.NoError(t, err)
	assert.Empty(t, store.bookings)
	assert.Empty(t, mailer.sent)
}

func TestBookingListForArtist(t *testing.T) {
	store := newMockBookingStore()
	artistID := "artist-1"
	artists := newMockArtistRepo(&models.Artist{ID: artistID, Email: "luna@pepeshows.de", PriceMin: 800, PriceMax: 1200})
	svc := newBookingService(store, artists, &recordingMailer{})

	req := validBookingRequest()
	req.ArtistID = &artistID
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	bookings, err := svc.ListForArtist(context.Background(), artistID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	none, err := svc.ListForArtist(context.Background(), "artist-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
