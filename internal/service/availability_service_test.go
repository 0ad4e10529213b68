package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/internal/models"
	"github.com/build-with-chris/pepe-api/pkg/dates"
	appErrors "github.com/build-with-chris/pepe-api/pkg/errors"
)

type mockAvailabilityStore struct {
	slots  map[string]*models.AvailabilitySlot
	nextID int
}

func newMockAvailabilityStore() *mockAvailabilityStore {
	return &mockAvailabilityStore{slots: make(map[string]*models.AvailabilitySlot)}
}

func (m *mockAvailabilityStore) ListByArtist(_ context.Context, artistID string, from *time.Time) ([]models.AvailabilitySlot, error) {
	var out []models.AvailabilitySlot
	for _, s := range m.slots {
		if s.ArtistID != artistID {
			continue
		}
		if from != nil && s.Date.Before(*from) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockAvailabilityStore) FindByArtistAndDate(_ context.Context, artistID string, date time.Time) (*models.AvailabilitySlot, error) {
	for _, s := range m.slots {
		if s.ArtistID == artistID && dates.IsSameDay(s.Date, date) {
			clone := *s
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAvailabilityStore) Create(_ context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == "" {
		m.nextID++
		slot.ID = "slot-" + dates.FormatISODate(slot.Date)
	}
	clone := *slot
	m.slots[slot.ID] = &clone
	return nil
}

func (m *mockAvailabilityStore) Delete(_ context.Context, id, artistID string) error {
	s, ok := m.slots[id]
	if !ok || s.ArtistID != artistID {
		return sql.ErrNoRows
	}
	delete(m.slots, id)
	return nil
}

func TestAvailabilityAddAndList(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	slot, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-04", slot.Date)

	list, err := svc.List(context.Background(), "artist-1", false)
	require.NoError(t, err)
	require.Len(t, list.Slots, 1)
	assert.Equal(t, "2025-06-04", list.Slots[0].Date)
}

func TestAvailabilityAddDuplicateConflicts(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	_, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Status)
}

func TestAvailabilityAddRejectsMalformedDate(t *testing.T) {
	svc := NewAvailabilityService(newMockAvailabilityStore(), nil, nil)

	_, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "04.06.2025"})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestAvailabilityAddRangeSkipsExisting(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	_, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-02"})
	require.NoError(t, err)

	result, err := svc.AddRange(context.Background(), "artist-1", dto.AddRangeRequest{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-03",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, result.Added)
	assert.Equal(t, []string{"2025-06-02"}, result.Skipped)
}

func TestAvailabilityAddRangeRejectsReversed(t *testing.T) {
	svc := NewAvailabilityService(newMockAvailabilityStore(), nil, nil)

	_, err := svc.AddRange(context.Background(), "artist-1", dto.AddRangeRequest{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-01",
	})
	require.Error(t, err)
}

func TestAvailabilityAddRuleWeekends(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	result, err := svc.AddRule(context.Background(), "artist-1", dto.AddRuleRequest{
		StartDate: "2025-06-01",
		Rule:      "FREQ=WEEKLY;BYDAY=SA,SU;COUNT=4",
	})
	require.NoError(t, err)
	require.Len(t, result.Added, 4)
	// 2025-06-01 is a Sunday.
	assert.Equal(t, "2025-06-01", result.Added[0])
	for _, iso := range result.Added {
		day, perr := dates.ParseISODate(iso)
		require.NoError(t, perr)
		wd := day.Weekday()
		assert.True(t, wd == time.Saturday || wd == time.Sunday)
	}
}

func TestAvailabilityAddRuleInvalid(t *testing.T) {
	svc := NewAvailabilityService(newMockAvailabilityStore(), nil, nil)

	_, err := svc.AddRule(context.Background(), "artist-1", dto.AddRuleRequest{
		StartDate: "2025-06-01",
		Rule:      "FREQ=SOMETIMES",
	})
	require.Error(t, err)
}

func TestAvailabilityRemove(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	slot, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "artist-1", slot.ID))

	err = svc.Remove(context.Background(), "artist-1", slot.ID)
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestAvailabilityRemoveScopedToArtist(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	slot, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.NoError(t, err)

	err = svc.Remove(context.Background(), "artist-2", slot.ID)
	require.Error(t, err)
}

func TestAvailabilityExportCSV(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	_, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.NoError(t, err)

	data, err := svc.ExportCSV(context.Background(), "artist-1")
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "date,weekday")
	assert.Contains(t, text, "2025-06-04,Wednesday")
}

func TestAvailabilityICalFeed(t *testing.T) {
	store := newMockAvailabilityStore()
	svc := NewAvailabilityService(store, nil, nil)

	_, err := svc.Add(context.Background(), "artist-1", dto.AddSlotRequest{Date: "2025-06-04"})
	require.NoError(t, err)

	feed, err := svc.ICalFeed(context.Background(), "artist-1", "Luna Aerial")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR"))
	assert.Contains(t, feed, "Luna Aerial")
	assert.Contains(t, feed, "20250604")
}
