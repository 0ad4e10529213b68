package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/build-with-chris/pepe-api/internal/dto"
	"github.com/build-with-chris/pepe-api/pkg/dates"
)

// Availability keeps a local mirror of the artist's availability slots
// in lockstep with the backend. Adds are pessimistic: local state only
// changes after the server accepts and the list is refetched, so
// server-assigned IDs are never guessed. Removes are optimistic: the
// slot disappears locally first and is reinserted if the delete fails.
// That asymmetry is deliberate and must not be flattened into one
// policy.
type Availability struct {
	client   *Client
	resolver *Resolver

	mu    sync.Mutex
	slots []dto.SlotResponse
}

func NewAvailability(client *Client, resolver *Resolver) *Availability {
	return &Availability{client: client, resolver: resolver}
}

// Slots returns a copy of the cached slot list.
func (a *Availability) Slots() []dto.SlotResponse {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]dto.SlotResponse, len(a.slots))
	copy(out, a.slots)
	return out
}

// Fetch reloads the slot list from the backend, healing an unlinked
// artist once along the way.
func (a *Availability) Fetch(ctx context.Context) ([]dto.SlotResponse, error) {
	if _, err := a.resolver.ArtistID(ctx); err != nil {
		return nil, err
	}

	raw, err := a.client.withEnsureRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return a.client.do(ctx, http.MethodGet, "/api/availability", nil)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch availability: %w", err)
	}

	slots, err := decodeSlots(raw)
	if err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Date < slots[j].Date })

	a.mu.Lock()
	a.slots = slots
	a.mu.Unlock()
	return a.Slots(), nil
}

// Add creates a slot for the given calendar day and refetches the full
// list so the local mirror carries the server-assigned ID. Local state
// is untouched when the add fails.
func (a *Availability) Add(ctx context.Context, date string) error {
	if _, err := dates.ParseISODate(date); err != nil {
		return err
	}
	if _, err := a.resolver.ArtistID(ctx); err != nil {
		return err
	}

	_, err := a.client.withEnsureRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return a.client.do(ctx, http.MethodPost, "/api/availability", dto.AddSlotRequest{Date: date})
	})
	if err != nil {
		return fmt.Errorf("add availability %s: %w", date, err)
	}

	if _, err := a.Fetch(ctx); err != nil {
		a.client.logger.Warn("refetch after add failed", zap.Error(err))
	}
	return nil
}

// Remove deletes the slot optimistically. On backend failure the slot
// is restored at its original position and the error returned.
func (a *Availability) Remove(ctx context.Context, slotID string) error {
	artistID, err := a.resolver.ArtistID(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	idx := -1
	for i, slot := range a.slots {
		if slot.ID == slotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("slot %s not in local state", slotID)
	}
	removed := a.slots[idx]
	a.slots = append(a.slots[:idx:idx], a.slots[idx+1:]...)
	a.mu.Unlock()

	path := fmt.Sprintf("/api/availability/%s?artist_id=%s", slotID, artistID)
	if _, err := a.client.do(ctx, http.MethodDelete, path, nil); err != nil {
		a.mu.Lock()
		a.slots = append(a.slots, removed)
		sort.Slice(a.slots, func(i, j int) bool { return a.slots[i].Date < a.slots[j].Date })
		a.mu.Unlock()
		return fmt.Errorf("remove availability %s: %w", slotID, err)
	}
	return nil
}

// HasDate reports whether the cached list contains the given ISO date.
func (a *Availability) HasDate(date string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, slot := range a.slots {
		if slot.Date == date {
			return true
		}
	}
	return false
}

// decodeSlots accepts the three list shapes backends have shipped over
// time: a bare array, {items: [...]} and {slots: [...]}, each with or
// without the response envelope around it.
func decodeSlots(raw []byte) ([]dto.SlotResponse, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	var bare []dto.SlotResponse
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Items []dto.SlotResponse `json:"items"`
		Slots []dto.SlotResponse `json:"slots"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	return wrapped.Slots, nil
}
