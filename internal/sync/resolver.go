package sync

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/build-with-chris/pepe-api/internal/models"
)

// Resolver resolves and caches the current user's artist ID. When the
// backend reports no linked artist, the resolver runs the ensure
// endpoint once and retries the lookup; failures are never cached, so
// the next call starts fresh.
type Resolver struct {
	client *Client

	mu       sync.Mutex
	artistID string
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// ArtistID returns the cached artist ID, resolving it on first use.
// Concurrent callers share one resolution.
func (r *Resolver) ArtistID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.artistID != "" {
		return r.artistID, nil
	}

	artist, err := r.resolve(ctx)
	if err != nil {
		return "", err
	}
	r.artistID = artist.ID
	return r.artistID, nil
}

// Me returns the full current-artist record, running the same
// ensure-and-retry as ArtistID when the profile does not exist yet.
func (r *Resolver) Me(ctx context.Context) (*models.Artist, error) {
	artist, err := r.resolve(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.artistID = artist.ID
	r.mu.Unlock()
	return artist, nil
}

func (r *Resolver) resolve(ctx context.Context) (*models.Artist, error) {
	raw, err := r.client.do(ctx, http.MethodGet, "/api/artists/me", nil)
	if err != nil && (isNotLinkedStatus(err) || IsUnlinkedArtist(err)) {
		r.client.logger.Info("artist profile missing, ensuring")
		if _, ensureErr := r.client.do(ctx, http.MethodPost, "/api/artists/me/ensure", nil); ensureErr != nil {
			return nil, fmt.Errorf("ensure artist: %w", ensureErr)
		}
		raw, err = r.client.do(ctx, http.MethodGet, "/api/artists/me", nil)
	}
	if err != nil {
		return nil, err
	}

	var artist models.Artist
	if err := decode(raw, &artist); err != nil {
		return nil, fmt.Errorf("decode artist: %w", err)
	}
	if artist.ID == "" {
		return nil, fmt.Errorf("artist response missing id")
	}
	return &artist, nil
}

// Invalidate drops the cached ID, forcing re-resolution on next use.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.artistID = ""
	r.mu.Unlock()
}
