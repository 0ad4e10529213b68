package sync

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/build-with-chris/pepe-api/internal/models"
)

// Gage mirrors the artist's fee criteria form. The fee itself is never
// derived locally; every mutation replaces the displayed figures with
// the server's freshly computed ones. Load, Update and Breakdown fail
// independently of each other.
type Gage struct {
	client *Client

	mu       sync.Mutex
	criteria models.GageCriteria
	info     models.GageInfo
	loaded   bool
}

func NewGage(client *Client) *Gage {
	return &Gage{client: client}
}

// Load fetches the criteria and the server-computed gage figures.
func (g *Gage) Load(ctx context.Context) (*models.GageStatus, error) {
	raw, err := g.client.withEnsureRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return g.client.do(ctx, http.MethodGet, "/api/artists/me/gage-criteria", nil)
	})
	if err != nil {
		return nil, fmt.Errorf("load gage criteria: %w", err)
	}

	var status models.GageStatus
	if err := decode(raw, &status); err != nil {
		return nil, fmt.Errorf("decode gage criteria: %w", err)
	}

	g.mu.Lock()
	g.criteria = status.Criteria
	g.info = status.GageInfo
	g.loaded = true
	g.mu.Unlock()
	return &status, nil
}

// Update sends the edited criteria. Local state only changes after the
// server accepts, and the displayed fee figures come straight from the
// response.
func (g *Gage) Update(ctx context.Context, criteria models.GageCriteria) (*models.GageUpdateResult, error) {
	raw, err := g.client.withEnsureRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return g.client.do(ctx, http.MethodPut, "/api/artists/me/gage-criteria", criteria)
	})
	if err != nil {
		return nil, fmt.Errorf("update gage criteria: %w", err)
	}

	var result models.GageUpdateResult
	if err := decode(raw, &result); err != nil {
		return nil, fmt.Errorf("decode gage update: %w", err)
	}

	g.mu.Lock()
	g.criteria = criteria
	g.info.CalculatedGage = &result.CalculatedGage
	g.info.AdminOverride = result.AdminOverride
	g.info.CurrentRange = result.PriceRange
	g.loaded = true
	g.mu.Unlock()
	return &result, nil
}

// Breakdown fetches the per-component contribution detail. Read-only;
// nothing is merged into the form state.
func (g *Gage) Breakdown(ctx context.Context) (*models.GageBreakdown, error) {
	raw, err := g.client.withEnsureRetry(ctx, func(ctx context.Context) ([]byte, error) {
		return g.client.do(ctx, http.MethodGet, "/api/artists/me/gage-calculation", nil)
	})
	if err != nil {
		return nil, fmt.Errorf("load gage breakdown: %w", err)
	}

	var breakdown models.GageBreakdown
	if err := decode(raw, &breakdown); err != nil {
		return nil, fmt.Errorf("decode gage breakdown: %w", err)
	}
	return &breakdown, nil
}

// State returns the last loaded criteria and fee figures.
func (g *Gage) State() (models.GageCriteria, models.GageInfo, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.criteria, g.info, g.loaded
}
