// Package business loads and caches the business profile snapshot used as
// the variable source for generation runs.
package business

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/get-hunter/hero365-app-sub011/internal/cache"
	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
)

// BackendClient fetches business profiles from the business data provider.
type BackendClient interface {
	FetchBusiness(ctx context.Context, businessID string) (*domain.BusinessContext, error)
}

// HTTPBackend is the HTTP implementation of BackendClient.
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend creates a backend client for the given base URL.
func NewHTTPBackend(baseURL string, timeout time.Duration) *HTTPBackend {
	return &HTTPBackend{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchBusiness retrieves one business profile.
func (b *HTTPBackend) FetchBusiness(ctx context.Context, businessID string) (*domain.BusinessContext, error) {
	endpoint := fmt.Sprintf("%s/api/v1/businesses/%s", b.baseURL, url.PathEscape(businessID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build business request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch business %s: %w", businessID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch business %s: unexpected status %d", businessID, resp.StatusCode)
	}

	var bc domain.BusinessContext
	if err := json.NewDecoder(resp.Body).Decode(&bc); err != nil {
		return nil, fmt.Errorf("decode business %s: %w", businessID, err)
	}
	if bc.ID == "" {
		bc.ID = businessID
	}
	return &bc, nil
}

// Loader caches business contexts with a TTL and supplies a deterministic
// fallback when the provider is unavailable, so generation can still produce
// a degraded-but-valid page set.
type Loader struct {
	backend BackendClient
	cache   *cache.TTLCache[*domain.BusinessContext]
	logger  logger.Logger
}

// NewLoader creates a loader with the given backend and cache TTL.
func NewLoader(backend BackendClient, ttl time.Duration, maxEntries int, log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		backend: backend,
		cache:   cache.New[*domain.BusinessContext](ttl, maxEntries),
		logger:  log,
	}
}

// Load returns the business context for an id. Consumers always receive a
// copy; the cached snapshot is never handed out directly.
func (l *Loader) Load(ctx context.Context, businessID string) (*domain.BusinessContext, error) {
	if cached, ok := l.cache.Get(businessID); ok {
		return cached.Clone(), nil
	}

	bc, err := l.backend.FetchBusiness(ctx, businessID)
	if err != nil {
		l.logger.Warn("business provider unavailable, using fallback context",
			logger.String("business_id", businessID),
			logger.Error(err))
		// Fallback contexts are not cached so recovery is picked up promptly.
		return FallbackContext(businessID), nil
	}

	l.cache.Set(businessID, bc)
	return bc.Clone(), nil
}

// Invalidate drops the cached snapshot for a business.
func (l *Loader) Invalidate(businessID string) {
	l.cache.Delete(businessID)
}

// FallbackContext returns the fixed minimal context used when the business
// data provider cannot be reached. Deterministic: the same id always yields
// the same context.
func FallbackContext(businessID string) *domain.BusinessContext {
	return &domain.BusinessContext{
		ID:    businessID,
		Name:  "Your Local Service Team",
		Slug:  businessID,
		Phone: "(555) 000-0000",
		Services: []domain.Service{
			{ID: "general-services", Name: "General Services"},
		},
		Locations: []domain.Location{
			{ID: "local-area", City: "Your Area"},
		},
		YearsInTrade: 10,
		Rating:       4.8,
		ReviewCount:  50,
	}
}
