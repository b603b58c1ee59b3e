// Package resolver maps inbound hostnames to business identities with an
// in-memory TTL cache and a backend-call fallback with bounded retry.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/get-hunter/hero365-app-sub011/internal/cache"
	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
	"github.com/get-hunter/hero365-app-sub011/internal/metrics"
	"github.com/get-hunter/hero365-app-sub011/internal/retry"
)

// slugPattern validates platform subdomain slugs.
var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Backend resolves a hostname to a business id.
type Backend interface {
	ResolveHost(ctx context.Context, hostname string) (string, error)
}

// HTTPBackend is the HTTP implementation of Backend.
type HTTPBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend creates a resolution backend client. The per-attempt timeout
// is enforced by the caller's context, so the transport itself carries none.
func NewHTTPBackend(baseURL string) *HTTPBackend {
	return &HTTPBackend{baseURL: baseURL, client: &http.Client{}}
}

// ResolveHost asks the backend which business owns a hostname.
func (b *HTTPBackend) ResolveHost(ctx context.Context, hostname string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/hosts/resolve?hostname=%s", b.baseURL, url.QueryEscape(hostname))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build resolve request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", hostname, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", domain.ErrUnresolvedHost, hostname)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolve %s: unexpected status %d", hostname, resp.StatusCode)
	}

	var payload struct {
		BusinessID string `json:"business_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode resolve response: %w", err)
	}
	if payload.BusinessID == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUnresolvedHost, hostname)
	}
	return payload.BusinessID, nil
}

// Config holds resolver tunables.
type Config struct {
	// PlatformDomain is the shared domain for {slug}.platform-domain hosts.
	PlatformDomain string
	// CacheTTL bounds how long resolutions are reused.
	CacheTTL time.Duration
	// MaxAttempts bounds backend calls per resolution.
	MaxAttempts int
	// AttemptTimeout bounds each backend call.
	AttemptTimeout time.Duration
	// MaxCacheEntries bounds the resolution cache.
	MaxCacheEntries int
	// DevBusinessID bypasses resolution entirely. Development only; there is
	// no default business identity in production.
	DevBusinessID string
}

// Resolver maps hostnames to business ids.
type Resolver struct {
	backend Backend
	cache   *cache.TTLCache[string]
	cfg     Config
	logger  logger.Logger
	metrics *metrics.Metrics
}

// New creates a resolver.
func New(backend Backend, cfg Config, log logger.Logger, m *metrics.Metrics) *Resolver {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 2
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = 3 * time.Second
	}
	if cfg.MaxCacheEntries <= 0 {
		cfg.MaxCacheEntries = 10_000
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		backend: backend,
		cache:   cache.New[string](cfg.CacheTTL, cfg.MaxCacheEntries),
		cfg:     cfg,
		logger:  log,
		metrics: m,
	}
}

// Resolve maps a hostname to a business id. Cache first, then the backend
// with bounded retry. Subdomain hosts are validated locally before the
// backend call; invalid slugs fail fast. Exhaustion yields ErrUnresolvedHost.
func (r *Resolver) Resolve(ctx context.Context, hostname string) (string, error) {
	if r.cfg.DevBusinessID != "" {
		return r.cfg.DevBusinessID, nil
	}

	host := normalizeHost(hostname)
	if host == "" {
		return "", fmt.Errorf("%w: empty hostname", domain.ErrUnresolvedHost)
	}

	if id, ok := r.cache.Get(host); ok {
		r.metrics.ResolverCacheHit()
		return id, nil
	}

	// Fast-path validation for platform subdomains. Custom domains skip
	// straight to the backend.
	if slug, ok := r.subdomainSlug(host); ok {
		if !slugPattern.MatchString(slug) {
			return "", fmt.Errorf("%w: invalid subdomain %q", domain.ErrUnresolvedHost, slug)
		}
	}

	var businessID string
	err := retry.Do(ctx, retry.Config{
		MaxAttempts:  r.cfg.MaxAttempts,
		InitialDelay: 200 * time.Millisecond,
		IsRetryable: func(err error) bool {
			// Unknown hosts are definitive; everything else gets retried.
			return !errors.Is(err, domain.ErrUnresolvedHost)
		},
	}, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.AttemptTimeout)
		defer cancel()

		id, err := r.backend.ResolveHost(attemptCtx, host)
		if err != nil {
			return err
		}
		businessID = id
		return nil
	})
	if err != nil {
		r.logger.Warn("host resolution failed",
			logger.String("hostname", host),
			logger.Error(err))
		return "", fmt.Errorf("%w: %s", domain.ErrUnresolvedHost, host)
	}

	r.cache.Set(host, businessID)
	return businessID, nil
}

// subdomainSlug extracts the slug from a platform subdomain host.
func (r *Resolver) subdomainSlug(host string) (string, bool) {
	if r.cfg.PlatformDomain == "" {
		return "", false
	}
	suffix := "." + r.cfg.PlatformDomain
	if !strings.HasSuffix(host, suffix) {
		return "", false
	}
	slug := strings.TrimSuffix(host, suffix)
	if slug == "" || strings.Contains(slug, ".") {
		return "", false
	}
	return slug, true
}

// normalizeHost lowercases the hostname and strips any port.
func normalizeHost(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}
