package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

func testResolverConfig() Config {
	return Config{
		PlatformDomain: "tradesites.app",
		CacheTTL:       time.Minute,
		MaxAttempts:    2,
		AttemptTimeout: time.Second,
	}
}

// resolveServer maps hostnames to business ids and counts calls.
func resolveServer(t *testing.T, hosts map[string]string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		id, ok := hosts[r.URL.Query().Get("hostname")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"business_id": id}))
	}))
}

func TestResolveSubdomain(t *testing.T) {
	srv := resolveServer(t, map[string]string{"elite-hvac-austin.tradesites.app": "biz-1"}, nil)
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	id, err := r.Resolve(context.Background(), "elite-hvac-austin.tradesites.app")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)
}

func TestResolveCachesResolution(t *testing.T) {
	var calls atomic.Int32
	srv := resolveServer(t, map[string]string{"elite-hvac-austin.tradesites.app": "biz-1"}, &calls)
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := r.Resolve(ctx, "elite-hvac-austin.tradesites.app")
		require.NoError(t, err)
		assert.Equal(t, "biz-1", id)
	}
	assert.Equal(t, int32(1), calls.Load(), "repeat resolutions served from cache")
}

func TestResolveNormalizesHost(t *testing.T) {
	var calls atomic.Int32
	srv := resolveServer(t, map[string]string{"elite-hvac-austin.tradesites.app": "biz-1"}, &calls)
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	ctx := context.Background()

	id, err := r.Resolve(ctx, "Elite-HVAC-Austin.Tradesites.App:443")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)

	id, err = r.Resolve(ctx, "elite-hvac-austin.tradesites.app")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)
	assert.Equal(t, int32(1), calls.Load(), "case and port variants share one cache entry")
}

func TestResolveCustomDomain(t *testing.T) {
	srv := resolveServer(t, map[string]string{"elitehvacaustin.com": "biz-1"}, nil)
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	id, err := r.Resolve(context.Background(), "elitehvacaustin.com")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)
}

func TestResolveUnknownHost(t *testing.T) {
	var calls atomic.Int32
	srv := resolveServer(t, map[string]string{}, &calls)
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	_, err := r.Resolve(context.Background(), "nobody.tradesites.app")
	assert.ErrorIs(t, err, domain.ErrUnresolvedHost)
	assert.Equal(t, int32(1), calls.Load(), "unknown hosts are definitive, not retried")
}

func TestResolveInvalidSubdomainSlugFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := resolveServer(t, map[string]string{}, &calls)
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	_, err := r.Resolve(context.Background(), "bad_slug!.tradesites.app")
	assert.ErrorIs(t, err, domain.ErrUnresolvedHost)
	assert.Zero(t, calls.Load(), "invalid slugs never reach the backend")
}

func TestResolveEmptyHostname(t *testing.T) {
	r := New(nil, Config{PlatformDomain: "tradesites.app"}, nil, nil)
	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnresolvedHost)
}

func TestResolveDevOverride(t *testing.T) {
	cfg := testResolverConfig()
	cfg.DevBusinessID = "dev-biz"

	r := New(nil, cfg, nil, nil)
	id, err := r.Resolve(context.Background(), "anything.example.com")
	require.NoError(t, err)
	assert.Equal(t, "dev-biz", id)
}

func TestResolveRetriesTransientBackendFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"business_id": "biz-1"}))
	}))
	defer srv.Close()

	r := New(NewHTTPBackend(srv.URL), testResolverConfig(), nil, nil)
	id, err := r.Resolve(context.Background(), "elite-hvac-austin.tradesites.app")
	require.NoError(t, err)
	assert.Equal(t, "biz-1", id)
	assert.Equal(t, int32(2), calls.Load())
}

// backendFunc adapts a function to the Backend interface.
type backendFunc func(ctx context.Context, hostname string) (string, error)

func (f backendFunc) ResolveHost(ctx context.Context, hostname string) (string, error) {
	return f(ctx, hostname)
}

// tenantError wraps the unresolved-host sentinel without repeating its
// message text.
type tenantError struct{}

func (tenantError) Error() string { return "no tenant" }

func (tenantError) Unwrap() error { return domain.ErrUnresolvedHost }

func TestResolveWrappedUnknownHostNotRetried(t *testing.T) {
	var calls atomic.Int32
	backend := backendFunc(func(ctx context.Context, hostname string) (string, error) {
		calls.Add(1)
		return "", tenantError{}
	})

	r := New(backend, testResolverConfig(), nil, nil)
	_, err := r.Resolve(context.Background(), "elite-hvac-austin.tradesites.app")
	assert.ErrorIs(t, err, domain.ErrUnresolvedHost)
	assert.Equal(t, int32(1), calls.Load(), "classification follows the error chain, not its message")
}

func TestSubdomainSlug(t *testing.T) {
	r := New(nil, Config{PlatformDomain: "tradesites.app"}, nil, nil)

	slug, ok := r.subdomainSlug("elite-hvac.tradesites.app")
	require.True(t, ok)
	assert.Equal(t, "elite-hvac", slug)

	_, ok = r.subdomainSlug("elitehvac.com")
	assert.False(t, ok)

	_, ok = r.subdomainSlug("a.b.tradesites.app")
	assert.False(t, ok, "nested subdomains are not platform slugs")
}
