package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

// memRepo is an in-memory Repository for store tests.
type memRepo struct {
	mu        sync.Mutex
	canonical map[string]*domain.Artifact
	versions  map[string]int
	inserts   int
}

func newMemRepo() *memRepo {
	return &memRepo{
		canonical: make(map[string]*domain.Artifact),
		versions:  make(map[string]int),
	}
}

func repoKey(businessID, path string) string { return businessID + "|" + path }

func (r *memRepo) GetCanonical(ctx context.Context, businessID, path string) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.canonical[repoKey(businessID, path)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) HasPublished(ctx context.Context, businessID, path string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.canonical[repoKey(businessID, path)]
	return ok, nil
}

func (r *memRepo) InsertVersion(ctx context.Context, a *domain.Artifact, makeCanonical bool) (*domain.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := repoKey(a.BusinessID, a.Path)
	r.versions[key]++
	r.inserts++

	stored := *a
	stored.Version = r.versions[key]
	if makeCanonical {
		r.canonical[key] = &stored
	}
	return &stored, nil
}

func (r *memRepo) insertCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inserts
}

func passingVariant() (*domain.ContentVariant, domain.QualityMetrics) {
	cv := &domain.ContentVariant{
		Title:     "HVAC Repair in Austin",
		Body:      "body",
		Method:    domain.MethodTemplate,
		WordCount: 650,
		CreatedAt: time.Now().UTC(),
	}
	return cv, domain.QualityMetrics{OverallScore: 78, WordCount: 650, PassedQualityGate: true}
}

func testStoreSpec() domain.PageSpec {
	return domain.PageSpec{ServiceID: "hvac-repair", LocationID: "austin", Variant: domain.VariantStandard}
}

func TestUpsertPublishesPassingContent(t *testing.T) {
	repo := newMemRepo()
	s := New(repo, nil, time.Minute, nil)

	cv, m := passingVariant()
	a, err := s.Upsert(context.Background(), "biz-1", testStoreSpec(), cv, m)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPublished, a.Status)
	assert.Equal(t, 1, a.Version)
	assert.NotEqual(t, uuid.Nil, a.ID)

	got, err := s.Get(context.Background(), "biz-1", testStoreSpec().Path())
	require.NoError(t, err)
	assert.Equal(t, a.Version, got.Version)
}

func TestUpsertDraftsFailingContent(t *testing.T) {
	repo := newMemRepo()
	s := New(repo, nil, time.Minute, nil)
	ctx := context.Background()
	spec := testStoreSpec()

	cv, m := passingVariant()
	published, err := s.Upsert(ctx, "biz-1", spec, cv, m)
	require.NoError(t, err)

	failing := domain.QualityMetrics{OverallScore: 30, WordCount: 200, PassedQualityGate: false}
	draft, err := s.Upsert(ctx, "biz-1", spec, cv, failing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, draft.Status)
	assert.Equal(t, 2, draft.Version, "failing content still gets a version")

	servable, err := s.Get(ctx, "biz-1", spec.Path())
	require.NoError(t, err)
	assert.Equal(t, published.Version, servable.Version, "previous published version stays servable")
}

func TestGetMissing(t *testing.T) {
	s := New(newMemRepo(), nil, time.Minute, nil)
	_, err := s.Get(context.Background(), "biz-1", "/services/hvac-repair/austin")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrGenerateCoalescesConcurrentCallers(t *testing.T) {
	repo := newMemRepo()
	s := New(repo, nil, time.Minute, nil)
	spec := testStoreSpec()

	var generations atomic.Int32
	release := make(chan struct{})
	gen := func(ctx context.Context) (*domain.ContentVariant, domain.QualityMetrics, error) {
		generations.Add(1)
		<-release
		cv, m := passingVariant()
		return cv, m, nil
	}

	const callers = 16
	results := make([]*domain.Artifact, callers)
	errs := make([]error, callers)

	var started, done sync.WaitGroup
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = s.GetOrGenerate(context.Background(), "biz-1", spec, gen)
		}(i)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond) // let callers pile onto the singleflight key
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), generations.Load(), "concurrent callers share one generation")
	assert.Equal(t, 1, repo.insertCount())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].ID, results[i].ID, "all callers see the same artifact")
	}
}

func TestGetOrGenerateServesExisting(t *testing.T) {
	repo := newMemRepo()
	s := New(repo, nil, time.Minute, nil)
	ctx := context.Background()
	spec := testStoreSpec()

	cv, m := passingVariant()
	_, err := s.Upsert(ctx, "biz-1", spec, cv, m)
	require.NoError(t, err)

	gen := func(ctx context.Context) (*domain.ContentVariant, domain.QualityMetrics, error) {
		t.Fatal("generation must not run when an artifact exists")
		return nil, domain.QualityMetrics{}, nil
	}
	a, err := s.GetOrGenerate(ctx, "biz-1", spec, gen)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, a.Status)
}

func TestGetOrGenerateIsolatesBusinesses(t *testing.T) {
	repo := newMemRepo()
	s := New(repo, nil, time.Minute, nil)
	ctx := context.Background()
	spec := testStoreSpec()

	gen := func(ctx context.Context) (*domain.ContentVariant, domain.QualityMetrics, error) {
		cv, m := passingVariant()
		return cv, m, nil
	}

	a1, err := s.GetOrGenerate(ctx, "biz-1", spec, gen)
	require.NoError(t, err)
	a2, err := s.GetOrGenerate(ctx, "biz-2", spec, gen)
	require.NoError(t, err)

	assert.NotEqual(t, a1.ID, a2.ID, "same path under different businesses is a different key")
	assert.Equal(t, 2, repo.insertCount())
}
