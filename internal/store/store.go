// Package store is the artifact store: persistence plus a read-through serve
// cache and per-key coalescing of concurrent generation requests.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
	"github.com/get-hunter/hero365-app-sub011/internal/logger"
)

// Repository is the persistence contract the store builds on.
type Repository interface {
	GetCanonical(ctx context.Context, businessID, path string) (*domain.Artifact, error)
	HasPublished(ctx context.Context, businessID, path string) (bool, error)
	InsertVersion(ctx context.Context, a *domain.Artifact, makeCanonical bool) (*domain.Artifact, error)
}

// GenerateFunc produces content and metrics for one spec on demand.
type GenerateFunc func(ctx context.Context) (*domain.ContentVariant, domain.QualityMetrics, error)

// Store persists and serves artifacts. Concurrent generation requests for the
// same (business, path) key coalesce into a single underlying generation.
type Store struct {
	repo     Repository
	redis    *redis.Client
	cacheTTL time.Duration
	group    singleflight.Group
	logger   logger.Logger
}

// New creates a store. redisClient may be nil; the serve cache is then
// skipped.
func New(repo Repository, redisClient *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Store{
		repo:     repo,
		redis:    redisClient,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func cacheKey(businessID, path string) string {
	return fmt.Sprintf("artifact:%s:%s", businessID, path)
}

// Get returns the servable artifact for a key, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, businessID, path string) (*domain.Artifact, error) {
	if a, ok := s.cacheGet(ctx, businessID, path); ok {
		return a, nil
	}

	a, err := s.repo.GetCanonical(ctx, businessID, path)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, a)
	return a, nil
}

// HasPublished reports whether a published artifact exists for a key.
func (s *Store) HasPublished(ctx context.Context, businessID, path string) (bool, error) {
	return s.repo.HasPublished(ctx, businessID, path)
}

// Upsert stores a new artifact version for a spec. Content that passed the
// quality gate becomes the published canonical version atomically; content
// that failed is stored as a draft and the previous published version, if
// any, remains servable.
func (s *Store) Upsert(ctx context.Context, businessID string, spec domain.PageSpec, cv *domain.ContentVariant, m domain.QualityMetrics) (*domain.Artifact, error) {
	now := time.Now().UTC()
	status := domain.StatusPublished
	if !m.PassedQualityGate {
		status = domain.StatusDraft
	}

	artifact := &domain.Artifact{
		ID:         uuid.New(),
		BusinessID: businessID,
		Spec:       spec,
		Path:       spec.Path(),
		Content:    *cv,
		Metrics:    m,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	stored, err := s.repo.InsertVersion(ctx, artifact, m.PassedQualityGate)
	if err != nil {
		return nil, fmt.Errorf("upsert artifact %s: %w", spec.Key(), err)
	}

	if m.PassedQualityGate {
		s.cacheSet(ctx, stored)
	} else {
		s.logger.Info("artifact stored as draft, previous published version stays servable",
			logger.String("business_id", businessID),
			logger.String("path", stored.Path),
			logger.Float64("score", m.OverallScore))
	}
	return stored, nil
}

// GetOrGenerate returns the servable artifact for a spec, generating it on
// demand when missing. Simultaneous callers for the same key share one
// generation.
func (s *Store) GetOrGenerate(ctx context.Context, businessID string, spec domain.PageSpec, gen GenerateFunc) (*domain.Artifact, error) {
	key := businessID + "|" + spec.Key()

	v, err, _ := s.group.Do(key, func() (any, error) {
		if a, getErr := s.Get(ctx, businessID, spec.Path()); getErr == nil {
			return a, nil
		} else if !errors.Is(getErr, domain.ErrNotFound) {
			return nil, getErr
		}

		cv, m, genErr := gen(ctx)
		if genErr != nil {
			return nil, genErr
		}
		return s.Upsert(ctx, businessID, spec, cv, m)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Artifact), nil
}

func (s *Store) cacheGet(ctx context.Context, businessID, path string) (*domain.Artifact, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, cacheKey(businessID, path)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("artifact cache read failed", logger.Error(err))
		}
		return nil, false
	}

	var a domain.Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		s.logger.Warn("artifact cache entry corrupt, dropping",
			logger.String("path", path), logger.Error(err))
		s.redis.Del(ctx, cacheKey(businessID, path))
		return nil, false
	}
	return &a, true
}

func (s *Store) cacheSet(ctx context.Context, a *domain.Artifact) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(a.BusinessID, a.Path), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("artifact cache write failed", logger.Error(err))
	}
}
