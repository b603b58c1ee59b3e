package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

// schema creates the artifacts table. Every generation writes a new version;
// the canonical flag marks the single servable version per (business, path).
const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	id           UUID PRIMARY KEY,
	business_id  TEXT NOT NULL,
	path         TEXT NOT NULL,
	service_id   TEXT NOT NULL,
	location_id  TEXT NOT NULL,
	variant      TEXT NOT NULL,
	version      INTEGER NOT NULL,
	status       TEXT NOT NULL,
	is_canonical BOOLEAN NOT NULL DEFAULT FALSE,
	content      JSONB NOT NULL,
	metrics      JSONB NOT NULL,
	ab_variants  JSONB,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	UNIQUE (business_id, path, version)
);
CREATE INDEX IF NOT EXISTS idx_artifacts_canonical
	ON artifacts (business_id, path) WHERE is_canonical;
`

// ArtifactRepository provides database operations for artifacts.
type ArtifactRepository struct {
	db *sqlx.DB
}

// NewArtifactRepository creates a repository instance.
func NewArtifactRepository(db *sqlx.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// EnsureSchema creates the artifacts table when missing.
func (r *ArtifactRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure artifacts schema: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (r *ArtifactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// artifactRow is the scan target for artifact queries.
type artifactRow struct {
	ID          uuid.UUID `db:"id"`
	BusinessID  string    `db:"business_id"`
	Path        string    `db:"path"`
	ServiceID   string    `db:"service_id"`
	LocationID  string    `db:"location_id"`
	Variant     string    `db:"variant"`
	Version     int       `db:"version"`
	Status      string    `db:"status"`
	IsCanonical bool      `db:"is_canonical"`
	Content     []byte    `db:"content"`
	Metrics     []byte    `db:"metrics"`
	ABVariants  []byte    `db:"ab_variants"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row *artifactRow) toDomain() (*domain.Artifact, error) {
	a := &domain.Artifact{
		ID:         row.ID,
		BusinessID: row.BusinessID,
		Path:       row.Path,
		Spec: domain.PageSpec{
			ServiceID:  row.ServiceID,
			LocationID: row.LocationID,
			Variant:    domain.Variant(row.Variant),
		},
		Status:    domain.ArtifactStatus(row.Status),
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Content, &a.Content); err != nil {
		return nil, fmt.Errorf("decode artifact content: %w", err)
	}
	if err := json.Unmarshal(row.Metrics, &a.Metrics); err != nil {
		return nil, fmt.Errorf("decode artifact metrics: %w", err)
	}
	if len(row.ABVariants) > 0 {
		if err := json.Unmarshal(row.ABVariants, &a.ABVariants); err != nil {
			return nil, fmt.Errorf("decode artifact ab variants: %w", err)
		}
	}
	return a, nil
}

const selectColumns = `id, business_id, path, service_id, location_id, variant,
	version, status, is_canonical, content, metrics, ab_variants, created_at, updated_at`

// GetCanonical retrieves the servable artifact for a (business, path) key.
func (r *ArtifactRepository) GetCanonical(ctx context.Context, businessID, path string) (*domain.Artifact, error) {
	row := &artifactRow{}
	query := `SELECT ` + selectColumns + `
		FROM artifacts
		WHERE business_id = $1 AND path = $2 AND is_canonical AND status = 'published'`

	err := r.db.GetContext(ctx, row, query, businessID, path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get canonical artifact: %w", err)
	}
	return row.toDomain()
}

// HasPublished reports whether a published canonical version exists for a
// key.
func (r *ArtifactRepository) HasPublished(ctx context.Context, businessID, path string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM artifacts
		WHERE business_id = $1 AND path = $2 AND is_canonical AND status = 'published')`

	if err := r.db.GetContext(ctx, &exists, query, businessID, path); err != nil {
		return false, fmt.Errorf("check published artifact: %w", err)
	}
	return exists, nil
}

// ListByBusiness returns the canonical artifacts for a business, newest
// first.
func (r *ArtifactRepository) ListByBusiness(ctx context.Context, businessID string, limit int) ([]*domain.Artifact, error) {
	rows := []artifactRow{}
	query := `SELECT ` + selectColumns + `
		FROM artifacts
		WHERE business_id = $1 AND is_canonical
		ORDER BY updated_at DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &rows, query, businessID, limit); err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	artifacts := make([]*domain.Artifact, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// InsertVersion writes a new artifact version inside one transaction. When
// makeCanonical is set, the previous canonical version is archived and the
// new version becomes the servable one; otherwise the new version is stored
// as a non-canonical draft and the previous published version stays
// untouched. Either the swap completes fully or the old state remains.
func (r *ArtifactRepository) InsertVersion(ctx context.Context, a *domain.Artifact, makeCanonical bool) (*domain.Artifact, error) {
	content, err := json.Marshal(a.Content)
	if err != nil {
		return nil, fmt.Errorf("encode artifact content: %w", err)
	}
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return nil, fmt.Errorf("encode artifact metrics: %w", err)
	}
	var abVariants []byte
	if len(a.ABVariants) > 0 {
		if abVariants, err = json.Marshal(a.ABVariants); err != nil {
			return nil, fmt.Errorf("encode artifact ab variants: %w", err)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin artifact transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var version int
	err = tx.GetContext(ctx, &version,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM artifacts WHERE business_id = $1 AND path = $2`,
		a.BusinessID, a.Path)
	if err != nil {
		return nil, fmt.Errorf("next artifact version: %w", err)
	}

	if makeCanonical {
		_, err = tx.ExecContext(ctx,
			`UPDATE artifacts SET is_canonical = FALSE, status = 'archived', updated_at = $3
			 WHERE business_id = $1 AND path = $2 AND is_canonical`,
			a.BusinessID, a.Path, a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("archive previous canonical: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO artifacts (id, business_id, path, service_id, location_id, variant,
			version, status, is_canonical, content, metrics, ab_variants, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ID, a.BusinessID, a.Path, a.Spec.ServiceID, a.Spec.LocationID, string(a.Spec.Variant),
		version, string(a.Status), makeCanonical, content, metrics, abVariants,
		a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert artifact version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit artifact version: %w", err)
	}

	stored := *a
	stored.Version = version
	return &stored, nil
}
