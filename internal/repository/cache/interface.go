// File: internal/repository/cache/interface.go
package cache

import (
	"context"
	"errors"

	"github.com/sanarte/go-sanarte/internal/domain"
)

// ErrCacheMiss is returned by every Get when no row exists for the key.
var ErrCacheMiss = errors.New("cache miss")

// SearchCacheRepository stores whole result arrays keyed by the normalized
// free-text query.
type SearchCacheRepository interface {
	Get(ctx context.Context, query string) ([]domain.SearchResult, error)
	Put(ctx context.Context, query string, results []domain.SearchResult) error
}

// SymptomCacheRepository stores generated detail documents keyed by slug.
// Upsert converges concurrent regenerations onto a single row.
type SymptomCacheRepository interface {
	Get(ctx context.Context, slug string) (*domain.SymptomDetail, error)
	Upsert(ctx context.Context, slug, name string, detail *domain.SymptomDetail) error
}

// CatalogRepository reads the curated, authoritative documents. Writes
// happen only through the enrichment tool.
type CatalogRepository interface {
	Get(ctx context.Context, slug string) (*domain.SymptomDetail, error)
	Upsert(ctx context.Context, slug string, detail *domain.SymptomDetail) error
}
