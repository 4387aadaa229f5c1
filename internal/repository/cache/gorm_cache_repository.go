// File: internal/repository/cache/gorm_cache_repository.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sanarte/go-sanarte/internal/domain"
)

type gormSearchCacheRepository struct {
	db *gorm.DB
}

func NewSearchCacheRepository(db *gorm.DB) SearchCacheRepository {
	return &gormSearchCacheRepository{db: db}
}

func (r *gormSearchCacheRepository) Get(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if query == "" {
		return nil, errors.New("invalid query")
	}

	var entry domain.SearchCacheEntry
	err := r.db.WithContext(ctx).Where("query = ?", query).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCacheMiss
		}
		log.Printf("[SearchCache] Database error reading query %q: %v", query, err)
		return nil, errors.New("database error reading search cache")
	}

	var results []domain.SearchResult
	if err := json.Unmarshal(entry.Results, &results); err != nil {
		// A row we cannot decode is as good as absent.
		log.Printf("[SearchCache] Corrupt payload for query %q: %v", query, err)
		return nil, ErrCacheMiss
	}
	return results, nil
}

func (r *gormSearchCacheRepository) Put(ctx context.Context, query string, results []domain.SearchResult) error {
	if query == "" || len(results) == 0 {
		return errors.New("invalid search cache write")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("could not encode results: %w", err)
	}

	entry := domain.SearchCacheEntry{Query: query, Results: payload}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		// Plain insert: a concurrent write for the same query already
		// cached something usable, so a duplicate key is not a failure.
		if isDuplicateKey(err) {
			return nil
		}
		log.Printf("[SearchCache] Database error caching query %q: %v", query, err)
		return errors.New("database error writing search cache")
	}
	return nil
}

type gormSymptomCacheRepository struct {
	db *gorm.DB
}

func NewSymptomCacheRepository(db *gorm.DB) SymptomCacheRepository {
	return &gormSymptomCacheRepository{db: db}
}

func (r *gormSymptomCacheRepository) Get(ctx context.Context, slug string) (*domain.SymptomDetail, error) {
	if slug == "" {
		return nil, errors.New("invalid slug")
	}

	var entry domain.SymptomCacheEntry
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCacheMiss
		}
		log.Printf("[SymptomCache] Database error reading slug %q: %v", slug, err)
		return nil, errors.New("database error reading symptom cache")
	}

	var detail domain.SymptomDetail
	if err := json.Unmarshal(entry.Data, &detail); err != nil {
		log.Printf("[SymptomCache] Corrupt payload for slug %q: %v", slug, err)
		return nil, ErrCacheMiss
	}
	return &detail, nil
}

func (r *gormSymptomCacheRepository) Upsert(ctx context.Context, slug, name string, detail *domain.SymptomDetail) error {
	if slug == "" || detail == nil {
		return errors.New("invalid symptom cache write")
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("could not encode detail: %w", err)
	}

	entry := domain.SymptomCacheEntry{Slug: slug, Name: name, Data: payload}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "data", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("[SymptomCache] Database error upserting slug %q: %v", slug, err)
		return errors.New("database error writing symptom cache")
	}
	return nil
}

type gormCatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &gormCatalogRepository{db: db}
}

func (r *gormCatalogRepository) Get(ctx context.Context, slug string) (*domain.SymptomDetail, error) {
	if slug == "" {
		return nil, errors.New("invalid slug")
	}

	var entry domain.CatalogEntry
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCacheMiss
		}
		log.Printf("[Catalog] Database error reading slug %q: %v", slug, err)
		return nil, errors.New("database error reading catalog")
	}

	var detail domain.SymptomDetail
	if err := json.Unmarshal(entry.Content, &detail); err != nil {
		log.Printf("[Catalog] Corrupt payload for slug %q: %v", slug, err)
		return nil, ErrCacheMiss
	}
	return &detail, nil
}

func (r *gormCatalogRepository) Upsert(ctx context.Context, slug string, detail *domain.SymptomDetail) error {
	if slug == "" || detail == nil {
		return errors.New("invalid catalog write")
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("could not encode catalog entry: %w", err)
	}

	entry := domain.CatalogEntry{Slug: slug, Content: payload}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("[Catalog] Database error upserting slug %q: %v", slug, err)
		return errors.New("database error writing catalog")
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
