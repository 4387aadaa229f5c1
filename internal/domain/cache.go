// File: internal/domain/cache.go
package domain

import "time"

// SearchCacheEntry stores one whole result array keyed by the normalized
// free-text query. Plain inserts only; a duplicate query is tolerated.
type SearchCacheEntry struct {
	ID        uint   `gorm:"primarykey"`
	Query     string `gorm:"uniqueIndex;not null"`
	Results   []byte `gorm:"not null"` // JSON array of SearchResult
	CreatedAt time.Time
}

func (SearchCacheEntry) TableName() string { return "search_cache" }

// SymptomCacheEntry stores one generated detail document keyed by slug.
// Writes are upserts on slug so a poisoned entry converges on regeneration.
type SymptomCacheEntry struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"not null"`
	Data      []byte `gorm:"not null"` // JSON SymptomDetail
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SymptomCacheEntry) TableName() string { return "symptom_cache" }

// CatalogEntry is the curated, authoritative detail document for a slug.
// Read on every detail lookup; written only by the enrichment tool.
type CatalogEntry struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"uniqueIndex;not null"`
	Content   []byte `gorm:"not null"` // JSON SymptomDetail
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CatalogEntry) TableName() string { return "symptom_catalog" }
