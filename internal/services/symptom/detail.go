// File: internal/services/symptom/detail.go
package symptom

import (
	"context"
	"errors"
	"time"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/repository/cache"
	"github.com/sanarte/go-sanarte/internal/services/gemini"
)

// DetailService resolves a full symptom document through catalog → cache →
// generation, in that strict order. It never substitutes invented generic
// content when generation fails: serving fabricated detail for a named
// symptom is worse than surfacing the error.
type DetailService struct {
	catalog     cache.CatalogRepository
	symptomRepo cache.SymptomCacheRepository
	generator   gemini.Generator
	policy      gemini.RetryPolicy
	logger      Logger

	writeTimeout time.Duration
}

func NewDetailService(catalog cache.CatalogRepository, symptomRepo cache.SymptomCacheRepository, generator gemini.Generator, logger Logger) *DetailService {
	return &DetailService{
		catalog:      catalog,
		symptomRepo:  symptomRepo,
		generator:    generator,
		policy:       gemini.DetailRetryPolicy(),
		logger:       logger,
		writeTimeout: 10 * time.Second,
	}
}

// GetSymptomDetail returns the document for a symptom display name.
func (s *DetailService) GetSymptomDetail(ctx context.Context, name string) (*domain.SymptomDetail, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, NewValidationError("detail", "symptom name is empty")
	}

	// 1. Curated catalog: trusted unconditionally when complete.
	if doc, err := s.catalog.Get(ctx, slug); err == nil {
		if doc.IsComplete() {
			s.logger.Debug("detail served from catalog", "slug", slug)
			return doc, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("catalog read failed, continuing", "slug", slug, "error", err)
	}

	// 2. Generated cache: complete and not a known placeholder.
	if doc, err := s.symptomRepo.Get(ctx, slug); err == nil {
		if doc.IsComplete() && !doc.IsPoisoned() {
			s.logger.Debug("detail served from cache", "slug", slug)
			return doc, nil
		}
		if doc.IsPoisoned() {
			// Treated as a miss so the entry self-heals via upsert.
			s.logger.Warn("poisoned cache entry detected, regenerating", "slug", slug)
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("symptom cache read failed, continuing", "slug", slug, "error", err)
	}

	// 3. Full miss: generate.
	return s.generate(ctx, name, slug)
}

// Regenerate skips the read path entirely and overwrites whatever is
// cached for the symptom. Admin tooling.
func (s *DetailService) Regenerate(ctx context.Context, name string) (*domain.SymptomDetail, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, NewValidationError("regenerate", "symptom name is empty")
	}
	return s.generate(ctx, name, slug)
}

func (s *DetailService) generate(ctx context.Context, name, slug string) (*domain.SymptomDetail, error) {
	s.logger.Info("generating symptom detail", "slug", slug)

	messages := []domain.ChatMessage{{Role: domain.RoleUser, Content: maestroPrompt(name)}}

	text, err := gemini.WithRetry(ctx, s.policy, s.logger, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, messages, true)
	})
	if err != nil {
		return nil, NewGenerationError(name, err)
	}

	doc, err := parseDetail(name, text)
	if err != nil {
		// A malformed document cannot be safely shown. No recovery.
		return nil, err
	}

	s.writeBack(slug, name, doc)

	return doc, nil
}

// writeBack upserts the document in a detached task. The success path
// never blocks on cache-write completion; failures are logged and the
// request still succeeds.
func (s *DetailService) writeBack(slug, name string, doc *domain.SymptomDetail) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()

		if err := s.symptomRepo.Upsert(ctx, slug, name, doc); err != nil {
			s.logger.Error("symptom cache write failed", "slug", slug, "error", err)
			return
		}
		s.logger.Debug("symptom cached", "slug", slug)
	}()
}
