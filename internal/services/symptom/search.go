// File: internal/services/symptom/search.go
package symptom

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/repository/cache"
	"github.com/sanarte/go-sanarte/internal/services/gemini"
)

// SearchService resolves free-text queries to candidate lists. It never
// fails outward: any downstream failure yields the static fallback list
// with the error attached to the first element.
type SearchService struct {
	searchRepo cache.SearchCacheRepository
	generator  gemini.Generator
	policy     gemini.RetryPolicy
	logger     Logger

	writeTimeout time.Duration
}

func NewSearchService(searchRepo cache.SearchCacheRepository, generator gemini.Generator, logger Logger) *SearchService {
	return &SearchService{
		searchRepo:   searchRepo,
		generator:    generator,
		policy:       gemini.DetailRetryPolicy(),
		logger:       logger,
		writeTimeout: 10 * time.Second,
	}
}

// SearchSymptoms returns candidates for a query. Always resolves with at
// least one element.
func (s *SearchService) SearchSymptoms(ctx context.Context, query string) []domain.SearchResult {
	key := NormalizeQuery(query)
	if key == "" {
		return FallbackResults("consulta vacía")
	}

	// 1. Exact-match cache on the normalized query.
	if cached, err := s.searchRepo.Get(ctx, key); err == nil {
		s.logger.Debug("search served from cache", "query", key)
		return cached
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("search cache read failed, continuing", "query", key, "error", err)
	}

	// 2. Generate.
	messages := []domain.ChatMessage{{Role: domain.RoleUser, Content: searchPrompt(query)}}

	text, err := gemini.WithRetry(ctx, s.policy, s.logger, func(ctx context.Context) (string, error) {
		return s.generator.Generate(ctx, messages, true)
	})
	if err != nil {
		s.logger.Error("search generation failed, serving fallback", "query", key, "error", err)
		return FallbackResults(err.Error())
	}

	results, err := parseSearchResults(text)
	if err != nil {
		s.logger.Error("search results unparseable, serving fallback", "query", key, "error", err)
		return FallbackResults(err.Error())
	}

	s.writeBack(key, results)

	return results
}

// writeBack caches the result array in a detached task; write failures
// never reach the caller.
func (s *SearchService) writeBack(key string, results []domain.SearchResult) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
		defer cancel()

		if err := s.searchRepo.Put(ctx, key, results); err != nil {
			s.logger.Error("search cache write failed", "query", key, "error", err)
			return
		}
		s.logger.Debug("search cached", "query", key)
	}()
}

// LocalSearch runs the zero-cost autocomplete over the in-memory name
// list: case-insensitive substring, at most 5 matches, no-op below 2
// characters.
func LocalSearch(query string) []string {
	if utf8.RuneCountInString(query) < 2 {
		return []string{}
	}

	lower := strings.ToLower(query)
	matches := []string{}
	for _, name := range KnownSymptomNames {
		if strings.Contains(strings.ToLower(name), lower) {
			matches = append(matches, name)
			if len(matches) == 5 {
				break
			}
		}
	}
	return matches
}
