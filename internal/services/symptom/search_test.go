// File: internal/services/symptom/search_test.go
package symptom

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanarte/go-sanarte/internal/domain"
	"github.com/sanarte/go-sanarte/internal/repository/cache"
	"github.com/sanarte/go-sanarte/internal/services/gemini"
)

type fakeSearchStore struct {
	mu      sync.Mutex
	entries map[string][]domain.SearchResult
	puts    int
}

func newFakeSearchStore() *fakeSearchStore {
	return &fakeSearchStore{entries: map[string][]domain.SearchResult{}}
}

func (f *fakeSearchStore) Get(ctx context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if results, ok := f.entries[query]; ok {
		return results, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeSearchStore) Put(ctx context.Context, query string, results []domain.SearchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[query] = results
	f.puts++
	return nil
}

func (f *fakeSearchStore) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

func newSearchService(store *fakeSearchStore, gen *fakeGenerator) *SearchService {
	s := NewSearchService(store, gen, &noopLogger{})
	s.policy = gemini.RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, BackoffFactor: 2}
	return s
}

func TestSearchServedFromCache(t *testing.T) {
	store := newFakeSearchStore()
	store.entries["dolor de cabeza"] = []domain.SearchResult{
		{Name: "Dolor de Cabeza", EmotionalMeaning: "x", Conflict: "y", Category: "Cabeza"},
	}
	gen := &fakeGenerator{}

	s := newSearchService(store, gen)

	results := s.SearchSymptoms(context.Background(), "  Dolor de Cabeza ")
	require.Len(t, results, 1)
	assert.Equal(t, "Dolor de Cabeza", results[0].Name)
	assert.Equal(t, 0, gen.callCount(), "a cache hit must not reach the generator")
}

func TestSearchGeneratesAndCachesOnMiss(t *testing.T) {
	store := newFakeSearchStore()
	gen := &fakeGenerator{reply: "```json\n" +
		`[{"name":"Migraña","emotionalMeaning":"a","conflict":"b","category":"Cabeza"},` +
		`{"name":"Cefalea","emotionalMeaning":"c","conflict":"d","category":"Cabeza"},` +
		`{"name":"Tensión","emotionalMeaning":"e","conflict":"f","category":"Emocional"}]` +
		"\n```"}

	s := newSearchService(store, gen)

	results := s.SearchSymptoms(context.Background(), "Migraña")
	require.Len(t, results, 3)
	assert.Equal(t, 1, gen.callCount())

	require.Eventually(t, func() bool { return store.putCount() == 1 }, time.Second, 10*time.Millisecond)
	cached, err := store.Get(context.Background(), "migraña")
	require.NoError(t, err, "results must be cached under the normalized query")
	assert.Len(t, cached, 3)
}

func TestSearchNeverFailsOutward(t *testing.T) {
	store := newFakeSearchStore()
	gen := &fakeGenerator{err: gemini.NewUpstreamError(503, "overloaded")}

	s := newSearchService(store, gen)

	results := s.SearchSymptoms(context.Background(), "algo raro")
	require.NotEmpty(t, results)
	assert.NotEmpty(t, results[0].ErrorMessage, "first element carries the failure for diagnostics")
	assert.True(t, results[0].IsFallback)
	assert.Equal(t, 0, store.putCount(), "fallback lists are never cached")
}

func TestSearchUnparseableOutputFallsBack(t *testing.T) {
	store := newFakeSearchStore()
	gen := &fakeGenerator{reply: "no soy json"}

	s := newSearchService(store, gen)

	results := s.SearchSymptoms(context.Background(), "algo raro")
	require.NotEmpty(t, results)
	assert.True(t, results[0].IsFallback)
	assert.NotEmpty(t, results[0].ErrorMessage)
}

func TestSearchEmptyQueryFallsBack(t *testing.T) {
	s := newSearchService(newFakeSearchStore(), &fakeGenerator{})

	results := s.SearchSymptoms(context.Background(), "   ")
	require.NotEmpty(t, results)
	assert.True(t, results[0].IsFallback)
}

func TestLocalSearch(t *testing.T) {
	assert.Empty(t, LocalSearch("d"), "queries under 2 characters are a no-op")
	assert.Empty(t, LocalSearch(""))

	matches := LocalSearch("dolor")
	assert.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), 5)
	for _, m := range matches {
		assert.Contains(t, m, "Dolor")
	}

	// Case-insensitive substring.
	assert.Contains(t, LocalSearch("MIGRA"), "Migraña")
}
