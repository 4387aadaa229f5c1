// File: internal/services/symptom/detail_test.go
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

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
}

func (g *fakeGenerator) Generate(ctx context.Context, messages []domain.ChatMessage, jsonMode bool) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type fakeDetailStore struct {
	mu      sync.Mutex
	docs    map[string]*domain.SymptomDetail
	upserts int
}

func newFakeDetailStore() *fakeDetailStore {
	return &fakeDetailStore{docs: map[string]*domain.SymptomDetail{}}
}

func (f *fakeDetailStore) Get(ctx context.Context, slug string) (*domain.SymptomDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[slug]; ok {
		return doc, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeDetailStore) Upsert(ctx context.Context, slug, name string, detail *domain.SymptomDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[slug] = detail
	f.upserts++
	return nil
}

func (f *fakeDetailStore) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

func (f *fakeDetailStore) rows() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// fakeCatalogStore adapts fakeDetailStore to the catalog contract.
type fakeCatalogStore struct {
	*fakeDetailStore
}

func (f *fakeCatalogStore) Upsert(ctx context.Context, slug string, detail *domain.SymptomDetail) error {
	return f.fakeDetailStore.Upsert(ctx, slug, "", detail)
}

func newDetailService(catalog *fakeCatalogStore, store *fakeDetailStore, gen *fakeGenerator) *DetailService {
	s := NewDetailService(catalog, store, gen, &noopLogger{})
	// Short backoff keeps failure-path tests fast.
	s.policy = gemini.RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond, BackoffFactor: 2}
	return s
}

type noopLogger struct{}

func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func TestDetailCatalogHasPriorityOverCache(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()
	gen := &fakeGenerator{}

	fromCatalog := completeDetail("Gastritis")
	fromCatalog.ShortDefinition = "Versión curada."
	fromCache := completeDetail("Gastritis")
	fromCache.ShortDefinition = "Versión generada."

	catalog.docs["gastritis"] = fromCatalog
	store.docs["gastritis"] = fromCache

	s := newDetailService(catalog, store, gen)

	doc, err := s.GetSymptomDetail(context.Background(), "Gastritis")
	require.NoError(t, err)
	assert.Equal(t, "Versión curada.", doc.ShortDefinition)
	assert.Equal(t, 0, gen.callCount(), "a catalog hit must not reach the generator")
}

func TestDetailServedFromCacheOnCatalogMiss(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()
	gen := &fakeGenerator{}

	store.docs["gastritis"] = completeDetail("Gastritis")

	s := newDetailService(catalog, store, gen)

	doc, err := s.GetSymptomDetail(context.Background(), "Gastritis")
	require.NoError(t, err)
	assert.Equal(t, "Gastritis", doc.Name)
	assert.Equal(t, 0, gen.callCount())
}

func TestDetailIncompleteCacheEntryIsAMiss(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()

	incomplete := completeDetail("Gastritis")
	incomplete.ZonaDetalle = ""
	store.docs["gastritis"] = incomplete

	gen := &fakeGenerator{reply: fencedJSON(t, completeDetail("Gastritis"))}
	s := newDetailService(catalog, store, gen)

	doc, err := s.GetSymptomDetail(context.Background(), "Gastritis")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ZonaDetalle)
	assert.Equal(t, 1, gen.callCount(), "incomplete entries must trigger regeneration")
}

func TestDetailPoisonedCacheSelfHeals(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()

	poisoned := completeDetail("Gastritis")
	poisoned.ShortDefinition = domain.GenericPlaceholderDefinition
	store.docs["gastritis"] = poisoned

	fresh := completeDetail("Gastritis")
	gen := &fakeGenerator{reply: fencedJSON(t, fresh)}
	s := newDetailService(catalog, store, gen)

	doc, err := s.GetSymptomDetail(context.Background(), "Gastritis")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.callCount(), "poisoned entry must be treated as a miss")
	assert.NotEqual(t, domain.GenericPlaceholderDefinition, doc.ShortDefinition)

	// The write-back is detached; wait for it, then confirm the entry was
	// overwritten in place, not duplicated.
	require.Eventually(t, func() bool { return store.upsertCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, store.rows())
	cured, err := store.Get(context.Background(), "gastritis")
	require.NoError(t, err)
	assert.False(t, cured.IsPoisoned())
}

func TestDetailNeverFabricatesOnFailure(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()
	gen := &fakeGenerator{err: gemini.NewUpstreamError(503, "overloaded")}

	s := newDetailService(catalog, store, gen)

	doc, err := s.GetSymptomDetail(context.Background(), "Migraña")
	require.Error(t, err)
	assert.Nil(t, doc)

	var se *SymptomError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrTypeGeneration, se.Type)
	assert.Equal(t, 0, store.upsertCount(), "nothing may be cached on failure")
}

func TestDetailMalformedGenerationIsFatal(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()
	gen := &fakeGenerator{reply: "```json\n{broken\n```"}

	s := newDetailService(catalog, store, gen)

	_, err := s.GetSymptomDetail(context.Background(), "Migraña")
	require.Error(t, err)

	var se *SymptomError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrTypeShape, se.Type)
	assert.Equal(t, 0, store.upsertCount())
}

func TestDetailEndToEndMigrana(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()
	gen := &fakeGenerator{reply: fencedJSON(t, completeDetail("Migraña"))}

	s := newDetailService(catalog, store, gen)

	doc, err := s.GetSymptomDetail(context.Background(), "Migraña")
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ZonaDetalle)
	assert.Equal(t, 1, gen.callCount())

	require.Eventually(t, func() bool { return store.upsertCount() == 1 }, time.Second, 10*time.Millisecond)
	_, err = store.Get(context.Background(), "migrana")
	require.NoError(t, err, "document must be cached under the folded slug")

	// Second lookup is a cache hit; the generator stays untouched.
	again, err := s.GetSymptomDetail(context.Background(), "Migraña")
	require.NoError(t, err)
	assert.Equal(t, doc.Name, again.Name)
	assert.Equal(t, 1, gen.callCount())
}

func TestDetailEmptyNameIsRejected(t *testing.T) {
	s := newDetailService(&fakeCatalogStore{newFakeDetailStore()}, newFakeDetailStore(), &fakeGenerator{})

	_, err := s.GetSymptomDetail(context.Background(), "  ¿? ")
	require.Error(t, err)

	var se *SymptomError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrTypeValidation, se.Type)
}

func TestRegenerateSkipsReadPath(t *testing.T) {
	catalog := &fakeCatalogStore{newFakeDetailStore()}
	store := newFakeDetailStore()

	curated := completeDetail("Gastritis")
	curated.ShortDefinition = "Versión curada."
	catalog.docs["gastritis"] = curated

	regenerated := completeDetail("Gastritis")
	regenerated.ShortDefinition = "Versión nueva."
	gen := &fakeGenerator{reply: fencedJSON(t, regenerated)}

	s := newDetailService(catalog, store, gen)

	doc, err := s.Regenerate(context.Background(), "Gastritis")
	require.NoError(t, err)
	assert.Equal(t, "Versión nueva.", doc.ShortDefinition)
	assert.Equal(t, 1, gen.callCount())
}
