package reconcile_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/reconcile"
)

// fakeStore is an in-memory reconcile.Store. Rows behave like PostgREST
// tables: ids are minted on insert and model deletion cascades to prices.
type fakeStore struct {
	providers []catalogs.Provider
	models    []catalogs.Model
	prices    []catalogs.Price
	nextID    int64

	failCreateModel string // slug whose creation is rejected
	failListModels  bool
	writes          int
}

func (s *fakeStore) mint() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) ListProviders(_ context.Context) ([]catalogs.Provider, error) {
	return append([]catalogs.Provider(nil), s.providers...), nil
}

func (s *fakeStore) CreateProvider(_ context.Context, p catalogs.Provider) (catalogs.Provider, error) {
	s.writes++
	p.ID = s.mint()
	s.providers = append(s.providers, p)
	return p, nil
}

func (s *fakeStore) UpdateProvider(_ context.Context, id int64, patch map[string]any) error {
	s.writes++
	for i := range s.providers {
		if s.providers[i].ID != id {
			continue
		}
		if v, ok := patch["name"]; ok {
			s.providers[i].Name = v.(string)
		}
		if v, ok := patch["is_active"]; ok {
			s.providers[i].IsActive = v.(bool)
		}
		return nil
	}
	return fmt.Errorf("provider %d not found", id)
}

func (s *fakeStore) ListModels(_ context.Context) ([]catalogs.Model, error) {
	if s.failListModels {
		return nil, fmt.Errorf("snapshot load failed")
	}
	return append([]catalogs.Model(nil), s.models...), nil
}

func (s *fakeStore) CreateModel(_ context.Context, m catalogs.Model) (catalogs.Model, error) {
	s.writes++
	if m.Slug == s.failCreateModel {
		return catalogs.Model{}, fmt.Errorf("store rejected model %s", m.Slug)
	}
	m.ID = s.mint()
	s.models = append(s.models, m)
	return m, nil
}

func (s *fakeStore) UpdateModel(_ context.Context, id int64, patch map[string]any) error {
	s.writes++
	for i := range s.models {
		if s.models[i].ID != id {
			continue
		}
		if v, ok := patch["provider_id"]; ok {
			s.models[i].ProviderID = v.(int64)
		}
		if v, ok := patch["name"]; ok {
			s.models[i].Name = v.(string)
		}
		if v, ok := patch["context_window"]; ok {
			s.models[i].ContextWindow = v.(int64)
		}
		if v, ok := patch["max_output_tokens"]; ok {
			s.models[i].MaxOutputTokens = v.(int64)
		}
		if v, ok := patch["capabilities"]; ok {
			s.models[i].Capabilities = v.([]catalogs.Capability)
		}
		if v, ok := patch["sort_order"]; ok {
			s.models[i].SortOrder = v.(int)
		}
		if v, ok := patch["is_active"]; ok {
			s.models[i].IsActive = v.(bool)
		}
		return nil
	}
	return fmt.Errorf("model %d not found", id)
}

func (s *fakeStore) DeleteModel(_ context.Context, id int64) error {
	s.writes++
	models := s.models[:0]
	for _, m := range s.models {
		if m.ID != id {
			models = append(models, m)
		}
	}
	s.models = models

	// Cascade to price rows, as the store schema does
	prices := s.prices[:0]
	for _, p := range s.prices {
		if p.ModelID != id {
			prices = append(prices, p)
		}
	}
	s.prices = prices
	return nil
}

func (s *fakeStore) LatestPrices(_ context.Context) (map[int64]catalogs.Price, error) {
	latest := make(map[int64]catalogs.Price)
	for _, p := range s.prices {
		current, ok := latest[p.ModelID]
		if !ok || p.EffectiveDate.Time().After(current.EffectiveDate.Time()) ||
			(p.EffectiveDate.Equal(current.EffectiveDate) && p.ID > current.ID) {
			latest[p.ModelID] = p
		}
	}
	return latest, nil
}

func (s *fakeStore) InsertPrice(_ context.Context, p catalogs.Price) (catalogs.Price, error) {
	s.writes++
	p.ID = s.mint()
	s.prices = append(s.prices, p)
	return p, nil
}

func (s *fakeStore) DeletePriceOn(_ context.Context, modelID int64, day catalogs.Date) error {
	s.writes++
	prices := s.prices[:0]
	for _, p := range s.prices {
		if p.ModelID == modelID && p.EffectiveDate.Equal(day) {
			continue
		}
		prices = append(prices, p)
	}
	s.prices = prices
	return nil
}

func (s *fakeStore) modelBySlug(slug string) (catalogs.Model, bool) {
	for _, m := range s.models {
		if m.Slug == slug {
			return m, true
		}
	}
	return catalogs.Model{}, false
}

func (s *fakeStore) pricesFor(modelID int64) []catalogs.Price {
	var rows []catalogs.Price
	for _, p := range s.prices {
		if p.ModelID == modelID {
			rows = append(rows, p)
		}
	}
	return rows
}

// entry builds a catalog entry the way the boundary would: name defaulted,
// text modality, fixed limits.
func entry(rawID, prompt, completion string) catalogs.CatalogEntry {
	return catalogs.CatalogEntry{
		RawID:           rawID,
		Name:            rawID,
		PromptPrice:     prompt,
		CompletionPrice: completion,
		ContextWindow:   8192,
		MaxOutputTokens: 4096,
		InputModalities: []string{"text"},
	}
}

var syncDay = time.Date(2026, 8, 28, 6, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return syncDay }

func TestRunNewModelScenario(t *testing.T) {
	store := &fakeStore{}
	engine := reconcile.New(store, reconcile.WithClock(fixedClock))

	entries := []catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.000001", "0.000004")}
	report, err := engine.Run(context.Background(), entries, 0.92)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 1, report.TotalFetched)
	assert.Equal(t, 0.92, report.ExchangeRate)

	require.Len(t, store.providers, 1)
	assert.Equal(t, "OpenAI", store.providers[0].Name)
	assert.Equal(t, "openai", store.providers[0].Slug)
	assert.True(t, store.providers[0].IsActive)

	model, ok := store.modelBySlug("gpt-5-mini")
	require.True(t, ok)
	assert.Equal(t, store.providers[0].ID, model.ProviderID)
	assert.Equal(t, []catalogs.Capability{catalogs.CapabilityText}, model.Capabilities)

	rows := store.pricesFor(model.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.92, rows[0].InputPricePerMillion)
	assert.Equal(t, 3.68, rows[0].OutputPricePerMillion)
	assert.Equal(t, catalogs.CurrencyEUR, rows[0].Currency)
	assert.Equal(t, "2026-08-28", rows[0].EffectiveDate.String())
}

func TestRunIdempotent(t *testing.T) {
	store := &fakeStore{}
	entries := []catalogs.CatalogEntry{
		entry("openai/gpt-5-mini", "0.000001", "0.000004"),
		entry("anthropic/claude-opus-4.1", "0.000015", "0.000075"),
	}

	engine := reconcile.New(store, reconcile.WithClock(fixedClock))
	_, err := engine.Run(context.Background(), entries, 0.92)
	require.NoError(t, err)

	writesAfterFirst := store.writes

	report, err := engine.Run(context.Background(), entries, 0.92)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, writesAfterFirst, store.writes, "an unchanged catalog must trigger no writes")
}

func TestRunPriceChangeSameDayKeepsOneRow(t *testing.T) {
	store := &fakeStore{}
	engine := reconcile.New(store, reconcile.WithClock(fixedClock))

	first := []catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.000001", "0.000004")}
	_, err := engine.Run(context.Background(), first, 0.92)
	require.NoError(t, err)

	// The source price changes between two runs on the same calendar date
	second := []catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.000002", "0.000004")}
	report, err := engine.Run(context.Background(), second, 0.92)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)

	model, ok := store.modelBySlug("gpt-5-mini")
	require.True(t, ok)

	rows := store.pricesFor(model.ID)
	require.Len(t, rows, 1, "the second insert must replace the first, not append")
	assert.Equal(t, 1.84, rows[0].InputPricePerMillion)
	assert.Equal(t, "2026-08-28", rows[0].EffectiveDate.String())
}

func TestRunPriceToleranceBoundary(t *testing.T) {
	day := catalogs.DateOf(syncDay.AddDate(0, 0, -7))

	seed := func() *fakeStore {
		store := &fakeStore{nextID: 100}
		store.providers = []catalogs.Provider{
			{ID: 1, Name: "OpenAI", Slug: "openai", IsActive: true, SortOrder: 1},
		}
		store.models = []catalogs.Model{{
			ID:              2,
			ProviderID:      1,
			Name:            "openai/gpt-5-mini",
			Slug:            "gpt-5-mini",
			ContextWindow:   8192,
			MaxOutputTokens: 4096,
			Capabilities:    []catalogs.Capability{catalogs.CapabilityText},
			IsActive:        true,
			SortOrder:       0,
		}}
		store.prices = []catalogs.Price{{
			ID:                    3,
			ModelID:               2,
			InputPricePerMillion:  1.0,
			OutputPricePerMillion: 4.0,
			EffectiveDate:         day,
			Currency:              catalogs.CurrencyEUR,
		}}
		return store
	}

	t.Run("difference of exactly the tolerance is unchanged", func(t *testing.T) {
		store := seed()
		engine := reconcile.New(store, reconcile.WithClock(fixedClock))

		// 0.0000010001 * 1e6 * 1.0 = 1.0001, exactly one unit from 1.0
		entries := []catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.0000010001", "0.000004")}
		report, err := engine.Run(context.Background(), entries, 1.0)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, 0, report.Updated)
		require.Len(t, store.pricesFor(2), 1)
		assert.Equal(t, day.String(), store.pricesFor(2)[0].EffectiveDate.String(), "the old row must survive untouched")
	})

	t.Run("difference of twice the tolerance triggers an update", func(t *testing.T) {
		store := seed()
		engine := reconcile.New(store, reconcile.WithClock(fixedClock))

		entries := []catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.0000010002", "0.000004")}
		report, err := engine.Run(context.Background(), entries, 1.0)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Updated)
		rows := store.pricesFor(2)
		require.Len(t, rows, 2, "a changed price appends a new row, preserving history")
		assert.Equal(t, "2026-08-28", rows[1].EffectiveDate.String())
		assert.Equal(t, 1.0002, rows[1].InputPricePerMillion)
	})
}

func TestRunAddsMissingPriceRow(t *testing.T) {
	store := &fakeStore{nextID: 100}
	store.providers = []catalogs.Provider{{ID: 1, Name: "OpenAI", Slug: "openai", IsActive: true, SortOrder: 1}}
	store.models = []catalogs.Model{{
		ID: 2, ProviderID: 1, Name: "openai/gpt-5-mini", Slug: "gpt-5-mini",
		ContextWindow: 8192, MaxOutputTokens: 4096,
		Capabilities: []catalogs.Capability{catalogs.CapabilityText}, IsActive: true,
	}}

	engine := reconcile.New(store, reconcile.WithClock(fixedClock))
	report, err := engine.Run(context.Background(),
		[]catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.000001", "0.000004")}, 0.92)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated, "a known model with no price on file gets one without comparison")
	assert.Len(t, store.pricesFor(2), 1)
}

func TestRunPruneDeletesStaleModels(t *testing.T) {
	store := &fakeStore{}
	all := []catalogs.CatalogEntry{
		entry("openai/model-a", "0.000001", "0.000002"),
		entry("openai/model-b", "0.000001", "0.000002"),
		entry("openai/model-c", "0.000001", "0.000002"),
	}

	engine := reconcile.New(store, reconcile.WithPrune(true), reconcile.WithClock(fixedClock))
	_, err := engine.Run(context.Background(), all, 0.92)
	require.NoError(t, err)
	require.Len(t, store.models, 3)

	modelB, ok := store.modelBySlug("model-b")
	require.True(t, ok)

	fresh := []catalogs.CatalogEntry{all[0], all[2]}
	report, err := engine.Run(context.Background(), fresh, 0.92)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Deleted)
	require.Len(t, store.models, 2)
	_, ok = store.modelBySlug("model-b")
	assert.False(t, ok, "model B must be gone")
	assert.Empty(t, store.pricesFor(modelB.ID), "B's price history must cascade away")
}

func TestRunWithoutPruneKeepsStaleModels(t *testing.T) {
	store := &fakeStore{}
	all := []catalogs.CatalogEntry{
		entry("openai/model-a", "0.000001", "0.000002"),
		entry("openai/model-b", "0.000001", "0.000002"),
	}

	engine := reconcile.New(store, reconcile.WithClock(fixedClock))
	_, err := engine.Run(context.Background(), all, 0.92)
	require.NoError(t, err)

	report, err := engine.Run(context.Background(), all[:1], 0.92)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Deleted)
	assert.Len(t, store.models, 2, "the update-only variant never deletes")
}

func TestRunWriteFailureSkipsEntryAndContinues(t *testing.T) {
	store := &fakeStore{failCreateModel: "bad-model"}
	engine := reconcile.New(store, reconcile.WithClock(fixedClock))

	entries := []catalogs.CatalogEntry{
		entry("openai/bad-model", "0.000001", "0.000002"),
		entry("openai/good-model", "0.000001", "0.000002"),
	}
	report, err := engine.Run(context.Background(), entries, 0.92)
	require.NoError(t, err, "a single bad record must never abort the run")

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Created)
	_, ok := store.modelBySlug("good-model")
	assert.True(t, ok)
}

func TestRunSnapshotFailureIsFatal(t *testing.T) {
	store := &fakeStore{failListModels: true}
	engine := reconcile.New(store, reconcile.WithClock(fixedClock))

	_, err := engine.Run(context.Background(),
		[]catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.000001", "0.000004")}, 0.92)
	require.Error(t, err)
	assert.Zero(t, store.writes, "nothing may be written when the snapshot load fails")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	store := &fakeStore{}
	engine := reconcile.New(store, reconcile.WithDryRun(true), reconcile.WithPrune(true), reconcile.WithClock(fixedClock))

	entries := []catalogs.CatalogEntry{entry("openai/gpt-5-mini", "0.000001", "0.000004")}
	report, err := engine.Run(context.Background(), entries, 0.92)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created, "dry run still tallies planned outcomes")
	assert.Zero(t, store.writes)
	assert.Empty(t, store.providers)
	assert.Empty(t, store.models)
	assert.Empty(t, store.prices)
}

func TestRunFallbackProviderScenario(t *testing.T) {
	store := &fakeStore{}
	engine := reconcile.New(store, reconcile.WithClock(fixedClock))

	entries := []catalogs.CatalogEntry{entry("some-brand-new/foo-bar-7b", "0.0000001", "")}
	report, err := engine.Run(context.Background(), entries, 0.92)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	require.Len(t, store.providers, 1)
	assert.Equal(t, "OpenRouter", store.providers[0].Name, "unmatched ids land on the catalog's own brand, not an error")
	assert.Equal(t, "openrouter", store.providers[0].Slug)
}
