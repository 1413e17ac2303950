// Package reconcile implements the catalog reconciliation engine: it diffs a
// freshly fetched model catalog against the persisted provider, model, and
// price state and applies create, update, skip, and delete decisions through
// the store interface, preserving append-only price history.
//
// The engine is strictly sequential. Snapshots of the persisted state are
// loaded once at the start of a run; every store operation afterwards is one
// blocking round-trip. A write failure on one catalog entry abandons that
// entry and continues with the next, so a single bad record never aborts a
// run. Concurrent runs against one store are not supported; scheduling
// non-overlapping runs is an operational constraint.
package reconcile

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/logging"
)

// Store is the persistence interface the engine reconciles against.
type Store interface {
	// ListProviders returns all persisted providers, active or not.
	ListProviders(ctx context.Context) ([]catalogs.Provider, error)

	// CreateProvider inserts a provider and returns it with its minted id.
	CreateProvider(ctx context.Context, p catalogs.Provider) (catalogs.Provider, error)

	// UpdateProvider applies a partial update to one provider row.
	UpdateProvider(ctx context.Context, id int64, patch map[string]any) error

	// ListModels returns all persisted models, active or not.
	ListModels(ctx context.Context) ([]catalogs.Model, error)

	// CreateModel inserts a model and returns it with its minted id.
	CreateModel(ctx context.Context, m catalogs.Model) (catalogs.Model, error)

	// UpdateModel applies a partial update to one model row.
	UpdateModel(ctx context.Context, id int64, patch map[string]any) error

	// DeleteModel removes a model; the store cascades to its price rows.
	DeleteModel(ctx context.Context, id int64) error

	// LatestPrices returns the latest price per model, keyed by model id.
	LatestPrices(ctx context.Context) (map[int64]catalogs.Price, error)

	// InsertPrice appends a price row and returns it with its minted id.
	InsertPrice(ctx context.Context, p catalogs.Price) (catalogs.Price, error)

	// DeletePriceOn removes any price row for the model dated day.
	DeletePriceOn(ctx context.Context, modelID int64, day catalogs.Date) error
}

// Engine reconciles catalog entries against the store.
type Engine struct {
	store  Store
	prune  bool
	dryRun bool
	now    func() time.Time

	// syntheticID mints placeholder row ids during dry runs so downstream
	// decisions can still chain on "created" rows.
	syntheticID int64
}

// New creates a reconciliation engine.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// outcome is the terminal state of one catalog entry.
type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
)

// snapshot is the in-memory view of persisted state built at the start of a
// run and kept consistent with applied writes as the run progresses.
type snapshot struct {
	providersBySlug  map[string]catalogs.Provider // keyed by lowercased slug
	modelsBySlug     map[string]catalogs.Model    // keyed by slug
	latestPrices     map[int64]catalogs.Price     // keyed by model id
	seen             map[string]struct{}          // model slugs present in the fresh catalog
	nextProviderSort int
}

// Run executes one reconciliation pass over the fetched catalog entries.
// Snapshot load failures are fatal and occur before any write; afterwards
// the pass always completes and the returned report tallies the outcome of
// every entry.
func (e *Engine) Run(ctx context.Context, entries []catalogs.CatalogEntry, rate float64) (*Report, error) {
	start := time.Now()
	ctx = logging.WithRunID(ctx, uuid.NewString())
	log := logging.Ctx(ctx)

	report := &Report{
		RunID:        logging.RunID(ctx),
		TotalFetched: len(entries),
		ExchangeRate: rate,
	}

	snap, err := e.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("fetched", len(entries)).
		Int("known_providers", len(snap.providersBySlug)).
		Int("known_models", len(snap.modelsBySlug)).
		Float64("exchange_rate", rate).
		Bool("prune", e.prune).
		Bool("dry_run", e.dryRun).
		Msg("Starting catalog reconciliation")

	for position, entry := range entries {
		result, err := e.apply(ctx, snap, entry, position, rate)
		if err != nil {
			log.Warn().Err(err).Str("model", entry.RawID).Msg("Abandoning catalog entry after write failure")
			report.Failed++
			continue
		}
		switch result {
		case outcomeCreated:
			report.Created++
		case outcomeUpdated:
			report.Updated++
		default:
			report.Skipped++
		}
	}

	if e.prune {
		e.pruneStale(ctx, snap, report)
	}

	report.Duration = time.Since(start)
	report.LogSummary(log)
	return report, nil
}

// loadSnapshot fetches the persisted providers, models, and latest prices.
// Any failure here aborts the run before a single write has happened.
func (e *Engine) loadSnapshot(ctx context.Context) (*snapshot, error) {
	providers, err := e.store.ListProviders(ctx)
	if err != nil {
		return nil, err
	}
	models, err := e.store.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	latest, err := e.store.LatestPrices(ctx)
	if err != nil {
		return nil, err
	}

	maxSort := lo.MaxBy(providers, func(a, b catalogs.Provider) bool {
		return a.SortOrder > b.SortOrder
	}).SortOrder

	return &snapshot{
		providersBySlug: lo.KeyBy(providers, func(p catalogs.Provider) string {
			return strings.ToLower(p.Slug)
		}),
		modelsBySlug: lo.KeyBy(models, func(m catalogs.Model) string {
			return m.Slug
		}),
		latestPrices:     latest,
		seen:             make(map[string]struct{}, len(models)),
		nextProviderSort: maxSort + 1,
	}, nil
}

// apply runs the per-entry decision: resolve the provider, derive the model
// slug, then create the model with an initial price, refresh drifted
// metadata, and add, replace, or skip the price row.
func (e *Engine) apply(ctx context.Context, snap *snapshot, entry catalogs.CatalogEntry, position int, rate float64) (outcome, error) {
	log := logging.Ctx(ctx)

	modelSlug := entry.Slug()
	if modelSlug == "" {
		return outcomeSkipped, fmt.Errorf("cannot derive a slug from %q", entry.RawID)
	}
	// Mark the slug seen before any write so an entry that fails mid-way is
	// never pruned as stale.
	snap.seen[modelSlug] = struct{}{}

	provider, err := e.ensureProvider(ctx, snap, entry)
	if err != nil {
		return outcomeSkipped, err
	}

	input := NormalizePrice(entry.PromptPrice, rate)
	output := NormalizePrice(entry.CompletionPrice, rate)
	capabilities := catalogs.ExtractCapabilities(entry.InputModalities, entry.Tags)

	model, known := snap.modelsBySlug[modelSlug]
	if !known {
		created, err := e.createModel(ctx, catalogs.Model{
			ProviderID:      provider.ID,
			Name:            entry.Name,
			Slug:            modelSlug,
			ContextWindow:   entry.ContextWindow,
			MaxOutputTokens: entry.MaxOutputTokens,
			Capabilities:    capabilities,
			IsActive:        true,
			SortOrder:       position,
		})
		if err != nil {
			return outcomeSkipped, err
		}
		snap.modelsBySlug[modelSlug] = created

		// A brand-new model gets its initial price row without comparison
		if err := e.insertPrice(ctx, snap, created.ID, input, output); err != nil {
			return outcomeSkipped, err
		}
		log.Debug().Str("model", modelSlug).Str("provider", provider.Slug).Msg("Created model")
		return outcomeCreated, nil
	}

	if patch := modelPatch(model, provider.ID, entry, capabilities, position); len(patch) > 0 {
		if err := e.updateModel(ctx, model.ID, patch); err != nil {
			return outcomeSkipped, err
		}
		snap.modelsBySlug[modelSlug] = refreshModel(model, provider.ID, entry, capabilities, position)
		log.Debug().Str("model", modelSlug).Int("fields", len(patch)).Msg("Refreshed model metadata")
	}

	last, onFile := snap.latestPrices[model.ID]
	if !onFile {
		if err := e.insertPrice(ctx, snap, model.ID, input, output); err != nil {
			return outcomeSkipped, err
		}
		log.Debug().Str("model", modelSlug).Msg("Added missing price row")
		return outcomeUpdated, nil
	}

	if !priceChanged(input, last.InputPricePerMillion) && !priceChanged(output, last.OutputPricePerMillion) {
		return outcomeSkipped, nil
	}

	// Replace rather than append when the change lands on a day that already
	// has a row, keeping one price row per model per calendar day.
	today := catalogs.DateOf(e.now())
	if err := e.deletePriceOn(ctx, model.ID, today); err != nil {
		return outcomeSkipped, err
	}
	if err := e.insertPrice(ctx, snap, model.ID, input, output); err != nil {
		return outcomeSkipped, err
	}
	log.Info().
		Str("model", modelSlug).
		Float64("input_per_million", input).
		Float64("output_per_million", output).
		Msg("Price changed")
	return outcomeUpdated, nil
}

// ensureProvider resolves the entry's canonical provider and guarantees a
// provider row exists for it, creating or reactivating one as needed.
func (e *Engine) ensureProvider(ctx context.Context, snap *snapshot, entry catalogs.CatalogEntry) (catalogs.Provider, error) {
	name := ResolveProvider(entry.RawID)
	slug := catalogs.Slugify(name)
	key := strings.ToLower(slug)

	if provider, ok := snap.providersBySlug[key]; ok {
		if provider.Name != name || !provider.IsActive {
			patch := map[string]any{"name": name, "is_active": true}
			if err := e.updateProvider(ctx, provider.ID, patch); err != nil {
				return catalogs.Provider{}, err
			}
			provider.Name = name
			provider.IsActive = true
			snap.providersBySlug[key] = provider
		}
		return provider, nil
	}

	created, err := e.createProvider(ctx, catalogs.Provider{
		Name:      name,
		Slug:      slug,
		IsActive:  true,
		SortOrder: snap.nextProviderSort,
	})
	if err != nil {
		return catalogs.Provider{}, err
	}
	snap.providersBySlug[key] = created
	snap.nextProviderSort++

	logging.Ctx(ctx).Info().Str("provider", slug).Msg("Created provider")
	return created, nil
}

// pruneStale deletes every persisted model whose slug is absent from the
// fresh catalog. Deletion failures are logged and tallied, not fatal.
func (e *Engine) pruneStale(ctx context.Context, snap *snapshot, report *Report) {
	log := logging.Ctx(ctx)

	stale := lo.Reject(lo.Keys(snap.modelsBySlug), func(slug string, _ int) bool {
		_, ok := snap.seen[slug]
		return ok
	})
	sort.Strings(stale)

	for _, slug := range stale {
		model := snap.modelsBySlug[slug]
		if err := e.deleteModel(ctx, model.ID); err != nil {
			log.Warn().Err(err).Str("model", slug).Msg("Failed to delete stale model")
			report.Failed++
			continue
		}
		delete(snap.modelsBySlug, slug)
		report.Deleted++
		log.Info().Str("model", slug).Msg("Deleted model missing from catalog")
	}
}

// modelPatch compares a persisted model against the fresh entry and returns
// the columns that drifted. An empty patch means no write is needed, which
// keeps an unchanged catalog write-free on re-runs.
func modelPatch(existing catalogs.Model, providerID int64, entry catalogs.CatalogEntry, capabilities []catalogs.Capability, position int) map[string]any {
	patch := map[string]any{}

	if existing.ProviderID != providerID {
		patch["provider_id"] = providerID
	}
	if existing.Name != entry.Name {
		patch["name"] = entry.Name
	}
	if existing.ContextWindow != entry.ContextWindow {
		patch["context_window"] = entry.ContextWindow
	}
	if existing.MaxOutputTokens != entry.MaxOutputTokens {
		patch["max_output_tokens"] = entry.MaxOutputTokens
	}
	if !slices.Equal(existing.Capabilities, capabilities) {
		patch["capabilities"] = capabilities
	}
	if existing.SortOrder != position {
		patch["sort_order"] = position
	}
	if !existing.IsActive {
		patch["is_active"] = true
	}
	return patch
}

// refreshModel returns the persisted model with the fresh entry's metadata
// applied, mirroring the patch sent to the store.
func refreshModel(existing catalogs.Model, providerID int64, entry catalogs.CatalogEntry, capabilities []catalogs.Capability, position int) catalogs.Model {
	existing.ProviderID = providerID
	existing.Name = entry.Name
	existing.ContextWindow = entry.ContextWindow
	existing.MaxOutputTokens = entry.MaxOutputTokens
	existing.Capabilities = capabilities
	existing.SortOrder = position
	existing.IsActive = true
	return existing
}
