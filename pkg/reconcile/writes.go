package reconcile

import (
	"context"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/logging"
)

// Dry-run-aware write helpers. Each performs the store call, or logs the
// planned write and fabricates the store's response when dry-run is set.

func (e *Engine) createProvider(ctx context.Context, p catalogs.Provider) (catalogs.Provider, error) {
	if e.dryRun {
		logging.Ctx(ctx).Info().Str("provider", p.Slug).Msg("Dry run: would create provider")
		p.ID = e.nextSyntheticID()
		return p, nil
	}
	return e.store.CreateProvider(ctx, p)
}

func (e *Engine) updateProvider(ctx context.Context, id int64, patch map[string]any) error {
	if e.dryRun {
		logging.Ctx(ctx).Info().Int64("provider_id", id).Msg("Dry run: would update provider")
		return nil
	}
	return e.store.UpdateProvider(ctx, id, patch)
}

func (e *Engine) createModel(ctx context.Context, m catalogs.Model) (catalogs.Model, error) {
	if e.dryRun {
		logging.Ctx(ctx).Info().Str("model", m.Slug).Msg("Dry run: would create model")
		m.ID = e.nextSyntheticID()
		return m, nil
	}
	return e.store.CreateModel(ctx, m)
}

func (e *Engine) updateModel(ctx context.Context, id int64, patch map[string]any) error {
	if e.dryRun {
		logging.Ctx(ctx).Info().Int64("model_id", id).Msg("Dry run: would update model")
		return nil
	}
	return e.store.UpdateModel(ctx, id, patch)
}

func (e *Engine) deleteModel(ctx context.Context, id int64) error {
	if e.dryRun {
		logging.Ctx(ctx).Info().Int64("model_id", id).Msg("Dry run: would delete model")
		return nil
	}
	return e.store.DeleteModel(ctx, id)
}

// insertPrice appends a price row effective today and records it as the
// model's latest price in the run snapshot.
func (e *Engine) insertPrice(ctx context.Context, snap *snapshot, modelID int64, input, output float64) error {
	price := catalogs.Price{
		ModelID:               modelID,
		InputPricePerMillion:  input,
		OutputPricePerMillion: output,
		EffectiveDate:         catalogs.DateOf(e.now()),
		Currency:              catalogs.CurrencyEUR,
	}

	if e.dryRun {
		logging.Ctx(ctx).Info().
			Int64("model_id", modelID).
			Float64("input_per_million", input).
			Float64("output_per_million", output).
			Msg("Dry run: would insert price row")
		price.ID = e.nextSyntheticID()
		snap.latestPrices[modelID] = price
		return nil
	}

	inserted, err := e.store.InsertPrice(ctx, price)
	if err != nil {
		return err
	}
	snap.latestPrices[modelID] = inserted
	return nil
}

func (e *Engine) deletePriceOn(ctx context.Context, modelID int64, day catalogs.Date) error {
	if e.dryRun {
		logging.Ctx(ctx).Info().Int64("model_id", modelID).Str("date", day.String()).Msg("Dry run: would delete same-day price row")
		return nil
	}
	return e.store.DeletePriceOn(ctx, modelID, day)
}

// nextSyntheticID mints a negative placeholder id during dry runs, so
// fabricated rows can never collide with store-minted ids.
func (e *Engine) nextSyntheticID() int64 {
	e.syntheticID--
	return e.syntheticID
}
