package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pricedeck/pricedeck/internal/config"
	"github.com/pricedeck/pricedeck/internal/sources/openrouter"
	"github.com/pricedeck/pricedeck/internal/sources/rates"
	"github.com/pricedeck/pricedeck/internal/store"
	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/constants"
	"github.com/pricedeck/pricedeck/pkg/logging"
	"github.com/pricedeck/pricedeck/pkg/reconcile"
)

var (
	syncPrune   bool
	syncDryRun  bool
	syncTimeout time.Duration
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the persisted catalog against the model feed",
	Long: `Sync fetches the current exchange rate and the full OpenRouter model
catalog, then reconciles both against the store: new providers and models are
created, changed prices get a new history row (replacing any same-day row),
and unchanged models are skipped.

With --prune, models missing from the fresh catalog are deleted along with
their price history. Without it the run never deletes anything.

The process exits zero when a run completes, even if individual records were
skipped after write failures; missing store credentials or a failed catalog
fetch exit non-zero.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncPrune, "prune", false, "delete models missing from the fresh catalog")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "log planned writes without applying them")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", constants.SyncTimeout, "overall run timeout")
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), syncTimeout)
	defer cancel()

	// Missing credentials abort before any network traffic
	storeClient, err := store.New(config.StoreURL(), config.StoreServiceKey())
	if err != nil {
		return err
	}

	// Rate and catalog fetches are order-independent; the rate is
	// best-effort while a catalog failure is fatal.
	rate := rates.New(config.RatesURL(), catalogs.CurrencyEUR).Fetch(ctx)

	entries, err := openrouter.New(config.CatalogURL()).Fetch(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Catalog fetch failed, aborting sync")
		return err
	}

	engine := reconcile.New(storeClient,
		reconcile.WithPrune(syncPrune),
		reconcile.WithDryRun(syncDryRun),
	)

	_, err = engine.Run(ctx, entries, rate)
	return err
}
