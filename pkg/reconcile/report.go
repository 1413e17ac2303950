package reconcile

import (
	"time"

	"github.com/rs/zerolog"
)

// Report is the tally of one reconciliation run. Created counts new models,
// Updated counts models whose price row was added or replaced, Skipped counts
// models whose price was within tolerance, Deleted counts pruned models, and
// Failed counts entries abandoned after a write failure.
type Report struct {
	RunID        string
	Created      int
	Updated      int
	Skipped      int
	Deleted      int
	Failed       int
	TotalFetched int
	ExchangeRate float64
	Duration     time.Duration
}

// LogSummary emits the final tally line a human operator reads after a run.
func (r *Report) LogSummary(logger *zerolog.Logger) {
	logger.Info().
		Str("run_id", r.RunID).
		Int("fetched", r.TotalFetched).
		Int("created", r.Created).
		Int("updated", r.Updated).
		Int("skipped", r.Skipped).
		Int("deleted", r.Deleted).
		Int("failed", r.Failed).
		Float64("exchange_rate", r.ExchangeRate).
		Dur("duration", r.Duration).
		Msg("Catalog reconciliation complete")
}
