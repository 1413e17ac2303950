package reconcile

import "time"

// Option configures an Engine.
type Option func(*Engine)

// WithPrune enables the full-sync deletion pass: models whose slug is absent
// from the fresh catalog are deleted after all entries are processed. The
// create/update/skip logic is identical either way.
func WithPrune(prune bool) Option {
	return func(e *Engine) {
		e.prune = prune
	}
}

// WithDryRun logs every planned write without performing any. Counts are
// still tallied as if the writes had happened.
func WithDryRun(dryRun bool) Option {
	return func(e *Engine) {
		e.dryRun = dryRun
	}
}

// WithClock overrides the time source used for price effective dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}
