// Package catalogs defines the persisted row types for providers, models, and
// prices, plus the pure normalization helpers that turn raw catalog-feed data
// into those types: slug generation, capability extraction, and the provider
// alias table.
//
// The row types carry JSON tags matching the store's column names, so they
// serialize directly as PostgREST request and response bodies.
package catalogs
