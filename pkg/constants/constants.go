// Package constants provides shared constants used throughout the pricedeck codebase.
// This includes timeouts, precision settings, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to external feeds and the store
	DefaultHTTPTimeout = 30 * time.Second

	// SyncTimeout is the default timeout for a full sync run
	SyncTimeout = 10 * time.Minute
)

// Pricing constants define normalization and comparison settings
const (
	// TokensPerMillion converts a per-token price into a per-million-token price
	TokensPerMillion = 1_000_000

	// PriceDecimalPlaces is the number of decimal places prices are rounded to
	PriceDecimalPlaces = 4

	// PriceTolerance is the exclusive threshold below which two prices are
	// considered unchanged (abs(diff) > PriceTolerance triggers an update)
	PriceTolerance = 0.0001

	// FallbackEURRate is the USD to EUR rate used when the currency feed is unavailable
	FallbackEURRate = 0.92
)

// Identifier constants define limits on generated identifiers
const (
	// SlugMaxLength is the maximum length of a generated slug
	SlugMaxLength = 50
)

// DateFormat is the wire format for calendar dates (price effective dates)
const DateFormat = "2006-01-02"
