package catalogs

import (
	"time"

	"github.com/pricedeck/pricedeck/pkg/constants"
)

// Currency represents a currency code for persisted prices.
type Currency string

// Currency constants for persisted prices.
const (
	// CurrencyUSD is the US Dollar currency constant.
	CurrencyUSD Currency = "USD"
	// CurrencyEUR is the Euro currency constant.
	CurrencyEUR Currency = "EUR"
)

// String returns the string representation of a Currency.
func (c Currency) String() string {
	return string(c)
}

// Price represents a persisted price row. Price rows are append-only: a sync
// that detects a changed price inserts a new row rather than mutating the
// previous one. The only exception is the same-day correction, which deletes
// an existing row for (model, effective date) before inserting its
// replacement, keeping at most one row per model per calendar day.
type Price struct {
	ID                    int64    `json:"id,omitempty"`             // Row identifier minted by the store
	ModelID               int64    `json:"model_id"`                 // Owning model
	InputPricePerMillion  float64  `json:"input_price_per_million"`  // Prompt price per million tokens
	OutputPricePerMillion float64  `json:"output_price_per_million"` // Completion price per million tokens
	EffectiveDate         Date     `json:"effective_date"`           // Calendar date the price is active from
	Currency              Currency `json:"currency"`                 // Price currency
}

// Date is a calendar date without a time component, serialized as 2006-01-02.
type Date struct {
	t time.Time
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in the 2006-01-02 wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// String returns the date in the 2006-01-02 wire format.
func (d Date) String() string {
	return d.t.Format(constants.DateFormat)
}

// Equal reports whether two dates are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	// Stores commonly return dates with a time component attached
	if len(s) > len(constants.DateFormat) {
		s = s[:len(constants.DateFormat)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
