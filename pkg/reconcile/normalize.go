package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/pricedeck/pricedeck/pkg/constants"
)

// NormalizePrice converts a raw per-token USD price from the feed into a
// per-million-token target-currency price, rounded to four decimal places
// half away from zero. A missing or unparseable raw price is zero. The
// exchange rate is threaded in explicitly so repeated runs can never observe
// state from another run.
func NormalizePrice(raw string, rate float64) float64 {
	perToken, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		perToken = 0
	}
	perMillion := perToken * constants.TokensPerMillion * rate

	scale := math.Pow10(constants.PriceDecimalPlaces)
	return math.Round(perMillion*scale) / scale
}

// priceChanged reports whether two normalized prices differ beyond the
// comparison tolerance. The boundary is exclusive: a difference of exactly
// the tolerance is unchanged. Both sides are already rounded to the fixed
// precision, so the comparison happens on the scaled integer representation,
// keeping the boundary exact despite float math.
func priceChanged(a, b float64) bool {
	scale := math.Pow10(constants.PriceDecimalPlaces)
	diff := math.Round(a*scale) - math.Round(b*scale)
	return math.Abs(diff) > math.Round(constants.PriceTolerance*scale)
}
