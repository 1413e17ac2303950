// Package rates fetches the USD exchange rate for the target currency. The
// rate feed is best-effort: the sync is a scheduled batch job, and a slightly
// stale fallback rate beats aborting the whole run.
package rates

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/constants"
	"github.com/pricedeck/pricedeck/pkg/logging"
)

// DefaultAPIURL is the public currency feed endpoint. No auth required.
const DefaultAPIURL = "https://api.frankfurter.app/latest?from=USD&to=EUR"

// Response is the currency feed envelope: {"rates": {"EUR": 0.92, ...}}.
type Response struct {
	Rates map[string]float64 `json:"rates"`
}

// Client fetches the exchange rate over HTTP.
type Client struct {
	apiURL   string
	currency catalogs.Currency
	http     *http.Client
}

// New creates a rate client for the given target currency. An empty apiURL
// uses the default endpoint.
func New(apiURL string, currency catalogs.Currency) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL:   apiURL,
		currency: currency,
		http:     &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// Fetch returns the USD rate for the client's target currency. One attempt,
// no retry; any transport or parse failure logs a warning and returns the
// fallback constant instead of an error.
func (c *Client) Fetch(ctx context.Context) float64 {
	log := logging.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Currency feed request invalid, using fallback rate")
		return constants.FallbackEURRate
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Currency feed unreachable, using fallback rate")
		return constants.FallbackEURRate
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("Currency feed returned an error, using fallback rate")
		return constants.FallbackEURRate
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn().Err(err).Msg("Currency feed body unparseable, using fallback rate")
		return constants.FallbackEURRate
	}

	rate, ok := payload.Rates[c.currency.String()]
	if !ok || rate <= 0 {
		log.Warn().Str("currency", c.currency.String()).Msg("Currency feed missing target rate, using fallback rate")
		return constants.FallbackEURRate
	}

	log.Debug().Float64("rate", rate).Str("currency", c.currency.String()).Msg("Fetched exchange rate")
	return rate
}
