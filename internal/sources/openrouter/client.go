// Package openrouter fetches the external model catalog and converts its raw
// records into typed catalog entries. All feed-shape defaulting happens here,
// at the boundary, so the reconciliation engine never inspects optional
// fields.
package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/constants"
	"github.com/pricedeck/pricedeck/pkg/errors"
	"github.com/pricedeck/pricedeck/pkg/logging"
)

// DefaultAPIURL is the public model catalog endpoint. No auth required.
const DefaultAPIURL = "https://openrouter.ai/api/v1/models"

// Client fetches the model catalog over HTTP.
type Client struct {
	apiURL string
	http   *http.Client
}

// New creates a catalog client. An empty apiURL uses the default endpoint.
func New(apiURL string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		http:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// Fetch retrieves the complete model catalog in one request. A transport
// failure, non-200 status, or undecodable body is an error: there is no safe
// fallback for "no models", so callers abort the sync run.
func (c *Client) Fetch(ctx context.Context) ([]catalogs.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+c.apiURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Source:   "openrouter",
			Endpoint: c.apiURL,
			Message:  "failed to fetch model catalog",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Source:     "openrouter",
			Endpoint:   c.apiURL,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.WrapParse("json", c.apiURL, err)
	}

	entries := make([]catalogs.CatalogEntry, 0, len(payload.Data))
	for _, m := range payload.Data {
		if m.ID == "" {
			logging.Ctx(ctx).Warn().Msg("Skipping catalog record without an id")
			continue
		}
		entries = append(entries, catalogs.CatalogEntry{
			RawID:           m.ID,
			Name:            m.displayName(),
			CanonicalSlug:   m.CanonicalSlug,
			ContextWindow:   m.contextWindow(),
			MaxOutputTokens: m.maxOutputTokens(),
			PromptPrice:     m.Pricing.Prompt,
			CompletionPrice: m.Pricing.Completion,
			InputModalities: m.Architecture.InputModalities,
			Tags:            m.Capabilities,
		})
	}

	if len(entries) == 0 {
		return nil, errors.WrapParse("json", c.apiURL, fmt.Errorf("catalog feed returned no models"))
	}

	logging.Ctx(ctx).Debug().
		Int("models", len(entries)).
		Str("endpoint", c.apiURL).
		Msg("Fetched model catalog")

	return entries, nil
}
