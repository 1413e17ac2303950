// Package store is the PostgREST client for the persisted catalog tables
// (providers, models, prices). Every call is one blocking HTTP round-trip
// carrying the service credential; non-2xx responses are errors and a 2xx
// response with an empty body is success with no rows.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pricedeck/pricedeck/pkg/constants"
	"github.com/pricedeck/pricedeck/pkg/errors"
)

// restPath is the PostgREST route prefix under the store base URL.
const restPath = "/rest/v1/"

// errorBodyLimit caps how much of an error response body is kept for logs.
const errorBodyLimit = 512

// Client talks to the store's REST interface.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

// New creates a store client. Both the base URL and the service key are
// required; a missing credential is a fatal configuration error.
func New(baseURL, serviceKey string) (*Client, error) {
	if baseURL == "" {
		return nil, &errors.ConfigError{Key: "SUPABASE_URL", Message: "store base URL not set"}
	}
	if serviceKey == "" {
		return nil, &errors.ConfigError{Key: "SUPABASE_SERVICE_ROLE_KEY", Message: "store service credential not set"}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: constants.DefaultHTTPTimeout},
	}, nil
}

// do performs one request against a table. query is an encoded PostgREST
// filter string, body is marshaled as JSON when non-nil, and out receives the
// decoded response rows when non-nil.
func (c *Client) do(ctx context.Context, method, table, query string, body, out any) error {
	endpoint := c.baseURL + restPath + table
	if query != "" {
		endpoint += "?" + query
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.WrapResource("encode", "row", table, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.WrapResource("create", "request", method+" "+endpoint, err)
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		// Have the store echo created rows back so minted ids can be captured
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &errors.APIError{
			Source:   "store",
			Endpoint: endpoint,
			Message:  fmt.Sprintf("%s %s failed", method, table),
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &errors.APIError{
			Source:     "store",
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapResource("read", "response", table, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		// 2xx with an empty body is success with no rows
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}
