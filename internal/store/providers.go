package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
	"github.com/pricedeck/pricedeck/pkg/errors"
)

// ListProviders returns every persisted provider row, active or not, ordered
// for deterministic snapshot building.
func (c *Client) ListProviders(ctx context.Context) ([]catalogs.Provider, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"sort_order.asc,id.asc"},
	}

	var rows []catalogs.Provider
	if err := c.do(ctx, http.MethodGet, "providers", query.Encode(), nil, &rows); err != nil {
		return nil, errors.WrapResource("list", "providers", "all", err)
	}
	return rows, nil
}

// CreateProvider inserts a provider row and returns it with the store-minted id.
func (c *Client) CreateProvider(ctx context.Context, p catalogs.Provider) (catalogs.Provider, error) {
	var rows []catalogs.Provider
	if err := c.do(ctx, http.MethodPost, "providers", "", p, &rows); err != nil {
		return catalogs.Provider{}, errors.WrapResource("create", "provider", p.Slug, err)
	}
	if len(rows) == 0 {
		return catalogs.Provider{}, errors.WrapResource("create", "provider", p.Slug,
			fmt.Errorf("store returned no representation"))
	}
	return rows[0], nil
}

// UpdateProvider applies a partial update to one provider row.
func (c *Client) UpdateProvider(ctx context.Context, id int64, patch map[string]any) error {
	query := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	if err := c.do(ctx, http.MethodPatch, "providers", query.Encode(), patch, nil); err != nil {
		return errors.WrapResource("update", "provider", strconv.FormatInt(id, 10), err)
	}
	return nil
}
