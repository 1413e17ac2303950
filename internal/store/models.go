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

// ListModels returns every persisted model row, active or not.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.Model, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"sort_order.asc,id.asc"},
	}

	var rows []catalogs.Model
	if err := c.do(ctx, http.MethodGet, "models", query.Encode(), nil, &rows); err != nil {
		return nil, errors.WrapResource("list", "models", "all", err)
	}
	return rows, nil
}

// CreateModel inserts a model row and returns it with the store-minted id.
func (c *Client) CreateModel(ctx context.Context, m catalogs.Model) (catalogs.Model, error) {
	var rows []catalogs.Model
	if err := c.do(ctx, http.MethodPost, "models", "", m, &rows); err != nil {
		return catalogs.Model{}, errors.WrapResource("create", "model", m.Slug, err)
	}
	if len(rows) == 0 {
		return catalogs.Model{}, errors.WrapResource("create", "model", m.Slug,
			fmt.Errorf("store returned no representation"))
	}
	return rows[0], nil
}

// UpdateModel applies a partial update to one model row.
func (c *Client) UpdateModel(ctx context.Context, id int64, patch map[string]any) error {
	query := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	if err := c.do(ctx, http.MethodPatch, "models", query.Encode(), patch, nil); err != nil {
		return errors.WrapResource("update", "model", strconv.FormatInt(id, 10), err)
	}
	return nil
}

// DeleteModel removes a model row. The store cascades the delete to the
// model's price history.
func (c *Client) DeleteModel(ctx context.Context, id int64) error {
	query := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	if err := c.do(ctx, http.MethodDelete, "models", query.Encode(), nil, nil); err != nil {
		return errors.WrapResource("delete", "model", strconv.FormatInt(id, 10), err)
	}
	return nil
}
