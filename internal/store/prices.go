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

// LatestPrices returns the latest persisted price per model, keyed by model
// id. Latest means maximum effective date; several rows can share a date, so
// ties break toward the most recently inserted row (highest id). The ordering
// is pushed down to the store and the first row seen per model wins.
func (c *Client) LatestPrices(ctx context.Context) (map[int64]catalogs.Price, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"effective_date.desc,id.desc"},
	}

	var rows []catalogs.Price
	if err := c.do(ctx, http.MethodGet, "prices", query.Encode(), nil, &rows); err != nil {
		return nil, errors.WrapResource("list", "prices", "all", err)
	}

	latest := make(map[int64]catalogs.Price, len(rows))
	for _, row := range rows {
		if _, seen := latest[row.ModelID]; !seen {
			latest[row.ModelID] = row
		}
	}
	return latest, nil
}

// InsertPrice appends a price row and returns it with the store-minted id.
func (c *Client) InsertPrice(ctx context.Context, p catalogs.Price) (catalogs.Price, error) {
	var rows []catalogs.Price
	if err := c.do(ctx, http.MethodPost, "prices", "", p, &rows); err != nil {
		return catalogs.Price{}, errors.WrapResource("create", "price", strconv.FormatInt(p.ModelID, 10), err)
	}
	if len(rows) == 0 {
		return catalogs.Price{}, errors.WrapResource("create", "price", strconv.FormatInt(p.ModelID, 10),
			fmt.Errorf("store returned no representation"))
	}
	return rows[0], nil
}

// DeletePriceOn removes any price row for the model dated day. Used by the
// same-day correction that keeps at most one price row per model per day.
func (c *Client) DeletePriceOn(ctx context.Context, modelID int64, day catalogs.Date) error {
	query := url.Values{
		"model_id":       {"eq." + strconv.FormatInt(modelID, 10)},
		"effective_date": {"eq." + day.String()},
	}
	if err := c.do(ctx, http.MethodDelete, "prices", query.Encode(), nil, nil); err != nil {
		return errors.WrapResource("delete", "price", strconv.FormatInt(modelID, 10), err)
	}
	return nil
}
