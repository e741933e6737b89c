package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrDisabled is returned by every call when no backend URL is configured.
// Callers treat it like any other remote failure and fall back locally.
var ErrDisabled = errors.New("remote catalog not configured")

const itemsEndpoint = "/content_items"

// Client talks to the managed catalog backend's REST document API.
type Client struct {
	http    *resty.Client
	enabled bool
}

// NewClient builds a client for the given base URL (the REST root, e.g.
// https://xyz.example.co/rest/v1). A blank URL yields a disabled client,
// which is a supported deployment: everything then runs off the local
// mirror and the seed catalog.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		return &Client{enabled: false}
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey)

	return &Client{http: client, enabled: true}
}

// ListAll fetches every catalog record.
func (c *Client) ListAll(ctx context.Context) ([]Record, error) {
	if !c.enabled {
		return nil, ErrDisabled
	}

	var records []Record
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetResult(&records).
		Get(itemsEndpoint)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("remote catalog list failed: %s", resp.Status())
	}

	return records, nil
}

// UpsertMany writes the given records, replacing any existing rows with the
// same id. Last write wins; the backend keeps no version history.
func (c *Client) UpsertMany(ctx context.Context, records []Record) error {
	if !c.enabled {
		return ErrDisabled
	}
	if len(records) == 0 {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates").
		SetBody(records).
		Post(itemsEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("remote catalog upsert failed: %s", resp.Status())
	}

	return nil
}

// DeleteOne removes the record with the given id. Deleting an id the backend
// never had is not an error.
func (c *Client) DeleteOne(ctx context.Context, id string) error {
	if !c.enabled {
		return ErrDisabled
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		Delete(itemsEndpoint)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("remote catalog delete failed: %s", resp.Status())
	}

	return nil
}
