package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/localherald/core/internal/config"
)

// Client is a thin pass-through executor against the external headless
// content store. Every call is a single round trip; failures propagate
// as-is. There is no retry, batching, or caching at this layer.
type Client struct {
	http       *resty.Client
	dataset    string
	apiVersion string
}

// New builds a store client from config.
func New(cfg config.StoreConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.EndpointURL()).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}
	return &Client{
		http:       http,
		dataset:    cfg.Dataset,
		apiVersion: cfg.APIVersion,
	}
}

// Fetch executes a parameterized structured query and returns the raw
// result document(s).
func (c *Client) Fetch(ctx context.Context, query string, params map[string]interface{}) (json.RawMessage, error) {
	values := url.Values{}
	values.Set("query", query)
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("store: encode param %q: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(values).
		Get(fmt.Sprintf("/%s/data/query/%s", c.apiVersion, c.dataset))
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError("query", resp)
	}

	var body struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("store: decode query response: %w", err)
	}
	return body.Result, nil
}

// Ping runs the cheapest possible query to verify the store answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Fetch(ctx, "count(*[_id == $id])", map[string]interface{}{"id": "ping"})
	return err
}

// FetchInto executes a query and decodes the result into dest.
func (c *Client) FetchInto(ctx context.Context, query string, params map[string]interface{}, dest interface{}) error {
	raw, err := c.Fetch(ctx, query, params)
	if err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("store: decode result: %w", err)
	}
	return nil
}
