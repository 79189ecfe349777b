// Package dashboard fetches the KPI aggregate and sales series for an authenticated session.
package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	EndpointKPI        = "/dashboard"
	EndpointSales      = "/sales"
	EndpointForecast   = "/forecast"
	EndpointStockAlert = "/stock-alert"
)

const maxBodySize = 4 << 20

// Client reads dashboard resources using a caller supplied bearer token.
// It holds no token of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, options ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("[dashboard New] base URL is required")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Load fetches the KPI snapshot and then the sales series. The requests run one after the
// other: if the KPI request fails the sales request is never sent, and nothing is returned.
func (c *Client) Load(ctx context.Context, token string) (*Dashboard, error) {
	var kpi KPISnapshot
	if err := c.getJSON(ctx, EndpointKPI, token, &kpi); err != nil {
		return nil, err
	}

	var sales []SalesPoint
	if err := c.getJSON(ctx, EndpointSales, token, &sales); err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []SalesPoint{}
	}

	return &Dashboard{KPI: kpi, Sales: sales}, nil
}

// Forecast fetches the next day sales projection
func (c *Client) Forecast(ctx context.Context, token string) (*Forecast, error) {
	var f Forecast
	if err := c.getJSON(ctx, EndpointForecast, token, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// StockAlerts lists products whose stock is below the server's threshold
func (c *Client) StockAlerts(ctx context.Context, token string) ([]StockAlert, error) {
	alerts := []StockAlert{}
	if err := c.getJSON(ctx, EndpointStockAlert, token, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, token string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("endpoint", endpoint).Msg("dashboard request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "read body")}
	}
	log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("dashboard response")

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.New(serverMessage(raw, resp.StatusCode))}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "decode body")}
	}
	return nil
}

// serverMessage extracts {"message": ...} from an error body when present
func serverMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return http.StatusText(status)
}
