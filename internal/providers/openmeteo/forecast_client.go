package openmeteo

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=52.52,51.5085&longitude=13.41,-0.1257&current=temperature_2m,relative_humidity_2m,precipitation&minutely_15=temperature_2m&hourly=temperature_2m&timezone=America/Los_Angeles&forecast_days=1
const (
	DefaultBaseURL = "https://api.open-meteo.com/v1"
)

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	defaults   *Params
	logger     *slog.Logger

	mu   sync.RWMutex
	last *Response
}

// NewForecastClient creates a client for baseURL. defaults may be nil, in which case
// every FetchForecast call must pass its own params.
func NewForecastClient(baseURL string, defaults *Params, logger *slog.Logger) *ForecastClient {
	return NewForecastClientWithHTTPClient(&http.Client{}, baseURL, defaults, logger)
}

// NewForecastClientWithHTTPClient is NewForecastClient with a caller-supplied http.Client
func NewForecastClientWithHTTPClient(httpClient *http.Client, baseURL string, defaults *Params, logger *slog.Logger) *ForecastClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		defaults:   defaults.Clone(),
		logger:     logger.With("component", "openmeteo-client"),
	}
}

// Defaults returns a copy of the params used when FetchForecast is called with nil
func (c *ForecastClient) Defaults() *Params {
	return c.defaults.Clone()
}

// FetchForecast requests {base}/forecast once and stores the decoded body, replacing any previous one.
// params overrides the client defaults. On failure the stored body is cleared and the error is returned.
func (c *ForecastClient) FetchForecast(ctx context.Context, params *Params) error {
	if params == nil {
		params = c.defaults
	}
	if params == nil {
		return fmt.Errorf("%w: no parameters to send", ErrConfiguration)
	}
	if err := params.Validate(); err != nil {
		return err
	}

	u, err := url.Parse(c.baseURL + "/forecast")
	if err != nil {
		return fmt.Errorf("%w: failed to parse base URL: %v", ErrConfiguration, err)
	}
	u.RawQuery = params.Query().Encode()

	c.logger.Debug("fetching forecast",
		"url", u.String(),
		"locations", len(params.Latitude),
	)

	resp, err := c.fetch(ctx, u.String())
	if err != nil {
		c.logger.Error("error while fetching forecast data", "error", err)
		c.store(nil)
		return err
	}

	c.logger.Debug("fetched forecast", "locations", resp.Len())
	c.store(&resp)
	return nil
}

func (c *ForecastClient) fetch(ctx context.Context, rawURL string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to fetch: %w", ErrTransport, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("%w: fetch returned status %d: %s", ErrTransport, resp.StatusCode, string(body))
	}

	parsed, err := ParseResponse(body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: failed to decode response: %w", ErrTransport, err)
	}
	return parsed, nil
}

func (c *ForecastClient) store(resp *Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = resp
}

// Snapshot returns the last successfully fetched response
func (c *ForecastClient) Snapshot() (Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return Response{}, ErrNoDataFetched
	}
	return *c.last, nil
}

// Records yields a record per location of the last fetched response. The response is captured
// when Records is called, so a later fetch does not change a sequence already handed out.
func (c *ForecastClient) Records() iter.Seq2[*Record, error] {
	snap, err := c.Snapshot()
	if err != nil {
		return failed[*Record](err)
	}
	return snap.Records()
}

// Forecasts yields (location, forecast type, table) for every location and requested type of the
// last fetched response, captured when Forecasts is called.
func (c *ForecastClient) Forecasts(forecastTypes ...string) iter.Seq2[Forecast, error] {
	snap, err := c.Snapshot()
	if err != nil {
		return failed[Forecast](err)
	}
	return snap.Forecasts(forecastTypes...)
}

func failed[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}
