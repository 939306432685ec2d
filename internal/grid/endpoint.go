package grid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/david5010/AetherGrid/internal/table"
	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
)

const DefaultTimeColumn = "time"

var validate = validator.New()

// EndpointConfig describes an operator served by plain HTTP endpoints returning
// column-oriented JSON objects.
type EndpointConfig struct {
	Name            string `mapstructure:"name" validate:"required"`
	LoadURL         string `mapstructure:"loadURL" validate:"required,url"`
	LoadForecastURL string `mapstructure:"loadForecastURL" validate:"required,url"`
	TimeColumn      string `mapstructure:"timeColumn"`
}

// EndpointOperator implements Operator over an EndpointConfig
type EndpointOperator struct {
	cfg        EndpointConfig
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

func NewEndpointOperator(cfg EndpointConfig, httpClient *http.Client, logger *slog.Logger) (*EndpointOperator, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid grid operator %q: %w", cfg.Name, err)
	}
	if cfg.TimeColumn == "" {
		cfg.TimeColumn = DefaultTimeColumn
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "grid-operator", "operator", cfg.Name)

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	})

	return &EndpointOperator{
		cfg:        cfg,
		httpClient: httpClient,
		circuit:    cb,
		logger:     logger,
	}, nil
}

func (o *EndpointOperator) Name() string {
	return o.cfg.Name
}

func (o *EndpointOperator) Load(ctx context.Context, date string) (*table.Table, error) {
	return o.get(ctx, o.cfg.LoadURL, date)
}

func (o *EndpointOperator) LoadForecast(ctx context.Context, date string) (*table.Table, error) {
	return o.get(ctx, o.cfg.LoadForecastURL, date)
}

func (o *EndpointOperator) get(ctx context.Context, endpoint, date string) (*table.Table, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q: %w", ErrTransport, endpoint, err)
	}
	q := u.Query()
	q.Set("date", date)
	u.RawQuery = q.Encode()

	o.logger.Debug("fetching grid data", "url", u.String())

	result, err := o.circuit.Execute(func() (interface{}, error) {
		return o.fetch(ctx, u.String())
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: circuit open for %s: %w", ErrTransport, o.cfg.Name, err)
		}
		o.logger.Error("error while fetching grid data", "error", err)
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrTransport)
	}

	tbl, err := table.FromColumns(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s response: %w", ErrTransport, o.cfg.Name, err)
	}
	if err := tbl.ParseTime(o.cfg.TimeColumn, time.UTC); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s response: %w", ErrTransport, o.cfg.Name, err)
	}
	return tbl, nil
}

func (o *EndpointOperator) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrTransport, err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch: %w", ErrTransport, err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: fetch returned status %d: %s", ErrTransport, resp.StatusCode, string(body))
	}
	return body, nil
}

// NewRegistryFromEndpoints registers one EndpointOperator per config entry.
// Each factory returns the same operator so its circuit breaker state is shared across calls.
func NewRegistryFromEndpoints(endpoints []EndpointConfig, httpClient *http.Client, logger *slog.Logger) (*Registry, error) {
	reg := NewRegistry()
	for _, cfg := range endpoints {
		op, err := NewEndpointOperator(cfg, httpClient, logger)
		if err != nil {
			return nil, err
		}
		reg.Register(op.Name(), func() (Operator, error) {
			return op, nil
		})
	}
	return reg, nil
}
