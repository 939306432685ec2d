package weather

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"

	"github.com/david5010/AetherGrid/internal/providers/openmeteo"
	"github.com/david5010/AetherGrid/internal/table"
	"github.com/david5010/AetherGrid/internal/timezone"
	"github.com/david5010/AetherGrid/internal/types"
)

type ForecastClient interface {
	FetchForecast(ctx context.Context, params *openmeteo.Params) error
	Snapshot() (openmeteo.Response, error)
	Defaults() *openmeteo.Params
}

// Request selects the locations and forecast types to fetch.
// A nil Params falls back to the client defaults; empty ForecastTypes means
// every type the params request.
type Request struct {
	Params        *openmeteo.Params
	ForecastTypes []string
}

type TypedTable struct {
	Type  string       `json:"forecastType"`
	Table *table.Table `json:"table"`
}

type LocationForecast struct {
	Location types.LocationKey `json:"location"`
	Timezone string            `json:"timezone"`
	Units    map[string]string `json:"units"`
	Tables   []TypedTable      `json:"tables"`
}

type Service interface {
	GetForecasts(ctx context.Context, req Request) ([]LocationForecast, error)
	// StreamForecasts fetches and returns the flattened (location, type, table) sequence.
	// Decoding happens while the caller iterates.
	StreamForecasts(ctx context.Context, req Request) (iter.Seq2[openmeteo.Forecast, error], error)
}

type weatherService struct {
	client          ForecastClient
	timezoneService timezone.Service
	logger          *slog.Logger

	// fetch and snapshot must happen together, the client only keeps the last response
	mu sync.Mutex
}

// NewWeatherService builds the service around client. timezoneService may be nil,
// which disables timezone resolution for requests without a timezone.
func NewWeatherService(client ForecastClient, timezoneService timezone.Service, logger *slog.Logger) Service {
	return &weatherService{
		client:          client,
		timezoneService: timezoneService,
		logger:          logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetForecasts(ctx context.Context, req Request) ([]LocationForecast, error) {
	snap, forecastTypes, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	forecasts := make([]LocationForecast, 0, snap.Len())
	for rec, err := range snap.Records() {
		if err != nil {
			return nil, err
		}

		lf := LocationForecast{
			Location: rec.Key(),
			Timezone: rec.Timezone,
			Units:    rec.Units(),
			Tables:   make([]TypedTable, 0, len(forecastTypes)),
		}
		for _, ft := range forecastTypes {
			tbl, err := rec.Forecast(ft)
			if err != nil {
				return nil, fmt.Errorf("location %s: %w", lf.Location, err)
			}
			lf.Tables = append(lf.Tables, TypedTable{Type: ft, Table: tbl})
		}
		forecasts = append(forecasts, lf)
	}

	return forecasts, nil
}

func (s *weatherService) StreamForecasts(ctx context.Context, req Request) (iter.Seq2[openmeteo.Forecast, error], error) {
	snap, forecastTypes, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return snap.Forecasts(forecastTypes...), nil
}

func (s *weatherService) fetch(ctx context.Context, req Request) (openmeteo.Response, []string, error) {
	params := req.Params.Clone()
	if params == nil {
		params = s.client.Defaults()
	}
	if params == nil {
		return openmeteo.Response{}, nil, fmt.Errorf("%w: no locations requested and no defaults configured", openmeteo.ErrConfiguration)
	}

	s.resolveTimezone(params)

	forecastTypes := req.ForecastTypes
	if len(forecastTypes) == 0 {
		forecastTypes = params.ForecastTypes()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.FetchForecast(ctx, params); err != nil {
		return openmeteo.Response{}, nil, err
	}
	snap, err := s.client.Snapshot()
	if err != nil {
		return openmeteo.Response{}, nil, err
	}

	s.logger.Debug("fetched forecasts",
		"locations", snap.Len(),
		"forecastTypes", forecastTypes,
	)
	return snap, forecastTypes, nil
}

// resolveTimezone fills an empty timezone with the zone of every location.
// Lookup failures are logged and the request goes out without a timezone (GMT).
func (s *weatherService) resolveTimezone(params *openmeteo.Params) {
	if s.timezoneService == nil || params.Timezone != "" || len(params.Latitude) != len(params.Longitude) {
		return
	}

	locations := make([]types.LocationKey, len(params.Latitude))
	for i := range params.Latitude {
		locations[i] = types.NewLocationKey(params.Longitude[i], params.Latitude[i])
	}

	tz, err := s.timezoneService.ForLocations(locations)
	if err != nil {
		s.logger.Warn("failed to determine timezone", "error", err)
		return
	}

	s.logger.Debug("determined timezone for locations", "timezone", tz)
	params.Timezone = tz
}
