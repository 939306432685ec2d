package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/david5010/AetherGrid/internal/providers/openmeteo"
	"github.com/david5010/AetherGrid/internal/weather"
	"github.com/gin-gonic/gin"
)

// ForecastQuery defines the query parameters of the forecast endpoints.
// List values are comma separated, one latitude/longitude pair per location.
type ForecastQuery struct {
	Latitude     string `form:"latitude"`
	Longitude    string `form:"longitude"`
	Current      string `form:"current"`
	Minutely15   string `form:"minutely_15"`
	Hourly       string `form:"hourly"`
	Daily        string `form:"daily"`
	Timezone     string `form:"timezone"`
	ForecastDays int    `form:"forecast_days"`
	Types        string `form:"types"`
}

// forecastQueryKeys are bound into ForecastQuery, every other query parameter is passed to Open-Meteo
var forecastQueryKeys = []string{
	"latitude", "longitude", "current", "minutely_15", "hourly", "daily", "timezone", "forecast_days", "types",
}

// ForecastResponse is the body of GET /forecast
type ForecastResponse struct {
	Locations []weather.LocationForecast `json:"locations"`
}

// toRequest converts the query to a service request. Without coordinates the
// configured defaults are used and the variable lists are ignored.
func (q ForecastQuery) toRequest(extra map[string]string) (weather.Request, error) {
	req := weather.Request{ForecastTypes: splitList(q.Types)}
	if q.Latitude == "" && q.Longitude == "" {
		return req, nil
	}

	lat, err := parseFloats(q.Latitude)
	if err != nil {
		return req, fmt.Errorf("%w: latitude: %w", openmeteo.ErrConfiguration, err)
	}
	lon, err := parseFloats(q.Longitude)
	if err != nil {
		return req, fmt.Errorf("%w: longitude: %w", openmeteo.ErrConfiguration, err)
	}

	req.Params = &openmeteo.Params{
		Latitude:     lat,
		Longitude:    lon,
		Current:      splitList(q.Current),
		Minutely15:   splitList(q.Minutely15),
		Hourly:       splitList(q.Hourly),
		Daily:        splitList(q.Daily),
		Timezone:     q.Timezone,
		ForecastDays: q.ForecastDays,
		Extra:        extra,
	}
	return req, nil
}

// extraOptions collects the query parameters ForecastQuery does not bind, nil when there are none
func extraOptions(values url.Values) map[string]string {
	var extra map[string]string
	for k := range values {
		if slices.Contains(forecastQueryKeys, k) {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[k] = values.Get(k)
	}
	return extra
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (app *App) bindForecastRequest(c *gin.Context) (weather.Request, bool) {
	var query ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		app.respondError(c, fmt.Errorf("%w: %w", openmeteo.ErrConfiguration, err), "invalid forecast query")
		return weather.Request{}, false
	}
	req, err := query.toRequest(extraOptions(c.Request.URL.Query()))
	if err != nil {
		app.respondError(c, err, "invalid forecast query")
		return weather.Request{}, false
	}
	return req, true
}

// handleGetForecast godoc
// @Summary Get forecast tables
// @Description Fetch the Open-Meteo forecast for one or more locations and return one table per location and forecast type. Without coordinates the configured default locations are used.
// @Tags forecast
// @Produce json
// @Param latitude query string false "Comma separated latitudes" example(52.52,51.5085)
// @Param longitude query string false "Comma separated longitudes" example(13.41,-0.1257)
// @Param current query string false "Comma separated current variables" example(temperature_2m,precipitation)
// @Param minutely_15 query string false "Comma separated 15-minutely variables"
// @Param hourly query string false "Comma separated hourly variables" example(temperature_2m)
// @Param daily query string false "Comma separated daily variables"
// @Param timezone query string false "Timezone, resolved from the coordinates when empty"
// @Param forecast_days query int false "Forecast days" minimum(0) maximum(16)
// @Param types query string false "Forecast types to return, defaults to every requested type" example(current,hourly)
// @Param timeformat query string false "Any other Open-Meteo option is passed through, e.g. timeformat=unixtime"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /forecast [get]
func (app *App) handleGetForecast(c *gin.Context) {
	req, ok := app.bindForecastRequest(c)
	if !ok {
		return
	}

	forecasts, err := app.weatherService.GetForecasts(c.Request.Context(), req)
	if err != nil {
		app.respondError(c, err, "failed to get forecasts")
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{Locations: forecasts})
}

// handleStreamForecast godoc
// @Summary Stream forecast tables
// @Description Same query as /forecast, answered as newline-delimited JSON with one (location, forecastType, table) object per line. An error after the first line is reported as a final {"error": ...} line.
// @Tags forecast
// @Produce x-ndjson
// @Param latitude query string false "Comma separated latitudes"
// @Param longitude query string false "Comma separated longitudes"
// @Param current query string false "Comma separated current variables"
// @Param minutely_15 query string false "Comma separated 15-minutely variables"
// @Param hourly query string false "Comma separated hourly variables"
// @Param daily query string false "Comma separated daily variables"
// @Param timezone query string false "Timezone"
// @Param forecast_days query int false "Forecast days"
// @Param types query string false "Forecast types to return"
// @Success 200 {object} openmeteo.Forecast
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /forecast/stream [get]
func (app *App) handleStreamForecast(c *gin.Context) {
	req, ok := app.bindForecastRequest(c)
	if !ok {
		return
	}

	seq, err := app.weatherService.StreamForecasts(c.Request.Context(), req)
	if err != nil {
		app.respondError(c, err, "failed to stream forecasts")
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)

	enc := json.NewEncoder(c.Writer)
	for forecast, err := range seq {
		if err != nil {
			app.logger.Warn("forecast stream ended with error",
				"requestID", c.GetString(requestIDKey),
				"error", err,
			)
			_ = enc.Encode(ErrorResponse{Error: err.Error()})
			return
		}
		if err := enc.Encode(forecast); err != nil {
			app.logger.Warn("failed to write forecast", "error", err)
			return
		}
		c.Writer.Flush()
	}
}
