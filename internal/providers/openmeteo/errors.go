package openmeteo

import "errors"

var (
	// ErrConfiguration is returned when no usable request parameters are available
	ErrConfiguration = errors.New("invalid forecast configuration")
	// ErrTransport is returned when the forecast request fails or returns a non-success status
	ErrTransport = errors.New("forecast transport error")
	// ErrNoDataFetched is returned when records are requested before a successful fetch
	ErrNoDataFetched = errors.New("no forecast data fetched")
	// ErrMissingField is returned when a location object lacks a required metadata key
	ErrMissingField = errors.New("missing field")
	// ErrForecastTypeNotFound is returned when a forecast type is absent from a location's response
	ErrForecastTypeNotFound = errors.New("forecast type not found")
)
