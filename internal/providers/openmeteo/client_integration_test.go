//go:build integration

package openmeteo

import (
	"testing"
)

func TestForecastClient_FetchForecast_Integration(t *testing.T) {
	// Berlin and London
	params := &Params{
		Latitude:     []float64{52.52, 51.5085},
		Longitude:    []float64{13.41, -0.1257},
		Current:      []string{"temperature_2m", "relative_humidity_2m", "precipitation"},
		Minutely15:   []string{"temperature_2m"},
		Hourly:       []string{"temperature_2m"},
		Timezone:     "America/Los_Angeles",
		ForecastDays: 1,
	}

	client := NewForecastClient(DefaultBaseURL, nil, nil)

	t.Logf("Making API call to OpenMeteo Forecast API...")
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("Failed to get forecast: %v", err)
	}

	var locations int
	for rec, err := range client.Records() {
		if err != nil {
			t.Fatalf("Failed to decode record: %v", err)
		}
		locations++
		t.Logf("Location %d: lat=%f lon=%f timezone=%s units=%v",
			locations, rec.Latitude, rec.Longitude, rec.Timezone, rec.Units())
	}
	if locations != 2 {
		t.Fatalf("Expected 2 locations, got %d", locations)
	}

	var tables int
	for f, err := range client.Forecasts(params.ForecastTypes()...) {
		if err != nil {
			t.Fatalf("Failed to build forecast table: %v", err)
		}
		tables++
		t.Logf("%s %s: %d rows, columns=%v", f.Location, f.Type, f.Table.Len(), f.Table.Columns())

		if f.Type == ForecastCurrent && f.Table.Len() != 1 {
			t.Errorf("current forecast should have exactly one row, got %d", f.Table.Len())
		}
		if f.Type == ForecastHourly && f.Table.Len() != 24 {
			t.Errorf("hourly forecast for one day should have 24 rows, got %d", f.Table.Len())
		}
	}

	if tables != 6 {
		t.Errorf("Expected 6 tables, got %d", tables)
	}
}
