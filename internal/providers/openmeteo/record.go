package openmeteo

import (
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"
	_ "time/tzdata" // IANA zones for LoadLocation on hosts without zoneinfo

	"github.com/david5010/AetherGrid/internal/table"
	"github.com/david5010/AetherGrid/internal/types"
	"github.com/tidwall/gjson"
)

// DefaultTimeColumn is the column Open-Meteo uses for the timestamp axis
const DefaultTimeColumn = "time"

// Record is the decoded response for a single location
type Record struct {
	Latitude  float64
	Longitude float64
	Timezone  string

	units    map[string]string
	location *time.Location
	raw      []byte
}

// NewRecord creates a record from one already-received location object
func NewRecord(raw []byte) (*Record, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid JSON location object", table.ErrMalformed)
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: location entry is not a JSON object", table.ErrMalformed)
	}

	body := make([]byte, len(raw))
	copy(body, raw)
	return newRecord(obj, body)
}

// NewRecordFromHTTPResponse reads and closes the response body and decodes it as a single location
func NewRecordFromHTTPResponse(resp *http.Response) (*Record, error) {
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return NewRecord(body)
}

func newRecord(obj gjson.Result, raw []byte) (*Record, error) {
	fields := gjson.GetManyBytes(raw, "latitude", "longitude", "timezone", "current_units")
	for i, name := range []string{"latitude", "longitude", "timezone", "current_units"} {
		if !fields[i].Exists() {
			return nil, fmt.Errorf("%w: %q", ErrMissingField, name)
		}
	}

	units := make(map[string]string)
	fields[3].ForEach(func(key, value gjson.Result) bool {
		units[key.String()] = value.String()
		return true
	})

	return &Record{
		Latitude:  fields[0].Float(),
		Longitude: fields[1].Float(),
		Timezone:  fields[2].String(),
		units:     units,
		location:  recordLocation(obj),
		raw:       raw,
	}, nil
}

// recordLocation is the zone Open-Meteo used for local timestamps: the IANA timezone when it
// is known, else the reported fixed offset, else UTC.
func recordLocation(obj gjson.Result) *time.Location {
	name := obj.Get("timezone").String()
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}

	offset := obj.Get("utc_offset_seconds")
	if !offset.Exists() {
		return time.UTC
	}
	if abbr := obj.Get("timezone_abbreviation").String(); abbr != "" {
		name = abbr
	}
	return time.FixedZone(name, int(offset.Int()))
}

// Key identifies the location as (longitude, latitude)
func (r *Record) Key() types.LocationKey {
	return types.NewLocationKey(r.Longitude, r.Latitude)
}

// Units returns the variable to unit mapping reported in current_units.
// The same units are assumed for every forecast type of this location.
func (r *Record) Units() map[string]string {
	return maps.Clone(r.units)
}

// Location returns the zone used to interpret timestamps without an offset
func (r *Record) Location() *time.Location {
	return r.location
}

// Forecast returns the table for one forecast type using the "time" column as timestamp axis
func (r *Record) Forecast(forecastType string) (*table.Table, error) {
	return r.ForecastWithTimeColumn(forecastType, DefaultTimeColumn)
}

// ForecastWithTimeColumn returns the table for one forecast type. The current forecast is a single
// object and becomes a one-row table; every other type is a column-oriented object.
func (r *Record) ForecastWithTimeColumn(forecastType, timeColumn string) (*table.Table, error) {
	var section gjson.Result
	gjson.ParseBytes(r.raw).ForEach(func(key, value gjson.Result) bool {
		if key.String() == forecastType {
			section = value
			return false
		}
		return true
	})
	if !section.Exists() {
		return nil, fmt.Errorf("%w: %q was not part of the request for (%v, %v)",
			ErrForecastTypeNotFound, forecastType, r.Longitude, r.Latitude)
	}

	var (
		tbl *table.Table
		err error
	)
	if forecastType == ForecastCurrent {
		tbl, err = table.FromRow([]byte(section.Raw))
	} else {
		tbl, err = table.FromColumns([]byte(section.Raw))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s forecast: %w", forecastType, err)
	}

	if err := tbl.ParseTime(timeColumn, r.location); err != nil {
		return nil, fmt.Errorf("failed to parse %s forecast: %w", forecastType, err)
	}

	return tbl, nil
}
