package openmeteo

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Forecast types returned by the Open-Meteo forecast API
const (
	ForecastCurrent    = "current"
	ForecastMinutely15 = "minutely_15"
	ForecastHourly     = "hourly"
	ForecastDaily      = "daily"
)

var validate = validator.New()

// Params are the query options sent to the forecast endpoint.
// Latitude and Longitude are parallel lists, one entry per location.
type Params struct {
	Latitude     []float64 `validate:"required,min=1,dive,gte=-90,lte=90"`
	Longitude    []float64 `validate:"required,min=1,dive,gte=-180,lte=180"`
	Current      []string
	Minutely15   []string
	Hourly       []string
	Daily        []string
	Timezone     string
	ForecastDays int `validate:"gte=0,lte=16"`

	// Extra holds any other query option (timeformat, temperature_unit, models, ...)
	Extra map[string]string
}

// Validate checks the params are complete enough to send
func (p *Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if len(p.Latitude) != len(p.Longitude) {
		return fmt.Errorf("%w: %d latitudes but %d longitudes", ErrConfiguration, len(p.Latitude), len(p.Longitude))
	}
	for k := range p.Extra {
		if slices.Contains(reservedKeys, k) {
			return fmt.Errorf("%w: extra option %q must be set through its own field", ErrConfiguration, k)
		}
	}
	return nil
}

// reservedKeys are the query options Params encodes itself
var reservedKeys = []string{
	"latitude", "longitude",
	ForecastCurrent, ForecastMinutely15, ForecastHourly, ForecastDaily,
	"timezone", "forecast_days",
}

// Query encodes the params as URL query values
func (p *Params) Query() url.Values {
	q := url.Values{}

	q.Set("latitude", joinFloats(p.Latitude))
	q.Set("longitude", joinFloats(p.Longitude))

	setList := func(key string, values []string) {
		if len(values) > 0 {
			q.Set(key, strings.Join(values, ","))
		}
	}
	setList(ForecastCurrent, p.Current)
	setList(ForecastMinutely15, p.Minutely15)
	setList(ForecastHourly, p.Hourly)
	setList(ForecastDaily, p.Daily)

	if p.Timezone != "" {
		q.Set("timezone", p.Timezone)
	}
	if p.ForecastDays > 0 {
		q.Set("forecast_days", strconv.Itoa(p.ForecastDays))
	}

	for _, k := range slices.Sorted(maps.Keys(p.Extra)) {
		if slices.Contains(reservedKeys, k) {
			continue
		}
		q.Set(k, p.Extra[k])
	}

	return q
}

// ForecastTypes returns the forecast types these params request, in a fixed order
func (p *Params) ForecastTypes() []string {
	var types []string
	if len(p.Current) > 0 {
		types = append(types, ForecastCurrent)
	}
	if len(p.Minutely15) > 0 {
		types = append(types, ForecastMinutely15)
	}
	if len(p.Hourly) > 0 {
		types = append(types, ForecastHourly)
	}
	if len(p.Daily) > 0 {
		types = append(types, ForecastDaily)
	}
	return types
}

// Clone returns a deep copy of the params
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	c := *p
	c.Latitude = slices.Clone(p.Latitude)
	c.Longitude = slices.Clone(p.Longitude)
	c.Current = slices.Clone(p.Current)
	c.Minutely15 = slices.Clone(p.Minutely15)
	c.Hourly = slices.Clone(p.Hourly)
	c.Daily = slices.Clone(p.Daily)
	c.Extra = maps.Clone(p.Extra)
	return &c
}

func joinFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
