package openmeteo

import (
	"fmt"
	"iter"

	"github.com/david5010/AetherGrid/internal/table"
	"github.com/david5010/AetherGrid/internal/types"
	"github.com/tidwall/gjson"
)

// Response is an immutable snapshot of a decoded forecast body, one raw object per location
type Response struct {
	locations [][]byte
}

// Forecast is one table of the flattened response: a location, a forecast type and its table
type Forecast struct {
	Location types.LocationKey `json:"location"`
	Type     string            `json:"forecastType"`
	Table    *table.Table      `json:"table"`
}

// ParseResponse splits a forecast body into per-location objects.
// A bare object (single location query) is treated as a one-element list.
func ParseResponse(body []byte) (Response, error) {
	if !gjson.ValidBytes(body) {
		return Response{}, fmt.Errorf("%w: response is not valid JSON", table.ErrMalformed)
	}

	doc := gjson.ParseBytes(body)
	switch {
	case doc.IsObject():
		return Response{locations: [][]byte{[]byte(doc.Raw)}}, nil
	case doc.IsArray():
		var locations [][]byte
		for _, item := range doc.Array() {
			locations = append(locations, []byte(item.Raw))
		}
		return Response{locations: locations}, nil
	default:
		return Response{}, fmt.Errorf("%w: expected a list of locations", table.ErrMalformed)
	}
}

// Len returns the number of locations in the response
func (r Response) Len() int {
	return len(r.locations)
}

// Records yields one record per location, in response order. Decoding happens on each pull,
// and the first decoding error ends the sequence.
func (r Response) Records() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for _, raw := range r.locations {
			rec, err := NewRecord(raw)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Forecasts yields every requested forecast type of every location, all types of the first
// location before the second. The first error ends the sequence.
func (r Response) Forecasts(forecastTypes ...string) iter.Seq2[Forecast, error] {
	return func(yield func(Forecast, error) bool) {
		for rec, err := range r.Records() {
			if err != nil {
				yield(Forecast{}, err)
				return
			}
			for _, ft := range forecastTypes {
				tbl, err := rec.Forecast(ft)
				if err != nil {
					yield(Forecast{}, err)
					return
				}
				if !yield(Forecast{Location: rec.Key(), Type: ft, Table: tbl}, nil) {
					return
				}
			}
		}
	}
}
