package openmeteo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/david5010/AetherGrid/internal/types"
	"github.com/google/go-cmp/cmp"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func locationJSON(lat, lon float64, temp float64) string {
	return fmt.Sprintf(`{
		"latitude": %v, "longitude": %v, "timezone": "GMT",
		"current_units": {"temperature_2m": "°C"},
		"current": {"time": "2024-01-01T00:00", "temperature_2m": %v},
		"hourly": {"time": ["2024-01-01T00:00", "2024-01-01T01:00"], "temperature_2m": [%v, %v]}
	}`, lat, lon, temp, temp, temp+1)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func berlinLondonParams() *Params {
	return &Params{
		Latitude:  []float64{52.52, 51.5085},
		Longitude: []float64{13.41, -0.1257},
		Current:   []string{"temperature_2m"},
		Hourly:    []string{"temperature_2m"},
	}
}

func TestForecastClient_FetchForecast(t *testing.T) {
	var gotPath, gotQuery string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("latitude") + "|" + r.URL.Query().Get("current")
		_, _ = fmt.Fprintf(w, "[%s,%s]", locationJSON(52.52, 13.41, 5), locationJSON(51.5085, -0.1257, 7))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	if err := client.FetchForecast(t.Context(), berlinLondonParams()); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	if gotPath != "/forecast" {
		t.Errorf("path = %q, want /forecast", gotPath)
	}
	if gotQuery != "52.52,51.5085|temperature_2m" {
		t.Errorf("query = %q", gotQuery)
	}

	var got []types.LocationKey
	for rec, err := range client.Records() {
		if err != nil {
			t.Fatalf("Records() unexpected error: %v", err)
		}
		got = append(got, rec.Key())
	}

	want := []types.LocationKey{
		types.NewLocationKey(13.41, 52.52),
		types.NewLocationKey(-0.1257, 51.5085),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestForecastClient_FetchForecast_UsesDefaults(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("longitude") != "13.41,-0.1257" {
			t.Errorf("longitude = %q", r.URL.Query().Get("longitude"))
		}
		_, _ = fmt.Fprintf(w, "[%s,%s]", locationJSON(52.52, 13.41, 5), locationJSON(51.5085, -0.1257, 7))
	})

	client := NewForecastClient(srv.URL, berlinLondonParams(), testLogger())
	if err := client.FetchForecast(t.Context(), nil); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1", calls.Load())
	}
}

func TestForecastClient_FetchForecast_NoParams(t *testing.T) {
	client := NewForecastClient("http://127.0.0.1:0", nil, testLogger())

	err := client.FetchForecast(t.Context(), nil)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("FetchForecast() error = %v, want %v", err, ErrConfiguration)
	}
}

func TestForecastClient_FetchForecast_SingleObject(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, locationJSON(52.52, 13.41, 5))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52}, Longitude: []float64{13.41}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	snap, err := client.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("Len() = %d, want 1", snap.Len())
	}
}

func TestForecastClient_TransportErrorClearsState(t *testing.T) {
	var fail atomic.Bool
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`)
			return
		}
		_, _ = fmt.Fprintf(w, "[%s]", locationJSON(52.52, 13.41, 5))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52}, Longitude: []float64{13.41}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	fail.Store(true)
	err := client.FetchForecast(t.Context(), params)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("FetchForecast() error = %v, want %v", err, ErrTransport)
	}

	if _, err := client.Snapshot(); !errors.Is(err, ErrNoDataFetched) {
		t.Errorf("Snapshot() error = %v, want %v", err, ErrNoDataFetched)
	}
}

func TestForecastClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewForecastClient(url, nil, testLogger())
	params := &Params{Latitude: []float64{52.52}, Longitude: []float64{13.41}}

	err := client.FetchForecast(t.Context(), params)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("FetchForecast() error = %v, want %v", err, ErrTransport)
	}
}

func TestForecastClient_MalformedBody(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `"not a forecast"`)
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52}, Longitude: []float64{13.41}}

	if err := client.FetchForecast(t.Context(), params); !errors.Is(err, ErrTransport) {
		t.Fatalf("FetchForecast() error = %v, want %v", err, ErrTransport)
	}
}

func TestForecastClient_NoDataFetched(t *testing.T) {
	client := NewForecastClient("http://127.0.0.1:0", nil, testLogger())

	var errs []error
	for rec, err := range client.Records() {
		if rec != nil {
			t.Errorf("unexpected record %v", rec)
		}
		errs = append(errs, err)
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrNoDataFetched) {
		t.Errorf("Records() errors = %v, want [%v]", errs, ErrNoDataFetched)
	}

	for _, err := range client.Forecasts(ForecastCurrent) {
		if !errors.Is(err, ErrNoDataFetched) {
			t.Errorf("Forecasts() error = %v, want %v", err, ErrNoDataFetched)
		}
	}
}

func TestForecastClient_Forecasts_Order(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, "[%s,%s,%s]",
			locationJSON(52.52, 13.41, 5),
			locationJSON(51.5085, -0.1257, 7),
			locationJSON(40.71, -74.01, 9))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52, 51.5085, 40.71}, Longitude: []float64{13.41, -0.1257, -74.01}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	type triple struct {
		Lon, Lat float64
		Type     string
		Rows     int
	}
	var got []triple
	for f, err := range client.Forecasts(ForecastCurrent, ForecastHourly) {
		if err != nil {
			t.Fatalf("Forecasts() unexpected error: %v", err)
		}
		got = append(got, triple{f.Location.Longitude, f.Location.Latitude, f.Type, f.Table.Len()})
	}

	want := []triple{
		{13.41, 52.52, ForecastCurrent, 1},
		{13.41, 52.52, ForecastHourly, 2},
		{-0.1257, 51.5085, ForecastCurrent, 1},
		{-0.1257, 51.5085, ForecastHourly, 2},
		{-74.01, 40.71, ForecastCurrent, 1},
		{-74.01, 40.71, ForecastHourly, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Forecasts() mismatch (-want +got):\n%s", diff)
	}
}

func TestForecastClient_Forecasts_StopsAtFirstError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, "[%s,%s]", locationJSON(52.52, 13.41, 5), locationJSON(51.5085, -0.1257, 7))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52, 51.5085}, Longitude: []float64{13.41, -0.1257}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	var (
		ok   int
		errs []error
	)
	for _, err := range client.Forecasts(ForecastCurrent, ForecastMinutely15, ForecastHourly) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ok++
	}

	if ok != 1 {
		t.Errorf("got %d tables before the failure, want 1", ok)
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrForecastTypeNotFound) {
		t.Errorf("errors = %v, want one %v", errs, ErrForecastTypeNotFound)
	}
}

func TestForecastClient_EarlyTermination(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		// Second location is broken; stopping after the first must never decode it
		_, _ = fmt.Fprintf(w, `[%s,{"latitude":1}]`, locationJSON(52.52, 13.41, 5))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52, 1}, Longitude: []float64{13.41, 1}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	for rec, err := range client.Records() {
		if err != nil {
			t.Fatalf("Records() unexpected error: %v", err)
		}
		if rec.Latitude != 52.52 {
			t.Errorf("Latitude = %v, want 52.52", rec.Latitude)
		}
		break
	}

	var gotErr error
	for _, err := range client.Records() {
		gotErr = err
	}
	if !errors.Is(gotErr, ErrMissingField) {
		t.Errorf("full traversal error = %v, want %v", gotErr, ErrMissingField)
	}
}

func TestForecastClient_RefetchOverwrites(t *testing.T) {
	var second atomic.Bool
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if second.Load() {
			_, _ = fmt.Fprintf(w, "[%s]", locationJSON(40.71, -74.01, 9))
			return
		}
		_, _ = fmt.Fprintf(w, "[%s,%s]", locationJSON(52.52, 13.41, 5), locationJSON(51.5085, -0.1257, 7))
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	if err := client.FetchForecast(t.Context(), berlinLondonParams()); err != nil {
		t.Fatalf("first FetchForecast() unexpected error: %v", err)
	}

	// A sequence created before the refetch keeps iterating the first response
	before := client.Records()

	second.Store(true)
	params := &Params{Latitude: []float64{40.71}, Longitude: []float64{-74.01}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("second FetchForecast() unexpected error: %v", err)
	}

	var after []float64
	for rec, err := range client.Records() {
		if err != nil {
			t.Fatalf("Records() unexpected error: %v", err)
		}
		after = append(after, rec.Latitude)
	}
	if diff := cmp.Diff([]float64{40.71}, after); diff != "" {
		t.Errorf("records after refetch mismatch (-want +got):\n%s", diff)
	}

	var old []float64
	for rec, err := range before {
		if err != nil {
			t.Fatalf("Records() unexpected error: %v", err)
		}
		old = append(old, rec.Latitude)
	}
	if diff := cmp.Diff([]float64{52.52, 51.5085}, old); diff != "" {
		t.Errorf("snapshot records mismatch (-want +got):\n%s", diff)
	}
}

func TestForecastClient_Example(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"latitude":52.52,"longitude":13.41,"timezone":"Europe/Berlin","current_units":{"temperature_2m":"°C"},"current":{"time":"2024-01-01T00:00","temperature_2m":5.0}}]`)
	})

	client := NewForecastClient(srv.URL, nil, testLogger())
	params := &Params{Latitude: []float64{52.52}, Longitude: []float64{13.41}, Current: []string{"temperature_2m"}}
	if err := client.FetchForecast(t.Context(), params); err != nil {
		t.Fatalf("FetchForecast() unexpected error: %v", err)
	}

	var got []Forecast
	for f, err := range client.Forecasts(ForecastCurrent) {
		if err != nil {
			t.Fatalf("Forecasts() unexpected error: %v", err)
		}
		got = append(got, f)
	}

	if len(got) != 1 {
		t.Fatalf("got %d triples, want 1", len(got))
	}
	f := got[0]
	if f.Location != types.NewLocationKey(13.41, 52.52) {
		t.Errorf("Location = %v, want (13.41,52.52)", f.Location)
	}
	if f.Type != ForecastCurrent {
		t.Errorf("Type = %q, want current", f.Type)
	}
	if f.Table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", f.Table.Len())
	}
	ts, _ := f.Table.Value(0, "time")
	// Local Berlin midnight, one hour before UTC midnight in winter
	if got, ok := ts.(time.Time); !ok || !got.Equal(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)) {
		t.Errorf("time = %v, want 2024-01-01T00:00+01:00", ts)
	}
	temp, _ := f.Table.Value(0, "temperature_2m")
	if temp != 5.0 {
		t.Errorf("temperature_2m = %v, want 5", temp)
	}
}
