package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/weather/providers"
)

func TestOpenMeteoGeocoder_Geocode(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"latitude":48.85,"longitude":2.35,"name":"Paris","country":"France"},
			{"latitude":33.66,"longitude":-95.55,"name":"Paris","country":"United States"}
		]}`))
	}))
	defer srv.Close()

	g := providers.NewOpenMeteoGeocoder(srv.Client(), providers.ClientConfig{BaseURL: srv.URL})
	res, err := g.Geocode(context.Background(), "Paris, FR")
	require.NoError(t, err)

	assert.Equal(t, weather.GeocodeResult{Latitude: 48.85, Longitude: 2.35, Name: "Paris", Country: "France"}, res)

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, "Paris, FR", q.Get("name"))
	assert.Equal(t, "1", q.Get("count"))
}

func TestOpenMeteoGeocoder_NotFound(t *testing.T) {
	t.Parallel()

	bodies := []string{`{}`, `{"results":[]}`, `{"generationtime_ms":0.5}`}
	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			g := providers.NewOpenMeteoGeocoder(srv.Client(), providers.ClientConfig{BaseURL: srv.URL})
			_, err := g.Geocode(context.Background(), "Qzxvnotacity")
			require.Error(t, err)
			assert.True(t, weather.IsNotFound(err))
			assert.Contains(t, err.Error(), "Qzxvnotacity")
		})
	}
}

func TestOpenMeteoGeocoder_ServiceErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx status", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		g := providers.NewOpenMeteoGeocoder(srv.Client(), providers.ClientConfig{BaseURL: srv.URL})
		_, err := g.Geocode(context.Background(), "Paris")
		require.Error(t, err)
		assert.True(t, weather.IsServiceError(err))
		assert.Equal(t, http.StatusBadRequest, weather.StatusOf(err))
		assert.Contains(t, err.Error(), "geocoding service returned status 400")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"results":`))
		}))
		defer srv.Close()

		g := providers.NewOpenMeteoGeocoder(srv.Client(), providers.ClientConfig{BaseURL: srv.URL})
		_, err := g.Geocode(context.Background(), "Paris")
		require.Error(t, err)
		assert.True(t, weather.IsServiceError(err))
		assert.Equal(t, 0, weather.StatusOf(err))
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		deadURL := srv.URL
		srv.Close()

		g := providers.NewOpenMeteoGeocoder(&http.Client{Timeout: time.Second}, providers.ClientConfig{BaseURL: deadURL})
		_, err := g.Geocode(context.Background(), "Paris")
		require.Error(t, err)
		assert.True(t, weather.IsServiceError(err))
		assert.Contains(t, err.Error(), "geocoding request failed")
	})
}

func TestOpenMeteoGeocoder_NoCaching(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"results":[{"latitude":1,"longitude":2,"name":"A","country":"B"}]}`))
	}))
	defer srv.Close()

	g := providers.NewOpenMeteoGeocoder(srv.Client(), providers.ClientConfig{BaseURL: srv.URL})
	for i := 0; i < 3; i++ {
		_, err := g.Geocode(context.Background(), "A")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}
