package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/weather"
)

const openMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoGeocoder resolves city names with the Open-Meteo geocoding API.
//
// Only the first match is used; ambiguous names (e.g. "Springfield") are not
// disambiguated by region. Results are never cached.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Geocoder = (*OpenMeteoGeocoder)(nil)

func NewOpenMeteoGeocoder(client *http.Client, cfg ClientConfig) *OpenMeteoGeocoder {
	base := cfg.BaseURL
	if base == "" {
		base = openMeteoGeocodingURL
	}
	return &OpenMeteoGeocoder{
		baseURL: base,
		httpCfg: newHTTPConfig(client, cfg.Backoff),
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

func (p *OpenMeteoGeocoder) Geocode(ctx context.Context, city string) (weather.GeocodeResult, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", city)
		values.Set("count", "1")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	slog.Debug("geocoding city", "city", city)

	resp, err := doRequestWithResilience(ctx, weather.ServiceGeocoding, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.GeocodeResult{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Name      string  `json:"name"`
			Country   string  `json:"country"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.GeocodeResult{}, &weather.ServiceError{
			Service: weather.ServiceGeocoding,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}

	if len(payload.Results) == 0 {
		return weather.GeocodeResult{}, &weather.NotFoundError{City: city}
	}

	first := payload.Results[0]
	return weather.GeocodeResult{
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
		Name:      first.Name,
		Country:   first.Country,
	}, nil
}
