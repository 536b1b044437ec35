package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/weather"
)

const (
	openMeteoForecastURL = "https://api.open-meteo.com/v1/forecast"
	currentFields        = "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m"
)

// OpenMeteoForecaster fetches current conditions from the Open-Meteo forecast API.
// Units are never negotiated: the service defaults (°C, km/h) are what we convert from.
type OpenMeteoForecaster struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

var _ weather.Forecaster = (*OpenMeteoForecaster)(nil)

func NewOpenMeteoForecaster(client *http.Client, cfg ClientConfig) *OpenMeteoForecaster {
	base := cfg.BaseURL
	if base == "" {
		base = openMeteoForecastURL
	}
	return &OpenMeteoForecaster{
		baseURL: base,
		httpCfg: newHTTPConfig(client, cfg.Backoff),
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

func (p *OpenMeteoForecaster) FetchCurrent(ctx context.Context, lat, lon float64) (weather.CurrentConditions, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("current", currentFields)
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	slog.Debug("fetching current conditions", "lat", lat, "lon", lon)

	resp, err := doRequestWithResilience(ctx, weather.ServiceWeather, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Timezone         string `json:"timezone"`
		UTCOffsetSeconds int    `json:"utc_offset_seconds"`
		Current          struct {
			Temperature2m      float64 `json:"temperature_2m"`
			RelativeHumidity2m float64 `json:"relative_humidity_2m"`
			WeatherCode        int     `json:"weather_code"`
			WindSpeed10m       float64 `json:"wind_speed_10m"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.CurrentConditions{}, &weather.ServiceError{
			Service: weather.ServiceWeather,
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}

	return weather.CurrentConditions{
		TemperatureC:     payload.Current.Temperature2m,
		WindSpeedKph:     payload.Current.WindSpeed10m,
		HumidityPct:      int(math.Round(payload.Current.RelativeHumidity2m)),
		ConditionCode:    payload.Current.WeatherCode,
		Timezone:         payload.Timezone,
		UTCOffsetSeconds: payload.UTCOffsetSeconds,
	}, nil
}
