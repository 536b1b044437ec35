package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-widget/internal/weather"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HTTP_TIMEOUT", "HTTP_MAX_RETRIES", "REFRESH_INTERVAL", "STORE_MAX_HISTORY", "STORE_MAX_AGE",
		"GEOCODING_BASE_URL", "WEATHER_BASE_URL", "PROFILE_URL", "PROFILE_TOKEN", "PROFILE_LOCATION",
		"WIDGET_USE_PROFILE_LOCATION", "WIDGET_LOCATION_FIELD_KEY", "WIDGET_FALLBACK_CITY",
		"WIDGET_DEFAULT_UNITS", "WIDGET_SHOW_CREDIT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.HTTPMaxRetries)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 96, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.True(t, cfg.Widget.UseProfileLocation)
	assert.Equal(t, "location", cfg.Widget.LocationFieldKey)
	assert.Equal(t, "New York, US", cfg.Widget.FallbackCity)
	assert.Equal(t, weather.UnitsImperial, cfg.Widget.DefaultUnits)
	assert.False(t, cfg.Widget.ShowCredit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("HTTP_MAX_RETRIES", "2")
	t.Setenv("REFRESH_INTERVAL", "0s")
	t.Setenv("PROFILE_URL", "http://directory.local/me")
	t.Setenv("WIDGET_USE_PROFILE_LOCATION", "false")
	t.Setenv("WIDGET_FALLBACK_CITY", "Paris, FR")
	t.Setenv("WIDGET_DEFAULT_UNITS", "metric")
	t.Setenv("WIDGET_SHOW_CREDIT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.HTTPMaxRetries)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Equal(t, "http://directory.local/me", cfg.ProfileURL)
	assert.False(t, cfg.Widget.UseProfileLocation)
	assert.Equal(t, "Paris, FR", cfg.Widget.FallbackCity)
	assert.Equal(t, weather.UnitsMetric, cfg.Widget.DefaultUnits)
	assert.True(t, cfg.Widget.ShowCredit)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":                "soon",
		"HTTP_MAX_RETRIES":            "many",
		"REFRESH_INTERVAL":            "15",
		"WIDGET_DEFAULT_UNITS":        "kelvin",
		"WIDGET_USE_PROFILE_LOCATION": "maybe",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_ZeroHTTPTimeoutMeansUnbounded(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Zero(t, cfg.HTTPTimeout)
	assert.Zero(t, cfg.LoadTimeout())
}

func TestAppConfig_LoadTimeout(t *testing.T) {
	assert.Equal(t, 20*time.Second, (&AppConfig{HTTPTimeout: 10 * time.Second}).LoadTimeout())
	assert.Zero(t, (&AppConfig{HTTPTimeout: -time.Second}).LoadTimeout())
}
