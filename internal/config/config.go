package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/widget"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds each outbound call (Open-Meteo, profile service).
	HTTPTimeout    time.Duration
	HTTPMaxRetries int

	// RefreshInterval controls how often the widget reloads; 0 disables it.
	RefreshInterval time.Duration

	// In-memory snapshot history retention.
	StoreMaxHistory int           // max number of records per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of records (0 = unlimited)

	// Optional overrides of the Open-Meteo endpoints.
	GeocodingBaseURL string
	WeatherBaseURL   string

	// Profile source: an HTTP user directory when ProfileURL is set,
	// otherwise a static location.
	ProfileURL      string
	ProfileToken    string
	ProfileLocation string

	Widget widget.Config
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found or error loading it", "error", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.HTTPMaxRetries, err = getenvInt("HTTP_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil { // roughly 24h at 15-minute intervals
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	cfg.GeocodingBaseURL = os.Getenv("GEOCODING_BASE_URL")
	cfg.WeatherBaseURL = os.Getenv("WEATHER_BASE_URL")

	cfg.ProfileURL = os.Getenv("PROFILE_URL")
	cfg.ProfileToken = os.Getenv("PROFILE_TOKEN")
	cfg.ProfileLocation = os.Getenv("PROFILE_LOCATION")

	w, err := loadWidget()
	if err != nil {
		return nil, err
	}
	cfg.Widget = w

	return cfg, nil
}

// LoadTimeout bounds one whole load: a geocoding call plus a forecast call.
// It is zero, meaning unbounded, when HTTPTimeout is zero.
func (c *AppConfig) LoadTimeout() time.Duration {
	if c.HTTPTimeout <= 0 {
		return 0
	}
	return 2 * c.HTTPTimeout
}

func loadWidget() (widget.Config, error) {
	w := widget.DefaultConfig()

	var err error
	if w.UseProfileLocation, err = getenvBool("WIDGET_USE_PROFILE_LOCATION", w.UseProfileLocation); err != nil {
		return w, err
	}
	if w.ShowCredit, err = getenvBool("WIDGET_SHOW_CREDIT", w.ShowCredit); err != nil {
		return w, err
	}
	w.LocationFieldKey = getenvDefault("WIDGET_LOCATION_FIELD_KEY", w.LocationFieldKey)
	w.FallbackCity = getenvDefault("WIDGET_FALLBACK_CITY", w.FallbackCity)

	units, err := weather.ParseUnits(getenvDefault("WIDGET_DEFAULT_UNITS", string(w.DefaultUnits)))
	if err != nil {
		return w, fmt.Errorf("invalid WIDGET_DEFAULT_UNITS: %w", err)
	}
	w.DefaultUnits = units

	if err := w.Validate(); err != nil {
		return w, fmt.Errorf("invalid widget configuration: %w", err)
	}
	return w, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
