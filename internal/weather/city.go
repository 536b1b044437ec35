package weather

import (
	"context"
	"log/slog"

	"github.com/i474232898/weather-widget/internal/common"
)

const (
	// DefaultLocationFieldKey is the profile field read when none is configured.
	DefaultLocationFieldKey = "location"
	// DefaultCity is used when neither the profile nor the configuration yields a city.
	DefaultCity = "New York, US"
)

// CityQuery carries the configuration fields that decide which city to look up.
type CityQuery struct {
	UseProfileLocation bool
	LocationFieldKey   string
	FallbackCity       string
}

// ResolveCity picks the city to geocode. A profile lookup that fails, misses the
// field, or yields only whitespace falls back to the configured city; it is never
// reported as an error.
func ResolveCity(ctx context.Context, q CityQuery, profile ProfileProvider) string {
	if q.UseProfileLocation && profile != nil {
		key := common.FirstNonBlank(q.LocationFieldKey, DefaultLocationFieldKey)

		value, ok, err := profile.LookupField(ctx, key)
		switch {
		case err != nil:
			slog.Debug("profile lookup failed; using fallback city", "field", key, "error", err)
		case !ok:
			slog.Debug("profile field missing; using fallback city", "field", key)
		default:
			if city := common.FirstNonBlank(value); city != "" {
				return city
			}
		}
	}

	return common.FirstNonBlank(q.FallbackCity, DefaultCity)
}
