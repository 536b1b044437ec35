package weather

import (
	"context"
)

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (GeocodeResult, error)
}

// Forecaster fetches current conditions for coordinates.
type Forecaster interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (CurrentConditions, error)
}

// ProfileProvider looks up a field of the current user's profile.
// ok is false when the field does not exist.
type ProfileProvider interface {
	LookupField(ctx context.Context, key string) (value string, ok bool, err error)
}
