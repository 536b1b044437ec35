package widget

import (
	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-widget/internal/weather"
)

var validate = validator.New()

// Config is the host-supplied widget configuration. The controller keeps its own
// copy, so edits to the caller's value never reach a load in progress.
type Config struct {
	UseProfileLocation bool          `json:"useProfileLocation"`
	LocationFieldKey   string        `json:"locationFieldKey" validate:"max=64"`
	FallbackCity       string        `json:"fallbackCity" validate:"max=200"`
	DefaultUnits       weather.Units `json:"defaultUnits" validate:"omitempty,oneof=imperial metric"`
	ShowCredit         bool          `json:"showCredit"`
}

// DefaultConfig mirrors the defaults of the widget's settings schema.
func DefaultConfig() Config {
	return Config{
		UseProfileLocation: true,
		LocationFieldKey:   weather.DefaultLocationFieldKey,
		FallbackCity:       weather.DefaultCity,
		DefaultUnits:       weather.UnitsImperial,
		ShowCredit:         false,
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

func (c Config) cityQuery() weather.CityQuery {
	return weather.CityQuery{
		UseProfileLocation: c.UseProfileLocation,
		LocationFieldKey:   c.LocationFieldKey,
		FallbackCity:       c.FallbackCity,
	}
}

func (c Config) initialUnits() weather.Units {
	if c.DefaultUnits.Valid() {
		return c.DefaultUnits
	}
	return weather.UnitsImperial
}
