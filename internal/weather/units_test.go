package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-widget/internal/weather"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 32.0, weather.CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212.0, weather.CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, -40.0, weather.CelsiusToFahrenheit(-40), 1e-9)
	assert.InDelta(t, 64.4, weather.CelsiusToFahrenheit(18), 1e-9)
}

func TestKphToMph(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, weather.KphToMph(0), 1e-9)
	assert.InDelta(t, 1.0, weather.KphToMph(1.609), 1e-9)
	assert.InDelta(t, 7.458, weather.KphToMph(12), 1e-3)
}

func TestConversionsRoundTrip(t *testing.T) {
	t.Parallel()

	values := []float64{-89.2, -40, -0.5, 0, 0.001, 18, 37.5, 56.7, 1000, 123456.789}
	for _, v := range values {
		assert.InDelta(t, v, weather.CelsiusToFahrenheit(weather.FahrenheitToCelsius(v)), 1e-6, "F->C->F %v", v)
		assert.InDelta(t, v, weather.FahrenheitToCelsius(weather.CelsiusToFahrenheit(v)), 1e-6, "C->F->C %v", v)
		assert.InDelta(t, v, weather.KphToMph(weather.MphToKph(v)), 1e-6, "mph->kph->mph %v", v)
		assert.InDelta(t, v, weather.MphToKph(weather.KphToMph(v)), 1e-6, "kph->mph->kph %v", v)
	}
}

func TestConversionsAreLinear(t *testing.T) {
	t.Parallel()

	// f(a+b) - f(0) == (f(a) - f(0)) + (f(b) - f(0))
	a, b := 12.5, 31.25
	f0 := weather.CelsiusToFahrenheit(0)
	assert.InDelta(t,
		weather.CelsiusToFahrenheit(a)-f0+weather.CelsiusToFahrenheit(b)-f0,
		weather.CelsiusToFahrenheit(a+b)-f0, 1e-9)
	assert.InDelta(t, weather.KphToMph(a)+weather.KphToMph(b), weather.KphToMph(a+b), 1e-9)
}

func TestUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, weather.UnitsMetric, weather.UnitsImperial.Toggle())
	assert.Equal(t, weather.UnitsImperial, weather.UnitsMetric.Toggle())
	assert.True(t, weather.UnitsMetric.Valid())
	assert.False(t, weather.Units("kelvin").Valid())

	u, err := weather.ParseUnits(" Metric ")
	assert.NoError(t, err)
	assert.Equal(t, weather.UnitsMetric, u)

	u, err = weather.ParseUnits("")
	assert.NoError(t, err)
	assert.Equal(t, weather.UnitsImperial, u)

	_, err = weather.ParseUnits("kelvin")
	assert.Error(t, err)
}
