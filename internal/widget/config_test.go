package widget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/widget"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := widget.DefaultConfig()
	assert.True(t, cfg.UseProfileLocation)
	assert.Equal(t, "location", cfg.LocationFieldKey)
	assert.Equal(t, "New York, US", cfg.FallbackCity)
	assert.Equal(t, weather.UnitsImperial, cfg.DefaultUnits)
	assert.False(t, cfg.ShowCredit)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, widget.Config{}.Validate())
	assert.NoError(t, widget.Config{DefaultUnits: weather.UnitsMetric}.Validate())
	assert.Error(t, widget.Config{DefaultUnits: "kelvin"}.Validate())

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'k'
	}
	assert.Error(t, widget.Config{LocationFieldKey: string(long)}.Validate())
}
