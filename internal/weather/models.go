package weather

import (
	"fmt"
	"strings"
)

// Units is the unit system a snapshot is displayed in.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// Toggle returns the other unit system.
func (u Units) Toggle() Units {
	if u == UnitsMetric {
		return UnitsImperial
	}
	return UnitsMetric
}

// Valid reports whether u is one of the known unit systems.
func (u Units) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric
}

// ParseUnits parses a unit system name. An empty string yields imperial.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(UnitsImperial):
		return UnitsImperial, nil
	case string(UnitsMetric):
		return UnitsMetric, nil
	default:
		return "", fmt.Errorf("unknown units %q", s)
	}
}

// GeocodeResult is the first match the geocoding service returned for a city name.
type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
}

// CurrentConditions is a raw current reading in canonical metric units.
type CurrentConditions struct {
	TemperatureC  float64 `json:"temperatureC"`
	WindSpeedKph  float64 `json:"windSpeedKph"`
	HumidityPct   int     `json:"humidityPct"`
	ConditionCode int     `json:"conditionCode"`

	// Timezone as reported by the service for the requested coordinates.
	Timezone         string `json:"timezone"`
	UTCOffsetSeconds int    `json:"utcOffsetSeconds"`
}

// Location identifies where a snapshot was taken.
type Location struct {
	Name      string `json:"name"`
	Country   string `json:"country"`
	LocalTime string `json:"localTime"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.Name + ":" + l.Country
}

// Snapshot is a fully derived reading ready for display in either unit system.
// Values are never rounded; rounding happens at render time.
type Snapshot struct {
	Location      Location `json:"location"`
	TemperatureC  float64  `json:"temperatureC"`
	TemperatureF  float64  `json:"temperatureF"`
	WindKph       float64  `json:"windKph"`
	WindMph       float64  `json:"windMph"`
	HumidityPct   int      `json:"humidityPct"`
	ConditionText string   `json:"conditionText"`
}
