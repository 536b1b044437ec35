package weather

import (
	"time"
)

// LocalTimeLayout formats the location's local time the way the card shows it.
const LocalTimeLayout = "1/2/2006, 3:04:05 PM"

// BuildSnapshot combines a geocode match and a current reading into a Snapshot.
// Both unit systems are computed so that toggling units never needs a fetch.
func BuildSnapshot(geo GeocodeResult, cur CurrentConditions, now time.Time) Snapshot {
	return Snapshot{
		Location: Location{
			Name:      geo.Name,
			Country:   geo.Country,
			LocalTime: now.In(zoneFor(cur)).Format(LocalTimeLayout),
		},
		TemperatureC:  cur.TemperatureC,
		TemperatureF:  CelsiusToFahrenheit(cur.TemperatureC),
		WindKph:       cur.WindSpeedKph,
		WindMph:       KphToMph(cur.WindSpeedKph),
		HumidityPct:   cur.HumidityPct,
		ConditionText: Describe(cur.ConditionCode),
	}
}

// zoneFor prefers the named zone and falls back to the reported UTC offset.
func zoneFor(cur CurrentConditions) *time.Location {
	if cur.Timezone != "" {
		if loc, err := time.LoadLocation(cur.Timezone); err == nil {
			return loc
		}
		return time.FixedZone(cur.Timezone, cur.UTCOffsetSeconds)
	}
	if cur.UTCOffsetSeconds != 0 {
		return time.FixedZone("", cur.UTCOffsetSeconds)
	}
	return time.UTC
}
