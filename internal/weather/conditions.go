package weather

// UnknownCondition is returned for weather codes missing from the catalog.
const UnknownCondition = "Unknown"

// conditionText maps Open-Meteo (WMO) weather codes to short display text.
var conditionText = map[int]string{
	0:  "Clear",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Freezing fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Heavy drizzle",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Moderate snow",
	75: "Heavy snow",
	80: "Light rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	95: "Thunderstorm",
}

// Describe returns the display text for a weather code.
func Describe(code int) string {
	if text, ok := conditionText[code]; ok {
		return text
	}
	return UnknownCondition
}
