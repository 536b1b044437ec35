package weather

// kphPerMph is the conversion factor used for wind speed.
const kphPerMph = 1.609

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func KphToMph(kph float64) float64 {
	return kph / kphPerMph
}

func MphToKph(mph float64) float64 {
	return mph * kphPerMph
}
