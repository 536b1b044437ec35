package widget

import (
	"fmt"
	"math"

	"github.com/i474232898/weather-widget/internal/weather"
)

const (
	LoadingText = "Loading weather…"
	ErrorPrefix = "Error: "
	ToggleLabel = "Toggle °F / °C"
	CreditText  = "Powered by Open-Meteo"
)

// Card holds the display strings of the status card. Rounding happens here and
// nowhere else.
type Card struct {
	Status      Status `json:"status"`
	Message     string `json:"message,omitempty"`
	Title       string `json:"title,omitempty"`
	LocalTime   string `json:"localTime,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Wind        string `json:"wind,omitempty"`
	Humidity    string `json:"humidity,omitempty"`
	ToggleLabel string `json:"toggleLabel,omitempty"`
	Credit      string `json:"credit,omitempty"`
}

// Render turns a View into card text in the view's display units.
func Render(v View) Card {
	card := Card{Status: v.State.Status}

	switch v.State.Status {
	case StatusLoading:
		card.Message = LoadingText
		return card
	case StatusError:
		msg := "request failed"
		if v.State.Error != nil {
			msg = v.State.Error.Message
		}
		card.Message = ErrorPrefix + msg
		return card
	case StatusReady:
	default:
		return card
	}

	s := v.State.Snapshot
	card.Title = s.Location.Name + ", " + s.Location.Country
	card.LocalTime = s.Location.LocalTime
	card.Condition = s.ConditionText
	card.Humidity = fmt.Sprintf("Humidity %d%%", s.HumidityPct)
	card.ToggleLabel = ToggleLabel

	if v.Units == weather.UnitsMetric {
		card.Temperature = fmt.Sprintf("%d°C", round(s.TemperatureC))
		card.Wind = fmt.Sprintf("Wind %d kph", round(s.WindKph))
	} else {
		card.Temperature = fmt.Sprintf("%d°F", round(s.TemperatureF))
		card.Wind = fmt.Sprintf("Wind %d mph", round(s.WindMph))
	}

	if v.Config.ShowCredit {
		card.Credit = CreditText
	}
	return card
}

// round rounds half up, so -0.5 becomes 0 rather than -1.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
