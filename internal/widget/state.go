package widget

import (
	"time"

	"github.com/i474232898/weather-widget/internal/weather"
)

// Status tags which variant a LoadState holds.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// Step names the pipeline stage a load failed in.
type Step string

const (
	StepGeocode Step = "geocode"
	StepWeather Step = "weather"
)

// LoadError is the user-visible failure of a load.
type LoadError struct {
	Step    Step   `json:"step"`
	Message string `json:"message"`
}

// LoadState is one of Idle, Loading, Error or Ready. Build it with the
// constructors below; Error is set only for StatusError, Snapshot and
// FetchedAt only for StatusReady.
type LoadState struct {
	Status    Status           `json:"status"`
	Error     *LoadError       `json:"error,omitempty"`
	Snapshot  weather.Snapshot `json:"snapshot,omitzero"`
	FetchedAt time.Time        `json:"fetchedAt,omitzero"`
}

func Idle() LoadState {
	return LoadState{Status: StatusIdle}
}

func Loading() LoadState {
	return LoadState{Status: StatusLoading}
}

func Failed(step Step, err error) LoadState {
	return LoadState{Status: StatusError, Error: &LoadError{Step: step, Message: err.Error()}}
}

func Ready(snapshot weather.Snapshot, fetchedAt time.Time) LoadState {
	return LoadState{Status: StatusReady, Snapshot: snapshot, FetchedAt: fetchedAt}
}

// Change says what caused a notification.
type Change string

const (
	ChangeState Change = "state"
	ChangeUnits Change = "units"
)

// View is everything the render layer needs at one instant.
type View struct {
	ID     string        `json:"id"`
	State  LoadState     `json:"state"`
	Units  weather.Units `json:"units"`
	Config Config        `json:"config"`
	Change Change        `json:"change,omitempty"`
}
