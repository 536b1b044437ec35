// Package widget drives the weather status card: it loads a snapshot through
// the city → geocode → current conditions pipeline and exposes the result as a
// small state machine to the render layer.
package widget

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-widget/internal/weather"
)

// Deps are the external capabilities a Controller loads through.
type Deps struct {
	Profile    weather.ProfileProvider
	Geocoder   weather.Geocoder
	Forecaster weather.Forecaster
}

// Option customizes a Controller.
type Option func(*Controller)

// WithNotify sets the hook called after every state transition and unit toggle.
// The hook runs with the controller locked, in commit order, and must not call
// back into the Controller.
func WithNotify(fn func(View)) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns the load state of one mounted widget.
//
// Every Load is tagged with a generation number. A finished load commits its
// result only if no newer Load started in the meantime and the controller has
// not been destroyed, so concurrent loads resolve last-call-wins.
type Controller struct {
	id     string
	deps   Deps
	notify func(View)
	now    func() time.Time
	logger *slog.Logger

	mu         sync.Mutex
	cfg        Config
	units      weather.Units
	state      LoadState
	generation uint64
	destroyed  bool
}

// NewController mounts a widget in the Idle state with units taken from cfg.
func NewController(cfg Config, deps Deps, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.NewString(),
		deps:   deps,
		now:    time.Now,
		logger: slog.Default(),
		cfg:    cfg,
		units:  cfg.initialUnits(),
		state:  Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("widget", c.id)
	return c
}

// ID identifies this widget instance.
func (c *Controller) ID() string {
	return c.id
}

// Load runs the load pipeline and blocks until it resolves. It may be called
// while another Load is in flight; only the most recent call's result is kept.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	cfg := c.cfg
	c.state = Loading()
	c.emitLocked(ChangeState)
	c.mu.Unlock()

	next := c.run(ctx, cfg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed || gen != c.generation {
		c.logger.Debug("discarding stale load result",
			"generation", gen, "latest", c.generation, "destroyed", c.destroyed, "status", next.Status)
		return
	}
	c.state = next
	c.emitLocked(ChangeState)
}

func (c *Controller) run(ctx context.Context, cfg Config) LoadState {
	city := weather.ResolveCity(ctx, cfg.cityQuery(), c.deps.Profile)

	geo, err := c.deps.Geocoder.Geocode(ctx, city)
	if err != nil {
		c.logger.Warn("geocoding failed", "city", city, "error", err)
		return Failed(StepGeocode, err)
	}

	cur, err := c.deps.Forecaster.FetchCurrent(ctx, geo.Latitude, geo.Longitude)
	if err != nil {
		c.logger.Warn("weather fetch failed", "city", city, "lat", geo.Latitude, "lon", geo.Longitude, "error", err)
		return Failed(StepWeather, err)
	}

	now := c.now()
	snapshot := weather.BuildSnapshot(geo, cur, now)
	c.logger.Info("weather loaded",
		"city", city, "name", snapshot.Location.Name, "country", snapshot.Location.Country,
		"temperatureC", snapshot.TemperatureC, "condition", snapshot.ConditionText)
	return Ready(snapshot, now)
}

// ToggleUnits flips the display units and returns the new value. It does not
// touch the load state and never fetches.
func (c *Controller) ToggleUnits() weather.Units {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.destroyed {
		return c.units
	}
	c.units = c.units.Toggle()
	c.emitLocked(ChangeUnits)
	return c.units
}

// Reconfigure replaces the configuration used by subsequent loads. Display
// units and the current state are left alone.
func (c *Controller) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	return nil
}

// Destroy makes the controller inert. Loads still in flight finish without
// touching state or calling the notify hook.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.destroyed {
		c.destroyed = true
		c.logger.Info("widget destroyed", "generation", c.generation)
	}
}

func (c *Controller) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

func (c *Controller) State() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Units() weather.Units {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.units
}

func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// View returns the current state, units and configuration together.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked("")
}

func (c *Controller) viewLocked(change Change) View {
	return View{
		ID:     c.id,
		State:  c.state,
		Units:  c.units,
		Config: c.cfg,
		Change: change,
	}
}

func (c *Controller) emitLocked(change Change) {
	if c.notify != nil {
		c.notify(c.viewLocked(change))
	}
}
