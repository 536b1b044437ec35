package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-widget/internal/common"
	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/widget"
)

var validate = validator.New()

// Handler serves one mounted widget over HTTP.
type Handler struct {
	widget  *widget.Controller
	history *store.MemoryStore

	// loadTimeout bounds refreshes started from a request.
	loadTimeout time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, ctrl *widget.Controller, history *store.MemoryStore, loadTimeout time.Duration) {
	h := &Handler{widget: ctrl, history: history, loadTimeout: loadTimeout}

	v1 := app.Group("/api/v1/widget")

	v1.Get("/", h.getWidget)
	v1.Post("/refresh", h.refresh)
	v1.Post("/units/toggle", h.toggleUnits)
	v1.Put("/config", h.reconfigure)
	v1.Get("/history/latest", h.latest)
	v1.Get("/history", h.historyRange)
}

// widgetResponse is the view plus the rendered card.
type widgetResponse struct {
	View widget.View `json:"view"`
	Card widget.Card `json:"card"`
}

func respond(v widget.View) widgetResponse {
	return widgetResponse{View: v, Card: widget.Render(v)}
}

func (h *Handler) getWidget(c *fiber.Ctx) error {
	return c.JSON(respond(h.widget.View()))
}

// refresh starts a load. With wait=true it blocks until that load resolves.
func (h *Handler) refresh(c *fiber.Ctx) error {
	if h.widget.Destroyed() {
		return fiber.NewError(fiber.StatusGone, "widget has been destroyed")
	}

	load := func(ctx context.Context) {
		ctx, cancel := common.WithTimeout(ctx, h.loadTimeout)
		defer cancel()
		h.widget.Load(ctx)
	}

	if c.QueryBool("wait") {
		load(c.UserContext())
		return c.JSON(respond(h.widget.View()))
	}

	go load(context.Background())
	return c.Status(fiber.StatusAccepted).JSON(respond(h.widget.View()))
}

func (h *Handler) toggleUnits(c *fiber.Ctx) error {
	if h.widget.Destroyed() {
		return fiber.NewError(fiber.StatusGone, "widget has been destroyed")
	}
	h.widget.ToggleUnits()
	return c.JSON(respond(h.widget.View()))
}

func (h *Handler) reconfigure(c *fiber.Ctx) error {
	var cfg widget.Config
	if err := c.BodyParser(&cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid configuration body")
	}
	if err := h.widget.Reconfigure(cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) latest(c *fiber.Ctx) error {
	locReq, err := parseLocationQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	rec, err := h.history.GetLatest(locReq.toLocation())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather history")
	}

	return c.JSON(rec)
}

func (h *Handler) historyRange(c *fiber.Ctx) error {
	var req historyQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	loc := req.Location.toLocation()
	records, err := h.history.GetRange(loc, req.From, req.To)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather history")
	}

	return c.JSON(fiber.Map{
		"location": loc,
		"from":     req.From,
		"to":       req.To,
		"records":  records,
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	Name    string `validate:"required"`
	Country string `validate:"required"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		Name:    l.Name,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.Name = c.Query("name")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location locationQuery
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
