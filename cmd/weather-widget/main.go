package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-widget/internal/api/http"
	"github.com/i474232898/weather-widget/internal/common"
	"github.com/i474232898/weather-widget/internal/config"
	"github.com/i474232898/weather-widget/internal/profile"
	"github.com/i474232898/weather-widget/internal/scheduler"
	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/weather"
	"github.com/i474232898/weather-widget/internal/weather/providers"
	"github.com/i474232898/weather-widget/internal/widget"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound Open-Meteo calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	backoff := providers.DefaultBackoff()
	backoff.MaxRetries = cfg.HTTPMaxRetries

	geocoder := providers.NewOpenMeteoGeocoder(httpClient, providers.ClientConfig{
		BaseURL: cfg.GeocodingBaseURL,
		Backoff: backoff,
	})
	forecaster := providers.NewOpenMeteoForecaster(httpClient, providers.ClientConfig{
		BaseURL: cfg.WeatherBaseURL,
		Backoff: backoff,
	})

	var profiles weather.ProfileProvider
	if cfg.ProfileURL != "" {
		profiles = profile.NewHTTPProvider(cfg.ProfileURL, cfg.ProfileToken, cfg.HTTPTimeout)
	} else {
		profiles = profile.NewFixed(cfg.ProfileLocation)
	}

	// In-memory history of successful loads.
	history := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	ctrl := widget.NewController(cfg.Widget, widget.Deps{
		Profile:    profiles,
		Geocoder:   geocoder,
		Forecaster: forecaster,
	}, widget.WithNotify(func(v widget.View) {
		slog.Debug("widget changed", "id", v.ID, "change", v.Change, "status", v.State.Status, "units", v.Units)
		if v.Change == widget.ChangeState && v.State.Status == widget.StatusReady {
			history.Save(store.Record{Snapshot: v.State.Snapshot, FetchedAt: v.State.FetchedAt})
		}
	}))

	// Mount: the first load runs right away, the scheduler takes over after one interval.
	go func() {
		ctx, cancel := common.WithTimeout(context.Background(), cfg.LoadTimeout())
		defer cancel()
		ctrl.Load(ctx)
	}()

	sched := scheduler.New(ctrl, cfg.RefreshInterval, cfg.LoadTimeout())
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-widget",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          writeTimeout(cfg.LoadTimeout()),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-widget",
			"widget":  ctrl.ID(),
		})
	})

	httpapi.RegisterRoutes(app, ctrl, history, cfg.LoadTimeout())

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()
	slog.Info("weather widget listening", "port", cfg.Port, "widget", ctrl.ID())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	// Unmount.
	ctrl.Destroy()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
}

// writeTimeout leaves room for a refresh?wait=true request to finish its load.
func writeTimeout(load time.Duration) time.Duration {
	if load <= 0 {
		return 0
	}
	return load + 5*time.Second
}
