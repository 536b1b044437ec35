package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-widget/internal/common"
)

// Loader is anything that can be refreshed, typically a widget.Controller.
type Loader interface {
	Load(ctx context.Context)
}

// Scheduler periodically refreshes a widget. It owns the timeout of each
// scheduled load; the widget itself never times out.
type Scheduler struct {
	scheduler *gocron.Scheduler
	loader    Loader
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables periodic refresh.
func New(loader Loader, interval, timeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		loader:    loader,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic refresh and starts the underlying scheduler.
// The first run happens one interval after Start; the mount load is the host's job.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: refresh interval not set; periodic refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(func() {
		slog.Debug("scheduler: refreshing widget")

		ctx, cancel := common.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.loader.Load(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("scheduler: periodic refresh started", "interval", s.interval.String())
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
