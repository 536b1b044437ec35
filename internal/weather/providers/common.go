package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-widget/internal/weather"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

// ClientConfig configures an Open-Meteo client. Zero values select defaults.
type ClientConfig struct {
	BaseURL string
	Backoff BackoffConfig
}

// DefaultBackoff performs no retries; a failed load is retried by the user.
func DefaultBackoff() BackoffConfig {
	return BackoffConfig{
		MaxRetries:      0,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

var (
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

func newHTTPConfig(client *http.Client, b BackoffConfig) HTTPClientConfig {
	if client == nil {
		client = http.DefaultClient
	}
	def := DefaultBackoff()
	if b.InitialInterval <= 0 {
		b.InitialInterval = def.InitialInterval
	}
	if b.MaxInterval <= 0 {
		b.MaxInterval = def.MaxInterval
	}
	if b.MaxRetries < 0 {
		b.MaxRetries = 0
	}
	return HTTPClientConfig{Client: client, Backoff: b}
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// A 404 from the service says nothing about its health, and neither
		// does a caller giving up on the request.
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			var se *weather.ServiceError
			if errors.As(err, &se) {
				return !se.Retryable()
			}
			return err == nil
		},
	})
}

// doRequestWithResilience executes the HTTP request with retries, exponential backoff,
// and a circuit breaker. Every failure is returned as a *weather.ServiceError for service.
func doRequestWithResilience(
	ctx context.Context,
	service string,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, &weather.ServiceError{Service: service, Err: errNoHTTPClient}
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, &weather.ServiceError{Service: service, Err: errInvalidConfig}
	}

	var attempt int

	for {
		if err := ctx.Err(); err != nil {
			return nil, &weather.ServiceError{Service: service, Err: err}
		}

		req, err := buildRequest(ctx)
		if err != nil {
			return nil, &weather.ServiceError{Service: service, Err: err}
		}

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, &weather.ServiceError{Service: service, Err: execErr}
			}

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				// Drain so the connection can be reused.
				_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
				resp.Body.Close()
				return nil, &weather.ServiceError{Service: service, Status: resp.StatusCode}
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, &weather.ServiceError{Service: service, Err: fmt.Errorf("unexpected result type from circuit breaker")}
			}
			return resp, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.ServiceError{Service: service, Err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
		}

		var se *weather.ServiceError
		if !errors.As(err, &se) {
			se = &weather.ServiceError{Service: service, Err: err}
		}
		if !se.Retryable() || attempt >= cfg.Backoff.MaxRetries {
			return nil, se
		}

		// Backoff with exponential delay.
		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &weather.ServiceError{Service: service, Err: ctx.Err()}
		case <-timer.C:
			// continue to next attempt
		}

		attempt++
	}
}
