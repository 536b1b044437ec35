package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/i474232898/weather-widget/internal/weather"
)

const userAgent = "weather-widget/1.0"

// ErrProfileUnavailable is returned when the user directory answers with a non-2xx status.
var ErrProfileUnavailable = errors.New("profile service unavailable")

// HTTPProvider reads the current user's profile from a user directory endpoint
// that returns a JSON object of fields.
type HTTPProvider struct {
	client *resty.Client
	url    string
}

var _ weather.ProfileProvider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a provider for url. token, when set, is sent as a bearer token.
func NewHTTPProvider(url, token string, timeout time.Duration) *HTTPProvider {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if token != "" {
		client.SetAuthToken(token)
	}

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		slog.Debug("profile response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time().String(),
		)
		return nil
	})

	return &HTTPProvider{client: client, url: url}
}

// LookupField fetches the whole profile and returns one field. Fields that are
// absent, null, or not strings are reported as missing.
func (p *HTTPProvider) LookupField(ctx context.Context, key string) (string, bool, error) {
	var fields map[string]any

	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&fields).
		Get(p.url)
	if err != nil {
		return "", false, fmt.Errorf("profile request failed: %w", err)
	}
	if resp.IsError() {
		return "", false, fmt.Errorf("%w: status %d", ErrProfileUnavailable, resp.StatusCode())
	}

	v, ok := fields[key].(string)
	return v, ok, nil
}
