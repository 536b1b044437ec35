// Package profile provides sources for the current user's profile fields.
package profile

import (
	"context"

	"github.com/i474232898/weather-widget/internal/weather"
)

// Static serves profile fields from a fixed map.
type Static struct {
	fields map[string]string

	// fixed, when set, answers every key.
	fixed *string
}

var _ weather.ProfileProvider = (*Static)(nil)

// NewStatic copies fields into a new Static provider.
func NewStatic(fields map[string]string) *Static {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &Static{fields: cp}
}

// NewFixed returns a provider that answers every field key with value, so a
// reconfigured field key still finds the location.
func NewFixed(value string) *Static {
	return &Static{fixed: &value}
}

func (s *Static) LookupField(_ context.Context, key string) (string, bool, error) {
	if s.fixed != nil {
		return *s.fixed, true, nil
	}
	v, ok := s.fields[key]
	return v, ok, nil
}
