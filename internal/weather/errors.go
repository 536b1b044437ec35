package weather

import (
	"errors"
	"fmt"
)

// Service names used in ServiceError.
const (
	ServiceGeocoding = "geocoding"
	ServiceWeather   = "weather"
)

// NotFoundError is returned when the geocoding service has no match for a city.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city not found: %s", e.City)
}

// ServiceError is returned on a non-2xx response or a transport failure from an
// upstream service. Status is zero when no HTTP response was received.
type ServiceError struct {
	Service string
	Status  int
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s service returned status %d", e.Service, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s request failed", e.Service)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *ServiceError) Retryable() bool {
	return e.Status == 0 || e.Status == 429 || e.Status >= 500
}

// IsNotFound checks if an error indicates the city could not be geocoded.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsServiceError checks if an error came from an upstream service.
func IsServiceError(err error) bool {
	var e *ServiceError
	return errors.As(err, &e)
}

// StatusOf returns the HTTP status carried by a ServiceError, or zero.
func StatusOf(err error) int {
	var e *ServiceError
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
