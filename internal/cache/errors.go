package cache

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by mutating Synced operations after Close.
var ErrClosed = errors.New("cache is closed")

// ConfigurationError reports an invalid construction parameter.
// No cache instance is produced when it is returned.
type ConfigurationError struct {
	Field string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be greater than 0", e.Field, e.Value)
}

func validateCapacity(capacity int) error {
	if capacity <= 0 {
		return &ConfigurationError{Field: "capacity", Value: capacity}
	}
	return nil
}
