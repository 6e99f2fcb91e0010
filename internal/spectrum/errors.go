package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every ConfigError
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInsufficientData is matched by every InsufficientDataError
	ErrInsufficientData = errors.New("insufficient data")
)

// ConfigError is a custom error type for configuration errors
type ConfigError struct {
	Field string
	msg   string
}

func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("spectrum.Config: %s: %s", e.Field, e.msg)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// InsufficientDataError is returned when the signal cannot fill a single STFT segment
type InsufficientDataError struct {
	Samples  int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: signal has %d samples, at least %d required", ErrInsufficientData, e.Samples, e.Required)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
