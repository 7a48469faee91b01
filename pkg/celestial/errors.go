package celestial

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel matched by every descriptor validation failure.
var ErrConfiguration = errors.New("invalid body configuration")

// ConfigurationError describes a malformed descriptor. Path is the
// slash-separated name chain from the top level, e.g. "Mars/Phobos".
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Path, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErrorf(path, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
