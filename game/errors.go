package game

import (
	"errors"
	"fmt"
)

// ErrNoFreeCell is returned when every cell that food may occupy is taken.
var ErrNoFreeCell = errors.New("no free cell for food")

// ConfigError reports an invalid session parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
