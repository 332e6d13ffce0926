package bulletin

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when no headlines were supplied, or none
// survived normalization.
var ErrEmptyInput = errors.New("no headlines supplied")

// InsufficientHeadlinesError means the headline set is smaller than the
// window's minimum.
type InsufficientHeadlinesError struct {
	Available int
	Required  int
}

func (e *InsufficientHeadlinesError) Error() string {
	return fmt.Sprintf("insufficient headlines: %d available, %d required", e.Available, e.Required)
}

// ConfigurationError names an invalid configuration field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// WindowUnreachableError is returned under PolicyHardFail when the selected
// headlines cannot be made to fit the duration window.
type WindowUnreachableError struct {
	Window    Window
	Count     int
	Estimated float64
}

func (e *WindowUnreachableError) Error() string {
	return fmt.Sprintf("target window %d-%ds unreachable: %d headlines estimate %.1fs",
		e.Window.TargetSecondsMin, e.Window.TargetSecondsMax, e.Count, e.Estimated)
}
