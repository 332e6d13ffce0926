// Package bulletin turns raw headlines into a spoken newsreader script whose
// estimated duration fits a target window.
//
// The pipeline is normalize, deduplicate, select, format. Every step is a
// pure function of its input; nothing is shared between calls.
package bulletin

const (
	DefaultMinHeadlines     = 6
	DefaultMaxHeadlines     = 14
	DefaultTargetSecondsMin = 60
	DefaultTargetSecondsMax = 90
)

// Window bounds both the number of headlines and the estimated duration of
// the finished script.
type Window struct {
	MinHeadlines     int
	MaxHeadlines     int
	TargetSecondsMin int
	TargetSecondsMax int
}

func DefaultWindow() Window {
	return Window{
		MinHeadlines:     DefaultMinHeadlines,
		MaxHeadlines:     DefaultMaxHeadlines,
		TargetSecondsMin: DefaultTargetSecondsMin,
		TargetSecondsMax: DefaultTargetSecondsMax,
	}
}

// Validate reports the first violated invariant as a *ConfigurationError.
func (w Window) Validate() error {
	switch {
	case w.MinHeadlines <= 0:
		return &ConfigurationError{Field: "min_headlines", Reason: "must be positive"}
	case w.MaxHeadlines <= 0:
		return &ConfigurationError{Field: "max_headlines", Reason: "must be positive"}
	case w.TargetSecondsMin <= 0:
		return &ConfigurationError{Field: "target_seconds_min", Reason: "must be positive"}
	case w.TargetSecondsMax <= 0:
		return &ConfigurationError{Field: "target_seconds_max", Reason: "must be positive"}
	case w.MinHeadlines > w.MaxHeadlines:
		return &ConfigurationError{Field: "min_headlines", Reason: "must not exceed max_headlines"}
	case w.TargetSecondsMin > w.TargetSecondsMax:
		return &ConfigurationError{Field: "target_seconds_min", Reason: "must not exceed target_seconds_max"}
	}
	return nil
}

func (w Window) Contains(seconds float64) bool {
	return seconds >= float64(w.TargetSecondsMin) && seconds <= float64(w.TargetSecondsMax)
}

func (w Window) midpoint() float64 {
	return float64(w.TargetSecondsMin+w.TargetSecondsMax) / 2.0
}
