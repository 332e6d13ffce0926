package bulletin

import (
	"fmt"
	"math"
	"strings"
)

// Policy decides what happens when the chosen headlines miss the duration
// window.
type Policy int

const (
	// PolicySoftFail returns the result with BelowTarget or AboveTarget set.
	PolicySoftFail Policy = iota
	// PolicyHardFail returns a *WindowUnreachableError instead.
	PolicyHardFail
)

// Strategy picks how many headlines to take.
type Strategy int

const (
	// StrategyGreedy walks the set in order and keeps adding headlines while
	// the window allows it.
	StrategyGreedy Strategy = iota
	// StrategyBestFit tries every allowed prefix length and takes the first
	// inside the window, else the one closest to the window midpoint.
	StrategyBestFit
)

func (s Strategy) String() string {
	switch s {
	case StrategyBestFit:
		return "bestfit"
	default:
		return "greedy"
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "greedy":
		return StrategyGreedy, nil
	case "bestfit", "best-fit", "best_fit":
		return StrategyBestFit, nil
	default:
		return StrategyGreedy, &ConfigurationError{Field: "strategy", Reason: fmt.Sprintf("unknown value %q", name)}
	}
}

// Result is a finished bulletin and its metadata.
type Result struct {
	Script           string
	Headlines        []string
	HeadlineCount    int
	EstimatedSeconds float64
	// Available is the size of the deduplicated set the selection came from.
	Available   int
	BelowTarget bool
	AboveTarget bool
	Warnings    []string
}

func (r *Result) EstimatedMinutes() float64 {
	return r.EstimatedSeconds / 60.0
}

// SoftFailed reports whether the result missed its duration window.
func (r *Result) SoftFailed() bool {
	return r.BelowTarget || r.AboveTarget
}

// Selector chooses an order preserving prefix of a headline set that fits a
// Window. Durations are always measured on the fully formatted script so the
// intro, outro and item prefixes are accounted for.
type Selector struct {
	Estimator Estimator
	Formatter Formatter
	Policy    Policy
	Strategy  Strategy
}

func NewSelector() Selector {
	return Selector{
		Estimator: NewEstimator(),
		Formatter: NewFormatter(),
		Policy:    PolicySoftFail,
		Strategy:  StrategyGreedy,
	}
}

// Select picks headlines from set, which must already be normalized and
// deduplicated. The headlines keep their relative order.
func (s Selector) Select(set []string, w Window) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, ErrEmptyInput
	}
	if len(set) < w.MinHeadlines {
		return nil, &InsufficientHeadlinesError{Available: len(set), Required: w.MinHeadlines}
	}

	var count int
	switch s.Strategy {
	case StrategyBestFit:
		count = s.bestFitCount(set, w)
	default:
		count = s.greedyCount(set, w)
	}

	chosen := make([]string, count)
	copy(chosen, set[:count])
	script := s.Formatter.Format(chosen)

	res := &Result{
		Script:           script,
		Headlines:        chosen,
		HeadlineCount:    count,
		EstimatedSeconds: s.Estimator.Seconds(script),
		Available:        len(set),
	}
	s.flag(res, w)

	if res.SoftFailed() && s.Policy == PolicyHardFail {
		return nil, &WindowUnreachableError{Window: w, Count: count, Estimated: res.EstimatedSeconds}
	}
	return res, nil
}

func (s Selector) duration(headlines []string) float64 {
	return s.Estimator.Seconds(s.Formatter.Format(headlines))
}

// greedyCount never stops short of both the headline minimum and the
// duration floor while headlines remain. A candidate that would cross the
// ceiling is rejected only once the floor has been reached.
func (s Selector) greedyCount(set []string, w Window) int {
	floor, ceiling := float64(w.TargetSecondsMin), float64(w.TargetSecondsMax)
	count := 0
	current := s.duration(nil)
	for count < len(set) && count < w.MaxHeadlines {
		next := s.duration(set[:count+1])
		if count >= w.MinHeadlines && current >= floor && next > ceiling {
			break
		}
		count++
		current = next
		if count >= w.MinHeadlines && current >= ceiling {
			break
		}
	}
	return count
}

func (s Selector) bestFitCount(set []string, w Window) int {
	limit := min(w.MaxHeadlines, len(set))
	mid := w.midpoint()

	best, bestScore := w.MinHeadlines, math.Inf(1)
	for c := w.MinHeadlines; c <= limit; c++ {
		d := s.duration(set[:c])
		if w.Contains(d) {
			return c
		}
		if score := math.Abs(d - mid); score < bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func (s Selector) flag(res *Result, w Window) {
	switch {
	case res.EstimatedSeconds > float64(w.TargetSecondsMax):
		res.AboveTarget = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"estimated duration %.1fs exceeds the %ds ceiling with %d headlines",
			res.EstimatedSeconds, w.TargetSecondsMax, res.HeadlineCount))
	case res.EstimatedSeconds < float64(w.TargetSecondsMin):
		res.BelowTarget = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"estimated duration %.1fs is below the %ds floor with %d of %d headlines",
			res.EstimatedSeconds, w.TargetSecondsMin, res.HeadlineCount, res.Available))
	}
}
