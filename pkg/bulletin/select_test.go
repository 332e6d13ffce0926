package bulletin

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

// secondSelector makes every spoken word last exactly one second and drops
// intro, outro and numbering so durations are easy to reason about.
func secondSelector() Selector {
	return Selector{
		Estimator: Estimator{WordsPerMinute: 60, Unit: UnitWords},
		Formatter: Formatter{Locale: Locale{Terminator: "."}, Now: fixedNow},
	}
}

// headlinesOf builds one headline per entry with that many words.
func headlinesOf(words ...int) []string {
	out := make([]string, len(words))
	for i, n := range words {
		ws := make([]string, n)
		for j := range ws {
			ws[j] = "w" + string(rune('a'+i%26))
		}
		out[i] = strings.Join(ws, " ")
	}
	return out
}

func TestSelectFillsWindow(t *testing.T) {
	set := headlinesOf(5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5)
	w := Window{MinHeadlines: 3, MaxHeadlines: 10, TargetSecondsMin: 20, TargetSecondsMax: 40}

	res, err := secondSelector().Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 8, res.HeadlineCount)
	assert.Equal(t, 40.0, res.EstimatedSeconds)
	assert.Equal(t, false, res.SoftFailed())
	assert.Equal(t, 0, len(res.Warnings))
	assert.Equal(t, 20, res.Available)
}

func TestSelectWithinBoundsForShortHeadlines(t *testing.T) {
	set := headlinesOf(3, 4, 2, 5, 3, 4, 2, 5, 3, 4, 2, 5, 3, 4)
	windows := []Window{
		{MinHeadlines: 2, MaxHeadlines: 6, TargetSecondsMin: 10, TargetSecondsMax: 20},
		{MinHeadlines: 4, MaxHeadlines: 10, TargetSecondsMin: 15, TargetSecondsMax: 30},
		{MinHeadlines: 1, MaxHeadlines: 14, TargetSecondsMin: 30, TargetSecondsMax: 45},
	}

	for _, w := range windows {
		res, err := secondSelector().Select(set, w)
		assert.Equal(t, nil, err)
		assert.Equal(t, true, res.HeadlineCount >= w.MinHeadlines && res.HeadlineCount <= w.MaxHeadlines)
		assert.Equal(t, true, w.Contains(res.EstimatedSeconds))
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	set := headlinesOf(4, 1, 3, 2, 5, 1)
	w := Window{MinHeadlines: 2, MaxHeadlines: 5, TargetSecondsMin: 5, TargetSecondsMax: 12}

	res, err := secondSelector().Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, set[:res.HeadlineCount], res.Headlines)
}

func TestSelectRejectsHeadlineThatOverflows(t *testing.T) {
	set := headlinesOf(5, 5, 5, 30, 5)
	w := Window{MinHeadlines: 2, MaxHeadlines: 10, TargetSecondsMin: 10, TargetSecondsMax: 20}

	res, err := secondSelector().Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, res.HeadlineCount)
	assert.Equal(t, 15.0, res.EstimatedSeconds)
}

func TestSelectStopsAtMaxBelowFloor(t *testing.T) {
	set := headlinesOf(5, 5, 5, 5, 5, 5)
	w := Window{MinHeadlines: 2, MaxHeadlines: 4, TargetSecondsMin: 100, TargetSecondsMax: 200}

	res, err := secondSelector().Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 4, res.HeadlineCount)
	assert.Equal(t, true, res.BelowTarget)
	assert.Equal(t, false, res.AboveTarget)
	assert.Equal(t, 1, len(res.Warnings))
}

func TestSelectLongHeadlinesSoftFail(t *testing.T) {
	set := headlinesOf(30, 30, 30)
	w := Window{MinHeadlines: 2, MaxHeadlines: 5, TargetSecondsMin: 10, TargetSecondsMax: 40}

	res, err := secondSelector().Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, res.HeadlineCount)
	assert.Equal(t, 60.0, res.EstimatedSeconds)
	assert.Equal(t, true, res.AboveTarget)
	assert.Equal(t, true, strings.Contains(res.Warnings[0], "ceiling"))
}

func TestSelectLongHeadlinesHardFail(t *testing.T) {
	set := headlinesOf(30, 30, 30)
	w := Window{MinHeadlines: 2, MaxHeadlines: 5, TargetSecondsMin: 10, TargetSecondsMax: 40}

	s := secondSelector()
	s.Policy = PolicyHardFail
	res, err := s.Select(set, w)

	var unreachable *WindowUnreachableError
	assert.Equal(t, true, errors.As(err, &unreachable))
	assert.Equal(t, 2, unreachable.Count)
	assert.Equal(t, 60.0, unreachable.Estimated)
	assert.Equal(t, true, res == nil)
}

func TestSelectInsufficientHeadlines(t *testing.T) {
	set := headlinesOf(3, 3, 3)
	w := Window{MinHeadlines: 6, MaxHeadlines: 14, TargetSecondsMin: 60, TargetSecondsMax: 90}

	_, err := secondSelector().Select(set, w)

	var insufficient *InsufficientHeadlinesError
	assert.Equal(t, true, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 6, insufficient.Required)
	assert.Equal(t, "insufficient headlines: 3 available, 6 required", err.Error())
}

func TestSelectEmpty(t *testing.T) {
	_, err := secondSelector().Select(nil, DefaultWindow())
	assert.Equal(t, true, errors.Is(err, ErrEmptyInput))
}

func TestSelectInvalidWindow(t *testing.T) {
	w := Window{MinHeadlines: 8, MaxHeadlines: 4, TargetSecondsMin: 60, TargetSecondsMax: 90}

	_, err := secondSelector().Select(headlinesOf(1, 1), w)

	var cfgErr *ConfigurationError
	assert.Equal(t, true, errors.As(err, &cfgErr))
	assert.Equal(t, "min_headlines", cfgErr.Field)
}

func TestSelectKeepsAddingBelowFloor(t *testing.T) {
	set := headlinesOf(5, 5, 5, 5, 5)
	w := Window{MinHeadlines: 1, MaxHeadlines: 5, TargetSecondsMin: 12, TargetSecondsMax: 14}

	res, err := secondSelector().Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, res.HeadlineCount)
	assert.Equal(t, 15.0, res.EstimatedSeconds)
	assert.Equal(t, true, res.AboveTarget)
	assert.Equal(t, false, res.BelowTarget)
}

func TestSelectBestFit(t *testing.T) {
	set := headlinesOf(5, 5, 5, 5, 5)
	w := Window{MinHeadlines: 1, MaxHeadlines: 5, TargetSecondsMin: 9, TargetSecondsMax: 21}

	greedy, err := secondSelector().Select(set, w)
	assert.Equal(t, nil, err)
	assert.Equal(t, 4, greedy.HeadlineCount)
	assert.Equal(t, 20.0, greedy.EstimatedSeconds)

	s := secondSelector()
	s.Strategy = StrategyBestFit
	best, err := s.Select(set, w)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, best.HeadlineCount)
	assert.Equal(t, false, best.SoftFailed())
}

func TestSelectBestFitClosestToMidpoint(t *testing.T) {
	set := headlinesOf(5, 5, 5, 5, 5)
	w := Window{MinHeadlines: 1, MaxHeadlines: 5, TargetSecondsMin: 12, TargetSecondsMax: 14}

	s := secondSelector()
	s.Strategy = StrategyBestFit
	res, err := s.Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 3, res.HeadlineCount)
	assert.Equal(t, true, res.AboveTarget)
}

func TestSelectBestFitReturnsFirstInside(t *testing.T) {
	set := headlinesOf(5, 5, 5, 5, 5)
	w := Window{MinHeadlines: 1, MaxHeadlines: 5, TargetSecondsMin: 9, TargetSecondsMax: 21}

	s := secondSelector()
	s.Strategy = StrategyBestFit
	res, err := s.Select(set, w)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, res.HeadlineCount)
	assert.Equal(t, false, res.SoftFailed())
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("Best-Fit")
	assert.Equal(t, nil, err)
	assert.Equal(t, StrategyBestFit, s)

	s, err = ParseStrategy("")
	assert.Equal(t, nil, err)
	assert.Equal(t, StrategyGreedy, s)

	_, err = ParseStrategy("random")
	var cfgErr *ConfigurationError
	assert.Equal(t, true, errors.As(err, &cfgErr))
}

func TestWindowValidate(t *testing.T) {
	assert.Equal(t, nil, DefaultWindow().Validate())

	tests := []struct {
		window Window
		field  string
	}{
		{Window{0, 4, 60, 90}, "min_headlines"},
		{Window{1, 0, 60, 90}, "max_headlines"},
		{Window{1, 4, 0, 90}, "target_seconds_min"},
		{Window{1, 4, 60, -1}, "target_seconds_max"},
		{Window{1, 4, 91, 90}, "target_seconds_min"},
	}
	for _, tt := range tests {
		err := tt.window.Validate()
		var cfgErr *ConfigurationError
		assert.Equal(t, true, errors.As(err, &cfgErr))
		assert.Equal(t, tt.field, cfgErr.Field)
	}
}
