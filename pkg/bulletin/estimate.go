package bulletin

import (
	"strings"
	"unicode"
)

// Unit selects how spoken length is counted.
type Unit int

const (
	// UnitAuto counts characters for scripts written without spaces
	// between words and words for everything else.
	UnitAuto Unit = iota
	UnitWords
	UnitChars
)

const (
	DefaultWordsPerMinute = 118.0
	DefaultCharsPerSecond = 14.0
)

// unsegmentedScripts do not separate words with spaces, so a whitespace
// word count would undercount them badly.
var unsegmentedScripts = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Thai,
	unicode.Lao,
	unicode.Khmer,
	unicode.Myanmar,
	unicode.Tibetan,
}

// Estimator converts text length into an estimated speaking time.
//
// The estimate is linear in the amount of text and has no model of pauses
// or punctuation. Synthesized audio commonly lands within 15-20% of it; treat
// it as an approximation.
type Estimator struct {
	WordsPerMinute float64
	CharsPerSecond float64
	Unit           Unit
}

func NewEstimator() Estimator {
	return Estimator{
		WordsPerMinute: DefaultWordsPerMinute,
		CharsPerSecond: DefaultCharsPerSecond,
		Unit:           UnitAuto,
	}
}

// Seconds returns the estimated spoken duration of text.
func (e Estimator) Seconds(text string) float64 {
	switch e.unitFor(text) {
	case UnitChars:
		cps := e.CharsPerSecond
		if cps <= 0 {
			cps = DefaultCharsPerSecond
		}
		return float64(CountChars(text)) / cps
	default:
		wpm := e.WordsPerMinute
		if wpm <= 0 {
			wpm = DefaultWordsPerMinute
		}
		return float64(CountWords(text)) / wpm * 60.0
	}
}

func (e Estimator) unitFor(text string) Unit {
	if e.Unit != UnitAuto {
		return e.Unit
	}
	if isUnsegmented(text) {
		return UnitChars
	}
	return UnitWords
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountChars counts letters, marks and digits. Spaces and punctuation are
// not spoken and are left out.
func CountChars(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isUnsegmented(text string) bool {
	for _, r := range text {
		if unicode.IsOneOf(unsegmentedScripts, r) {
			return true
		}
	}
	return false
}
