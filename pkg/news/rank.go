package news

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

const (
	freshnessWindowHours = 96
	maxTitleWeight       = 120
)

type score struct {
	freshness int
	source    int
	length    int
}

func (a score) less(b score) bool {
	if a.freshness != b.freshness {
		return a.freshness < b.freshness
	}
	if a.source != b.source {
		return a.source < b.source
	}
	return a.length < b.length
}

// Rank drops items whose titles share an alphanumeric key and orders the
// rest by freshness, then a per-source weight, then title length. Ties keep
// their input order.
func Rank(items []Item, now time.Time) []Item {
	seen := make(map[string]struct{}, len(items))
	uniq := make([]Item, 0, len(items))
	for _, it := range items {
		k := rankKey(it.Title)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, it)
	}

	scores := make(map[int]score, len(uniq))
	for i, it := range uniq {
		scores[i] = scoreItem(it, now)
	}
	idx := make([]int, len(uniq))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[b]].less(scores[idx[a]])
	})

	out := make([]Item, len(uniq))
	for i, j := range idx {
		out[i] = uniq[j]
	}
	return out
}

func scoreItem(it Item, now time.Time) score {
	var s score
	if !it.PublishedAt.IsZero() {
		age := now.Sub(it.PublishedAt).Hours()
		if age < 0 {
			age = 0
		}
		s.freshness = max(0, int(freshnessWindowHours-age))
	}

	sum := 0
	for _, r := range it.Source {
		sum += int(r)
	}
	s.source = sum % 13

	s.length = min(len([]rune(it.Title)), maxTitleWeight)
	return s
}

func rankKey(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
