package bulletin

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key is the equality key used for deduplication: case folded text with
// whitespace runs collapsed.
func Key(headline string) string {
	folded := cases.Fold().String(headline)
	return strings.Join(strings.Fields(folded), " ")
}

// Dedupe removes repeated headlines. The first occurrence wins and the
// relative order of the survivors is unchanged.
func Dedupe(headlines []string) []string {
	seen := make(map[string]struct{}, len(headlines))
	out := make([]string, 0, len(headlines))
	for _, h := range headlines {
		k := Key(h)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, h)
	}
	return out
}
