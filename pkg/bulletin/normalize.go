package bulletin

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize cleans a raw headline for speaking. It reports false when
// nothing usable is left and the headline should be dropped.
//
// Pipeline order
// 1 strip markup and unescape entities
// 2 drop invalid UTF-8, stray control runes and BOMs, compose to NFC
// 3 collapse whitespace
// 4 strip leading bullets and list numbers
// 5 remove or soften sensational words
// 6 cap runs of terminal punctuation
// 7 tidy spacing and edge punctuation
//
// The sensational filter is a fixed word list. It is best effort and does
// not guarantee a neutral headline.
func Normalize(raw string) (string, bool) {
	s := raw
	// repeated until stable so that Normalize(Normalize(x)) == Normalize(x)
	for i := 0; i < maxNormalizePasses; i++ {
		next := normalizePass(s)
		if next == s {
			break
		}
		s = next
	}
	return s, s != ""
}

// NormalizeAll normalizes every headline and drops the empty ones.
func NormalizeAll(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := Normalize(r); ok {
			out = append(out, s)
		}
	}
	return out
}

const maxNormalizePasses = 8

type rewriteRule struct {
	pattern *regexp.Regexp
	replace string
}

var (
	// a dash counts as a bullet only when a space follows, so "-5" keeps its sign
	listMarkerPattern  = regexp.MustCompile(`^(?:[-–—]+(?:\s+|$)|[*•·▪►]+\s*|\(?[0-9০-৯]{1,3}[.)।:-]\s+)`)
	terminalRunPattern = regexp.MustCompile(`[!?.।৷！？]{2,}|[!！]`)
	spaceBeforePunct   = regexp.MustCompile(`\s+([.,;:?।৷])`)

	sensationalRules = buildSensationalRules()
)

func buildSensationalRules() []rewriteRule {
	// urgency labels only count at the start of a headline, so
	// "record-breaking" and "after breaking news" are left alone
	removals := []string{
		`(?i)^(?:breaking(?:\s+news)?|just\s+in|exclusive)(?:\s*[:|\-–—]+\s*|\s+|$)`,
		`(?i)^alert\s*[:|\-–—]+\s*`,
		`^(?:ব্রেকিং(?:\s*নিউজ)?|এক্সক্লুসিভ)(?:\s*[:|\-–—]+\s*|\s+|$)`,
		`(?i)\bshocking\b`,
		`(?i)\bviral\b`,
		`(?i)\bterrifying\b`,
		`(?i)\bjaw[\s-]*dropping\b`,
		`(?i)\bmust[\s-]+see\b`,
		`(?i)\byou\s+won'?t\s+believe\b`,
		`অবিশ্বাস্য`,
		`চাঞ্চল্য(?:কর)?`,
		`তোলপাড়`,
		`বিস্ফোরক`,
		`চমকে\s*দেবে`,
		`দেখলে\s*অবাক\s*হবেন`,
	}
	softened := []struct{ word, neutral string }{
		{"plummeted", "fell"},
		{"plummets", "falls"},
		{"plummet", "fall"},
		{"skyrocketed", "rose"},
		{"skyrockets", "rises"},
		{"skyrocket", "rise"},
		{"soared", "rose"},
		{"soars", "rises"},
		{"slammed", "criticised"},
		{"slams", "criticises"},
		{"blasted", "criticised"},
		{"blasts", "criticises"},
	}

	rules := make([]rewriteRule, 0, len(removals)+len(softened))
	for _, p := range removals {
		// feeds deliver NFC text, so the patterns must be NFC as well
		rules = append(rules, rewriteRule{pattern: regexp.MustCompile(norm.NFC.String(p))})
	}
	for _, s := range softened {
		rules = append(rules, rewriteRule{
			pattern: regexp.MustCompile(`(?i)\b` + s.word + `\b`),
			replace: s.neutral,
		})
	}
	return rules
}

func normalizePass(s string) string {
	s = stripMarkup(s)
	s = sanitize(s)
	s = collapseSpaces(s)
	s = stripListMarkers(s)
	s = desensationalize(s)
	s = terminalRunPattern.ReplaceAllStringFunc(s, capPunctuation)
	s = collapseSpaces(s)
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = strings.TrimLeft(s, " .,:;।৷")
	s = strings.TrimRight(s, " ,-:;")
	return s
}

// stripMarkup drops tags and unescapes entities using the HTML tokenizer.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	chain := transform.Chain(
		runes.Remove(runes.Predicate(isStrayRune)),
		norm.NFC,
	)
	out, _, err := transform.String(chain, s)
	if err != nil {
		return s
	}
	return out
}

// ZWJ and ZWNJ are kept: Bengali conjuncts depend on them.
func isStrayRune(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripListMarkers(s string) string {
	for {
		loc := listMarkerPattern.FindStringIndex(s)
		if loc == nil || loc[1] == 0 {
			return s
		}
		s = strings.TrimSpace(s[loc[1]:])
	}
}

func desensationalize(s string) string {
	for i := 0; i < maxNormalizePasses; i++ {
		prev := s
		for _, r := range sensationalRules {
			s = r.pattern.ReplaceAllString(s, r.replace)
		}
		if s == prev {
			break
		}
	}
	return s
}

// capPunctuation reduces a run of terminal marks to one. A question keeps
// its question mark, exclamations give way to the sentence's own full stop.
func capPunctuation(run string) string {
	if strings.ContainsAny(run, "?？") {
		return "?"
	}
	last := ""
	for _, r := range run {
		if r != '!' && r != '！' {
			last = string(r)
		}
	}
	if last == "" {
		return "."
	}
	return last
}
