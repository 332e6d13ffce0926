package bulletin

import (
	"fmt"
	"strings"
	"time"
)

// Locale holds the fixed sentences of a bulletin. Intro lines may contain
// the {date} placeholder.
type Locale struct {
	Intro      []string
	ItemPrefix string
	Outro      string
	Terminator string
	DateLayout string
}

var LocaleBengali = Locale{
	Intro: []string{
		"আজকের শীর্ষ খবর, তারিখ {date}।",
		"সংবাদের মূল তথ্যগুলো সংক্ষেপে তুলে ধরা হলো।",
	},
	ItemPrefix: "খবর %d: ",
	Outro:      "এগুলো ছিল এই মুহূর্তের প্রধান খবর। বিস্তারিত জানুন নির্ভরযোগ্য সংবাদমাধ্যম থেকে।",
	Terminator: "।",
	DateLayout: "02-01-2006",
}

var LocaleEnglish = Locale{
	Intro: []string{
		"Today's top news for {date}.",
		"Here are the key facts in brief.",
	},
	ItemPrefix: "Story %d: ",
	Outro:      "Those were the main headlines. For details, follow reliable news outlets.",
	Terminator: ".",
	DateLayout: "2 January 2006",
}

// trailing marks replaced by the locale terminator; a question mark is kept
const sentenceTrim = " .।৷!！,;:-"

// Formatter renders headlines into the final script.
type Formatter struct {
	Locale   Locale
	Numbered bool
	Now      func() time.Time
}

func NewFormatter() Formatter {
	return Formatter{
		Locale:   LocaleBengali,
		Numbered: true,
		Now:      time.Now,
	}
}

// Format assembles intro, one sentence per headline and outro, one per line.
func (f Formatter) Format(headlines []string) string {
	lines := f.introLines()
	n := 0
	for _, h := range headlines {
		s := f.Sentence(h)
		if s == "" {
			continue
		}
		n++
		if f.Numbered && f.Locale.ItemPrefix != "" {
			s = fmt.Sprintf(f.Locale.ItemPrefix, n) + s
		}
		lines = append(lines, s)
	}
	if f.Locale.Outro != "" {
		lines = append(lines, f.Locale.Outro)
	}
	return strings.Join(lines, "\n")
}

// Sentence turns a headline into one spoken sentence ending in terminal
// punctuation.
func (f Formatter) Sentence(headline string) string {
	h := strings.TrimSpace(headline)
	if strings.HasSuffix(h, "?") || strings.HasSuffix(h, "？") {
		return h
	}
	h = strings.TrimRight(h, sentenceTrim)
	if h == "" {
		return ""
	}
	return h + f.Locale.Terminator
}

func (f Formatter) introLines() []string {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	date := now().Format(f.Locale.DateLayout)

	lines := make([]string, 0, len(f.Locale.Intro)+2)
	for _, l := range f.Locale.Intro {
		lines = append(lines, strings.ReplaceAll(l, "{date}", date))
	}
	return lines
}
