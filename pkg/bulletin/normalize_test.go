package bulletin

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"golang.org/x/text/unicode/norm"
)

func nfc(s string) string {
	return norm.NFC.String(s)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace and strips bengali list number",
			input: "  ১.   রাজধানীতে   বৃষ্টি  ",
			want:  "রাজধানীতে বৃষ্টি",
		},
		{
			name:  "strips stacked bullets and markers",
			input: "- • ২) সংসদ অধিবেশন শুরু",
			want:  "সংসদ অধিবেশন শুরু",
		},
		{
			name:  "caps exclamation run before dari",
			input: "বাজারে আগুন!!!৷",
			want:  "বাজারে আগুন৷",
		},
		{
			name:  "collapses repeated question marks",
			input: "কী হচ্ছে??",
			want:  "কী হচ্ছে?",
		},
		{
			name:  "removes bengali sensational word",
			input: "চাঞ্চল্যকর তথ্য: মন্ত্রীর পদত্যাগ",
			want:  "তথ্য: মন্ত্রীর পদত্যাগ",
		},
		{
			name:  "removes word with nukta letter",
			input: "নির্বাচন নিয়ে তোলপাড় সংসদে",
			want:  "নির্বাচন নিয়ে সংসদে",
		},
		{
			name:  "removes urgency prefix and softens verb",
			input: "BREAKING: Stocks plummet after report!!",
			want:  "Stocks fall after report.",
		},
		{
			name:  "removes clickbait words around punctuation",
			input: "Shocking!!! Viral video shows rescue",
			want:  "video shows rescue",
		},
		{
			name:  "strips markup and unescapes entities",
			input: "<b>Fed</b> holds rates &amp; signals patience",
			want:  "Fed holds rates & signals patience",
		},
		{
			name:  "keeps years at the start",
			input: "2024 budget passed",
			want:  "2024 budget passed",
		},
		{
			name:  "keeps breaking inside a compound word",
			input: "Record-breaking heatwave hits Dhaka",
			want:  "Record-breaking heatwave hits Dhaka",
		},
		{
			name:  "keeps breaking news mid sentence",
			input: "Shares soared after breaking news",
			want:  "Shares rose after breaking news",
		},
		{
			name:  "keeps exclusive mid sentence",
			input: "Court rules on exclusive fishing rights",
			want:  "Court rules on exclusive fishing rights",
		},
		{
			name:  "removes dashed urgency prefix",
			input: "Just in - Port reopens",
			want:  "Port reopens",
		},
		{
			name:  "removes alert prefix",
			input: "ALERT: storm nears coast",
			want:  "storm nears coast",
		},
		{
			name:  "keeps alert without a label separator",
			input: "Alert residents evacuate early",
			want:  "Alert residents evacuate early",
		},
		{
			name:  "keeps minus sign on a leading number",
			input: "-5 degrees expected in Srimangal tonight",
			want:  "-5 degrees expected in Srimangal tonight",
		},
		{
			name:  "strips dash bullet followed by a space",
			input: "– Port reopens",
			want:  "Port reopens",
		},
		{
			name:  "drops control characters",
			input: "Port\x00 reopens\x07 today",
			want:  "Port reopens today",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			assert.Equal(t, true, ok)
			assert.Equal(t, nfc(tt.want), got)
		})
	}
}

func TestNormalizeDropsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n", "!!!", "- ", "—", "এক্সক্লুসিভ", "Breaking news:", "<br/>"} {
		got, ok := Normalize(input)
		assert.Equal(t, false, ok)
		assert.Equal(t, "", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  ১.   রাজধানীতে   বৃষ্টি  ",
		"বাজারে আগুন!!!৷",
		"BREAKING: Stocks plummet after report!!",
		"Just in: 1. 2. Markets skyrocketed ?! ",
		"Exclusive: <i>Minister</i> resigns &quot;today&quot;",
		"দেখলে অবাক হবেন!! নদীতে নতুন সেতু",
		"3) ৪) - headline",
		"-5 degrees expected in Srimangal tonight",
		"Record-breaking heatwave hits Dhaka",
	}
	for _, input := range inputs {
		once, _ := Normalize(input)
		twice, _ := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeEndsWithSingleTerminalMark(t *testing.T) {
	got, _ := Normalize("ঢাকায় ভূমিকম্প অনুভূত!!!৷")
	runes := []rune(got)
	assert.Equal(t, '৷', runes[len(runes)-1])
	assert.Equal(t, false, strings.ContainsAny(string(runes[len(runes)-2]), "!?.।৷"))
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"  one  ", "", "!!", "two"})
	assert.Equal(t, []string{"one", "two"}, got)
}
