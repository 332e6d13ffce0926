package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"headline":"test"}`,
			want:  `{"headline":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"headline\":\"test\"}\n```",
			want:  `{"headline":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"headline\":\"test\"}\n```",
			want:  `{"headline":"test"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"headline\":\"test\"}  ",
			want:  `{"headline":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanJSONResponseStripsProse(t *testing.T) {
	got := cleanJSONResponse("Here you go:\n{\"headline\":\"বাজেট পাস\"}\nThanks")
	if got != `{"headline":"বাজেট পাস"}` {
		t.Errorf("got %q", got)
	}
}

func TestParseHeadline(t *testing.T) {
	got, err := parseHeadline("```json\n{\"headline\":\"Stocks fell after report\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Stocks fell after report" {
		t.Errorf("got %q", got)
	}

	if _, err := parseHeadline("not json"); err == nil {
		t.Error("expected error for non JSON content")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantErr  bool
	}{
		{name: "openai", provider: "openai", apiKey: "k"},
		{name: "anthropic mixed case", provider: "Anthropic", apiKey: "k"},
		{name: "missing key", provider: "openai", apiKey: "", wantErr: true},
		{name: "unknown provider", provider: "llama", apiKey: "k", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.provider, tt.apiKey)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil || r == nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
