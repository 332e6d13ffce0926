package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

const promptVersion = "v2"
const systemPrompt = `You are a news editor preparing headlines for a calm spoken bulletin. Rewrite the headline you are given in a neutral tone.

Rules:
1. Keep the language of the input. A Bengali headline stays Bengali.
2. Remove urgency words (BREAKING, JUST IN, ALERT, ব্রেকিং, এক্সক্লুসিভ)
3. Remove ALL CAPS
4. Replace emotional verbs with plain ones (crash, plummet → fell; soar, skyrocket → rose)
5. Remove judgmental or sensational words (shocking, terrifying, চাঞ্চল্যকর, অবিশ্বাস্য)
6. Keep all facts: numbers, names, dates, places
7. One sentence, no exclamation marks

Output as JSON only, no other text:
{
  "headline": "rewritten headline"
}`

// Provider names accepted by New.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// New returns the neutralizer for provider.
func New(provider, apiKey string) (*Rewriter, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s neutralizer: api key is required", provider)
	}
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI:
		return &Rewriter{client: NewOpenAIClient(apiKey)}, nil
	case ProviderAnthropic:
		return &Rewriter{client: NewAnthropicClient(apiKey)}, nil
	default:
		return nil, fmt.Errorf("unknown neutralizer provider %q", provider)
	}
}

func userPrompt(headline string) string {
	return fmt.Sprintf("Headline: %s", headline)
}

func parseHeadline(raw string) (string, error) {
	content := cleanJSONResponse(raw)

	var parsed struct {
		Headline string `json:"headline"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}
	return parsed.Headline, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
