package llm

import (
	"context"
	"fmt"
	"strings"
)

type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
	model() string
}

// Rewriter asks a language model for a calmer version of a headline.
type Rewriter struct {
	client completer
}

func (r *Rewriter) Neutralize(ctx context.Context, headline string) (string, error) {
	content, err := r.client.complete(ctx, systemPrompt, userPrompt(headline))
	if err != nil {
		return "", err
	}
	rewritten, err := parseHeadline(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.client.model(), err)
	}
	return strings.TrimSpace(rewritten), nil
}

// Model names the underlying model and prompt version, for logs.
func (r *Rewriter) Model() string {
	return r.client.model() + "/" + promptVersion
}
