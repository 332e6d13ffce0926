package bulletin

import (
	"context"
	"fmt"
	"log/slog"
)

// Neutralizer rewrites a single headline in a calmer tone. Implementations
// typically call a language model.
type Neutralizer interface {
	Neutralize(ctx context.Context, headline string) (string, error)
}

// Composer runs the whole pipeline for one request.
type Composer struct {
	selector    Selector
	neutralizer Neutralizer
	logger      *slog.Logger
}

type Option func(*Composer)

func WithNeutralizer(n Neutralizer) Option {
	return func(c *Composer) { c.neutralizer = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithPolicy(p Policy) Option {
	return func(c *Composer) { c.selector.Policy = p }
}

func WithStrategy(s Strategy) Option {
	return func(c *Composer) { c.selector.Strategy = s }
}

func WithEstimator(e Estimator) Option {
	return func(c *Composer) { c.selector.Estimator = e }
}

func WithFormatter(f Formatter) Option {
	return func(c *Composer) { c.selector.Formatter = f }
}

func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		selector: NewSelector(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose normalizes, optionally neutralizes, deduplicates and selects raw
// headlines, and returns the formatted bulletin.
func (c *Composer) Compose(ctx context.Context, raw []string, w Window) (*Result, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	headlines := NormalizeAll(raw)
	c.logger.Debug("headlines normalized", "raw", len(raw), "kept", len(headlines))

	if c.neutralizer != nil && len(headlines) > 0 {
		var err error
		headlines, err = c.neutralize(ctx, headlines)
		if err != nil {
			return nil, err
		}
	}

	set := Dedupe(headlines)
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: nothing left after normalization", ErrEmptyInput)
	}
	c.logger.Debug("headlines deduplicated", "before", len(headlines), "after", len(set))

	res, err := c.selector.Select(set, w)
	if err != nil {
		return nil, err
	}

	c.logger.Info("bulletin composed",
		"headlines_used", res.HeadlineCount,
		"available", res.Available,
		"duration_seconds", res.EstimatedSeconds,
		"strategy", c.selector.Strategy.String(),
	)
	for _, warning := range res.Warnings {
		c.logger.Warn("bulletin outside target window", "warning", warning)
	}

	return res, nil
}

func (c *Composer) neutralize(ctx context.Context, headlines []string) ([]string, error) {
	out := make([]string, 0, len(headlines))
	for i, h := range headlines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rewritten, err := c.neutralizer.Neutralize(ctx, h)
		if err != nil {
			return nil, fmt.Errorf("neutralize headline %d: %w", i+1, err)
		}

		cleaned, ok := Normalize(rewritten)
		if !ok {
			c.logger.Warn("neutralizer returned an empty headline, keeping original", "index", i+1)
			cleaned = h
		}
		out = append(out, cleaned)
	}
	return out, nil
}
