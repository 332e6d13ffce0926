package news

import (
	"context"
	"log/slog"
	"time"
)

// Item is one headline pulled from a source.
type Item struct {
	Title       string
	Source      string
	Link        string
	PublishedAt time.Time
}

type NewsClient interface {
	Fetch(ctx context.Context, limit int) ([]Item, error)
	Name() string
}

// Collect fetches every client in turn. A failing client is logged and
// skipped so the remaining sources can still supply headlines.
func Collect(ctx context.Context, clients []NewsClient, limit int, logger *slog.Logger) []Item {
	if logger == nil {
		logger = slog.Default()
	}

	var items []Item
	for _, c := range clients {
		if ctx.Err() != nil {
			break
		}

		fetched, err := c.Fetch(ctx, limit)
		if err != nil {
			logger.Warn("feed unavailable", "source", c.Name(), "error", err)
			continue
		}
		logger.Debug("feed fetched", "source", c.Name(), "items", len(fetched))
		items = append(items, fetched...)
	}
	return items
}

// Titles flattens items to their headlines.
func Titles(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}
