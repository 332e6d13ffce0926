package news

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeClient struct {
	name  string
	items []Item
	err   error
}

func (f *fakeClient) Fetch(_ context.Context, limit int) ([]Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func (f *fakeClient) Name() string { return f.name }

func TestCollectSkipsFailingSources(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	clients := []NewsClient{
		&fakeClient{name: "a", items: []Item{{Title: "one"}, {Title: "two"}}},
		&fakeClient{name: "down", err: errors.New("timeout")},
		&fakeClient{name: "b", items: []Item{{Title: "three"}}},
	}

	items := Collect(context.Background(), clients, 0, logger)

	assert.Equal(t, []string{"one", "two", "three"}, Titles(items))
	assert.Equal(t, true, strings.Contains(buf.String(), "feed unavailable"))
	assert.Equal(t, true, strings.Contains(buf.String(), "source=down"))
}

func TestCollectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := Collect(ctx, []NewsClient{&fakeClient{name: "a", items: []Item{{Title: "one"}}}}, 0, nil)

	assert.Equal(t, 0, len(items))
}
