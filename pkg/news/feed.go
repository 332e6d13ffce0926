package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const feedUserAgent = "bangla-news-avatar/1.1"

// DefaultFeeds are Bangladeshi news outlets with public RSS feeds.
var DefaultFeeds = []string{
	"https://www.prothomalo.com/feed/",
	"https://www.thedailystar.net/frontpage/rss.xml",
	"https://bangla.bdnews24.com/?widgetName=rssfeed&widgetId=1151&getXmlFeed=true",
	"https://www.kalerkantho.com/rss.xml",
}

// FeedClient reads headlines from one RSS or Atom feed.
type FeedClient struct {
	url        string
	httpClient *http.Client
}

func NewFeedClient(feedURL string) *FeedClient {
	return &FeedClient{
		url:        feedURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FeedClients builds one client per URL.
func FeedClients(urls []string) []NewsClient {
	clients := make([]NewsClient, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			clients = append(clients, NewFeedClient(u))
		}
	}
	return clients
}

func (c *FeedClient) Name() string {
	return c.url
}

func (c *FeedClient) Fetch(ctx context.Context, limit int) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch: unexpected status %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed parse: %w", err)
	}

	host := feedHost(c.url)
	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		it := Item{
			Title:  title,
			Source: host,
			Link:   extractLink(entry),
		}
		if t := publishedAt(entry); t != nil {
			it.PublishedAt = *t
		}
		items = append(items, it)
	}

	return items, nil
}

// extractLink prefers the entry link and falls back to a GUID that looks
// like a URL.
func extractLink(entry *gofeed.Item) string {
	if entry.Link != "" {
		return entry.Link
	}
	if strings.HasPrefix(entry.GUID, "http") {
		return entry.GUID
	}
	return ""
}

func publishedAt(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}

func feedHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
