package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	return newFinnHubClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

func newFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

// Fetch returns general market news headlines, newest first as delivered.
func (c *FinnHubClient) Fetch(ctx context.Context, limit int) ([]Item, error) {
	res, _, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub market news: %w", err)
	}

	items := make([]Item, 0, len(res))
	for _, news := range res {
		if limit > 0 && len(items) >= limit {
			break
		}
		if news.Headline == nil || *news.Headline == "" {
			continue
		}

		it := Item{
			Title:  *news.Headline,
			Source: c.Name(),
		}

		if news.Url != nil {
			it.Link = *news.Url
		}

		if news.Datetime != nil {
			it.PublishedAt = time.Unix(*news.Datetime, 0)
		}

		if news.Source != nil && *news.Source != "" {
			it.Source = *news.Source
		}

		items = append(items, it)
	}

	return items, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
