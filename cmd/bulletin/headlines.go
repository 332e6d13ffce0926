package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanzim5/News/internal/config"
	"github.com/tanzim5/News/pkg/bulletin"
	"github.com/tanzim5/News/pkg/news"
)

// newHeadlinesCommand prints the cleaned headline set without composing a
// bulletin, which is handy for checking what the feeds deliver.
func newHeadlinesCommand(a *app) *cobra.Command {
	var (
		finnhub bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "headlines",
		Short: "Fetch, clean and list headlines from the configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fail(exitNoHeadlines, "%v", err)
			}
			logger := a.logger(cfg)

			clients := news.FeedClients(cfg.Feeds)
			if finnhub && cfg.FinnhubAPIKey != "" {
				clients = append(clients, news.NewFinnHubClient(cfg.FinnhubAPIKey))
			}

			items := news.Rank(news.Collect(cmd.Context(), clients, limit, logger), a.now())
			set := bulletin.Dedupe(bulletin.NormalizeAll(news.Titles(items)))
			if len(set) == 0 {
				return fail(exitNoHeadlines, "No headlines found.")
			}

			for i, h := range set {
				fmt.Fprintf(a.stdout, "%2d. %s\n", i+1, h)
			}
			return nil
		},
	}

	cmd.Flags().StringSlice(config.KeyFeeds, news.DefaultFeeds, "RSS/Atom feed URLs")
	cmd.Flags().BoolVar(&finnhub, "finnhub", false, "add Finnhub market news (needs FINNHUB_API_KEY)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum headlines per source")
	return cmd
}
