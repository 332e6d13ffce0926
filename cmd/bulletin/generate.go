package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanzim5/News/internal/config"
	"github.com/tanzim5/News/pkg/bulletin"
	"github.com/tanzim5/News/pkg/llm"
	"github.com/tanzim5/News/pkg/news"
	"github.com/tanzim5/News/pkg/tts"
)

type generateOptions struct {
	headlinesFile string
	noFeed        bool
	finnhub       bool
	rank          bool
	outputScript  string
	generateAudio bool
	outputAudio   string
}

func newGenerateCommand(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the bulletin script and optionally synthesize it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fail(exitNoHeadlines, "%v", err)
			}
			return a.generate(cmd.Context(), cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringSlice(config.KeyFeeds, news.DefaultFeeds, "RSS/Atom feed URLs")
	f.StringVar(&opts.headlinesFile, "headlines-file", "", "UTF-8 file with one headline per line")
	f.BoolVar(&opts.noFeed, "no-feed", false, "skip online feeds (use with --headlines-file)")
	f.BoolVar(&opts.finnhub, "finnhub", false, "add Finnhub market news (needs FINNHUB_API_KEY)")
	f.BoolVar(&opts.rank, "rank", true, "order headlines by freshness and source before selection")

	f.Int(config.KeyMinHeadlines, bulletin.DefaultMinHeadlines, "minimum headlines in the bulletin")
	f.Int(config.KeyMaxHeadlines, bulletin.DefaultMaxHeadlines, "maximum headlines in the bulletin")
	f.Int(config.KeyTargetSecondsMin, bulletin.DefaultTargetSecondsMin, "target duration floor in seconds")
	f.Int(config.KeyTargetSecondsMax, bulletin.DefaultTargetSecondsMax, "target duration ceiling in seconds")
	f.String(config.KeyStrategy, bulletin.StrategyGreedy.String(), "selection strategy: greedy or bestfit")
	f.Bool(config.KeyStrict, false, "fail instead of warning when the duration window is missed")
	f.String(config.KeyNeutralizer, "", "rewrite headlines with a language model: openai or anthropic")

	f.StringVar(&opts.outputScript, "output-script", "headlines_bn.txt", "where to write the script, empty to skip")
	f.BoolVar(&opts.generateAudio, "generate-audio", false, "synthesize the script with Sarvam TTS")
	f.StringVar(&opts.outputAudio, "output-audio", "headlines_bn.wav", "where to write the audio")
	f.String(config.KeySarvamAPIKey, "", "Sarvam API key (or SARVAM_API_KEY)")
	f.String(config.KeySarvamEndpoint, tts.DefaultEndpoint, "Sarvam text-to-speech endpoint")
	f.String(config.KeyModel, tts.DefaultModel, "Sarvam voice model")
	f.String(config.KeyLanguageCode, tts.DefaultLanguageCode, "target language code")
	f.String(config.KeySpeaker, tts.DefaultSpeaker, "speaker voice")
	f.Int(config.KeySampleRate, tts.DefaultSampleRate, "audio sample rate")

	return cmd
}

func (a *app) generate(ctx context.Context, cfg *config.Config, opts generateOptions) error {
	logger := a.logger(cfg)

	items, err := a.gather(ctx, cfg, opts, logger)
	if err != nil {
		return fail(exitNoHeadlines, "%v", err)
	}
	if len(items) == 0 {
		return fail(exitNoHeadlines, "No headlines found. Provide --headlines-file or enable reachable feeds.")
	}
	if opts.rank {
		items = news.Rank(items, a.now())
	}

	composerOpts := []bulletin.Option{
		bulletin.WithLogger(logger),
		bulletin.WithPolicy(cfg.Policy()),
		bulletin.WithStrategy(cfg.Strategy),
	}
	if cfg.Neutralizer != "" {
		rewriter, err := llm.New(cfg.Neutralizer, cfg.NeutralizerKey())
		if err != nil {
			return fail(exitNoHeadlines, "%v", err)
		}
		composerOpts = append(composerOpts, bulletin.WithNeutralizer(rewriter))
	}

	res, err := bulletin.NewComposer(composerOpts...).Compose(ctx, news.Titles(items), cfg.Window)
	if err != nil {
		return fail(exitNoHeadlines, "%v", err)
	}

	fmt.Fprintln(a.stdout, "\n=== Generated Bangla Headlines Script ===")
	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, res.Script)
	fmt.Fprintf(a.stdout, "\nEstimated duration: %.1f sec (%.2f min), headlines used: %d\n",
		res.EstimatedSeconds, res.EstimatedMinutes(), res.HeadlineCount)
	for _, w := range res.Warnings {
		fmt.Fprintf(a.stderr, "[warn] %s\n", w)
	}

	if opts.outputScript != "" {
		if err := os.WriteFile(opts.outputScript, []byte(res.Script+"\n"), 0o644); err != nil {
			return fail(exitNoHeadlines, "error writing script: %v", err)
		}
	}

	if !opts.generateAudio {
		return nil
	}

	if cfg.TTS.APIKey == "" {
		return fail(exitMissingKey, "Missing SARVAM API key. Use --sarvam-api-key or SARVAM_API_KEY.")
	}

	synth, err := a.newSynthesizer(cfg.TTS)
	if err != nil {
		return fail(exitMissingKey, "%v", err)
	}

	if err := tts.SynthesizeToFile(ctx, synth, res.Script, opts.outputAudio); err != nil {
		var reqErr *tts.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
			return fail(exitTTSFailure, "Sarvam TTS HTTP error %d: %s", reqErr.StatusCode, reqErr.Message)
		}
		if errors.As(err, &reqErr) {
			return fail(exitTTSFailure, "Sarvam TTS network error: %v", reqErr.Err)
		}
		return fail(exitTTSFailure, "Sarvam TTS error: %v", err)
	}

	fmt.Fprintf(a.stdout, "Audio saved to %s\n", opts.outputAudio)
	return nil
}

// gather reads the manual file first, then the online sources.
func (a *app) gather(ctx context.Context, cfg *config.Config, opts generateOptions, logger *slog.Logger) ([]news.Item, error) {
	var items []news.Item

	if opts.headlinesFile != "" {
		manual, err := news.LoadHeadlinesFile(opts.headlinesFile)
		if err != nil {
			return nil, err
		}
		items = append(items, manual...)
	}

	if opts.noFeed {
		return items, nil
	}

	clients := news.FeedClients(cfg.Feeds)
	if opts.finnhub {
		if cfg.FinnhubAPIKey == "" {
			logger.Warn("finnhub requested but FINNHUB_API_KEY is not set")
		} else {
			clients = append(clients, news.NewFinnHubClient(cfg.FinnhubAPIKey))
		}
	}

	return append(items, news.Collect(ctx, clients, 0, logger)...), nil
}
