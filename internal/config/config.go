// Package config resolves runtime settings from flags and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tanzim5/News/pkg/bulletin"
	"github.com/tanzim5/News/pkg/news"
	"github.com/tanzim5/News/pkg/tts"
)

// Keys double as flag names. Each key reads the environment variable listed
// in envNames.
const (
	KeyMinHeadlines     = "min-headlines"
	KeyMaxHeadlines     = "max-headlines"
	KeyTargetSecondsMin = "target-seconds-min"
	KeyTargetSecondsMax = "target-seconds-max"
	KeyStrategy         = "strategy"
	KeyStrict           = "strict"
	KeyFeeds            = "feeds"
	KeyFinnhubAPIKey    = "finnhub-api-key"
	KeySarvamAPIKey     = "sarvam-api-key"
	KeySarvamEndpoint   = "sarvam-endpoint"
	KeyModel            = "model"
	KeyLanguageCode     = "language-code"
	KeySpeaker          = "speaker"
	KeySampleRate       = "sample-rate"
	KeyNeutralizer      = "neutralizer"
	KeyOpenAIAPIKey     = "openai-api-key"
	KeyAnthropicAPIKey  = "anthropic-api-key"
	KeyLogLevel         = "log-level"
	KeyPort             = "port"
	KeyOutputDir        = "output-dir"
	KeyFrontendURL      = "frontend-url"
)

// envNames maps keys to their environment variables. Credentials and server
// settings keep their conventional names, everything else is namespaced so a
// stray MODEL or STRICT in the shell is not picked up.
var envNames = map[string]string{
	KeyMinHeadlines:     "BULLETIN_MIN_HEADLINES",
	KeyMaxHeadlines:     "BULLETIN_MAX_HEADLINES",
	KeyTargetSecondsMin: "BULLETIN_TARGET_SECONDS_MIN",
	KeyTargetSecondsMax: "BULLETIN_TARGET_SECONDS_MAX",
	KeyStrategy:         "BULLETIN_STRATEGY",
	KeyStrict:           "BULLETIN_STRICT",
	KeyFeeds:            "BULLETIN_FEEDS",
	KeyNeutralizer:      "BULLETIN_NEUTRALIZER",
	KeyOutputDir:        "BULLETIN_OUTPUT_DIR",
	KeySarvamEndpoint:   "SARVAM_ENDPOINT",
	KeyModel:            "SARVAM_MODEL",
	KeyLanguageCode:     "SARVAM_LANGUAGE_CODE",
	KeySpeaker:          "SARVAM_SPEAKER",
	KeySampleRate:       "SARVAM_SAMPLE_RATE",
	KeySarvamAPIKey:     "SARVAM_API_KEY",
	KeyFinnhubAPIKey:    "FINNHUB_API_KEY",
	KeyOpenAIAPIKey:     "OPENAI_API_KEY",
	KeyAnthropicAPIKey:  "ANTHROPIC_API_KEY",
	KeyLogLevel:         "LOG_LEVEL",
	KeyPort:             "PORT",
	KeyFrontendURL:      "FRONTEND_URL",
}

type Config struct {
	Window   bulletin.Window
	Strategy bulletin.Strategy
	Strict   bool

	Feeds         []string
	FinnhubAPIKey string

	TTS tts.Config

	Neutralizer     string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	LogLevel    string
	Port        string
	OutputDir   string
	FrontendURL string
}

// New returns a viper instance with defaults set and the environment bound.
func New() *viper.Viper {
	v := viper.New()
	for key, env := range envNames {
		_ = v.BindEnv(key, env)
	}

	v.SetDefault(KeyMinHeadlines, bulletin.DefaultMinHeadlines)
	v.SetDefault(KeyMaxHeadlines, bulletin.DefaultMaxHeadlines)
	v.SetDefault(KeyTargetSecondsMin, bulletin.DefaultTargetSecondsMin)
	v.SetDefault(KeyTargetSecondsMax, bulletin.DefaultTargetSecondsMax)
	v.SetDefault(KeyStrategy, bulletin.StrategyGreedy.String())
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyFeeds, news.DefaultFeeds)
	v.SetDefault(KeySarvamEndpoint, tts.DefaultEndpoint)
	v.SetDefault(KeyModel, tts.DefaultModel)
	v.SetDefault(KeyLanguageCode, tts.DefaultLanguageCode)
	v.SetDefault(KeySpeaker, tts.DefaultSpeaker)
	v.SetDefault(KeySampleRate, tts.DefaultSampleRate)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyOutputDir, "ui_output")
	return v
}

// BindFlags binds every flag in fs whose name is a config key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Load reads the resolved settings and validates the selection window.
func Load(v *viper.Viper) (*Config, error) {
	strategy, err := bulletin.ParseStrategy(v.GetString(KeyStrategy))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Window: bulletin.Window{
			MinHeadlines:     v.GetInt(KeyMinHeadlines),
			MaxHeadlines:     v.GetInt(KeyMaxHeadlines),
			TargetSecondsMin: v.GetInt(KeyTargetSecondsMin),
			TargetSecondsMax: v.GetInt(KeyTargetSecondsMax),
		},
		Strategy:      strategy,
		Strict:        v.GetBool(KeyStrict),
		Feeds:         splitList(v.GetStringSlice(KeyFeeds)),
		FinnhubAPIKey: v.GetString(KeyFinnhubAPIKey),
		TTS: tts.Config{
			APIKey:       strings.TrimSpace(v.GetString(KeySarvamAPIKey)),
			Endpoint:     v.GetString(KeySarvamEndpoint),
			Model:        v.GetString(KeyModel),
			LanguageCode: v.GetString(KeyLanguageCode),
			Speaker:      v.GetString(KeySpeaker),
			SampleRate:   v.GetInt(KeySampleRate),
		},
		Neutralizer:     strings.ToLower(strings.TrimSpace(v.GetString(KeyNeutralizer))),
		OpenAIAPIKey:    v.GetString(KeyOpenAIAPIKey),
		AnthropicAPIKey: v.GetString(KeyAnthropicAPIKey),
		LogLevel:        v.GetString(KeyLogLevel),
		Port:            v.GetString(KeyPort),
		OutputDir:       v.GetString(KeyOutputDir),
		FrontendURL:     v.GetString(KeyFrontendURL),
	}

	if err := cfg.Window.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList also accepts comma separated values, which is how BULLETIN_FEEDS is
// written in the environment.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Policy maps the strict setting onto a selection policy.
func (c *Config) Policy() bulletin.Policy {
	if c.Strict {
		return bulletin.PolicyHardFail
	}
	return bulletin.PolicySoftFail
}

// NeutralizerKey returns the API key for the configured neutralizer
// provider, or "" when none is configured.
func (c *Config) NeutralizerKey() string {
	switch c.Neutralizer {
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	}
	return ""
}
