package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/tanzim5/News/internal/config"
	"github.com/tanzim5/News/internal/logging"
	"github.com/tanzim5/News/pkg/tts"
)

const (
	exitNoHeadlines = 1
	exitMissingKey  = 2
	exitTTSFailure  = 3
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d: %s", e.code, e.msg)
}

func fail(code int, format string, args ...interface{}) error {
	return &exitError{code: code, msg: fmt.Sprintf(format, args...)}
}

// app holds what the commands write to and build at run time.
type app struct {
	stdout         io.Writer
	stderr         io.Writer
	now            func() time.Time
	newSynthesizer func(cfg tts.Config) (tts.Synthesizer, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
		newSynthesizer: func(cfg tts.Config) (tts.Synthesizer, error) {
			return tts.NewClient(cfg)
		},
	}
}

func (a *app) logger(cfg *config.Config) *slog.Logger {
	return logging.NewText(a.stderr, cfg.LogLevel)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "bulletin",
		Short:         "Compose a neutral spoken news bulletin",
		Long:          `Collects headlines, tones them down and fits them into a timed newsreader script, optionally synthesized with Sarvam text-to-speech.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")

	root.AddCommand(newGenerateCommand(a))
	root.AddCommand(newHeadlinesCommand(a))
	return root
}

// loadConfig resolves flags of cmd, the environment and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v)
}
