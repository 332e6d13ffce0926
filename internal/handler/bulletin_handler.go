package handler

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tanzim5/News/internal/ui"
	"github.com/tanzim5/News/pkg/bulletin"
	"github.com/tanzim5/News/pkg/news"
	"github.com/tanzim5/News/pkg/tts"
)

var audioNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.wav$`)

type SynthesizerFactory func(cfg tts.Config) (tts.Synthesizer, error)

func newSarvamSynthesizer(cfg tts.Config) (tts.Synthesizer, error) {
	return tts.NewClient(cfg)
}

type BulletinHandler struct {
	window         bulletin.Window
	ttsConfig      tts.Config
	outputDir      string
	options        []bulletin.Option
	newSynthesizer SynthesizerFactory
	assets         fs.FS
}

// NewBulletinHandler serves bulletins composed with the given defaults.
// ttsConfig supplies voice settings and a fallback API key for requests
// that do not carry one.
func NewBulletinHandler(window bulletin.Window, ttsConfig tts.Config, outputDir string, opts ...bulletin.Option) *BulletinHandler {
	return &BulletinHandler{
		window:         window,
		ttsConfig:      ttsConfig,
		outputDir:      outputDir,
		options:        opts,
		newSynthesizer: newSarvamSynthesizer,
		assets:         ui.Files(),
	}
}

func (h *BulletinHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	if strings.TrimSpace(req.Headlines) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Headlines are required."})
		return
	}

	strategy, err := bulletin.ParseStrategy(req.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ttsConfig := h.ttsConfig
	if key := strings.TrimSpace(req.SarvamAPIKey); key != "" {
		ttsConfig.APIKey = key
	}
	if req.GenerateAudio && strings.TrimSpace(ttsConfig.APIKey) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Sarvam API key required for audio generation."})
		return
	}

	items, err := news.LoadHeadlines(strings.NewReader(req.Headlines))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	policy := bulletin.PolicySoftFail
	if req.Strict {
		policy = bulletin.PolicyHardFail
	}
	opts := append([]bulletin.Option{}, h.options...)
	opts = append(opts, bulletin.WithPolicy(policy), bulletin.WithStrategy(strategy))

	res, err := bulletin.NewComposer(opts...).Compose(c.Request.Context(), news.Titles(items), h.requestWindow(req))
	if err != nil {
		status, msg := composeErrorStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("error composing bulletin", "error", err)
		}
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	out := GenerateResponse{
		Script:          res.Script,
		DurationSeconds: res.EstimatedSeconds,
		DurationMinutes: res.EstimatedMinutes(),
		HeadlinesUsed:   res.HeadlineCount,
		BelowTarget:     res.BelowTarget,
		AboveTarget:     res.AboveTarget,
		Warnings:        res.Warnings,
		Message:         "Script generated successfully.",
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}

	if req.GenerateAudio {
		name, err := h.synthesize(c, ttsConfig, res.Script)
		if err != nil {
			slog.Error("error generating audio", "error", err)
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: fmt.Sprintf("TTS generation failed: %v", err)})
			return
		}
		out.AudioURL = "/audio/" + name
		out.Message = "Script and audio generated successfully."
	}

	c.JSON(http.StatusOK, out)
}

func (h *BulletinHandler) synthesize(c *gin.Context, cfg tts.Config, script string) (string, error) {
	synth, err := h.newSynthesizer(cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(h.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("headlines_%s.wav", strings.ReplaceAll(uuid.NewString(), "-", ""))
	if err := tts.SynthesizeToFile(c.Request.Context(), synth, script, filepath.Join(h.outputDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

func (h *BulletinHandler) requestWindow(req GenerateRequest) bulletin.Window {
	w := h.window
	if req.MinHeadlines != nil {
		w.MinHeadlines = *req.MinHeadlines
	}
	if req.MaxHeadlines != nil {
		w.MaxHeadlines = *req.MaxHeadlines
	}
	if req.TargetSecondsMin != nil {
		w.TargetSecondsMin = *req.TargetSecondsMin
	}
	if req.TargetSecondsMax != nil {
		w.TargetSecondsMax = *req.TargetSecondsMax
	}
	return w
}

func composeErrorStatus(err error) (int, string) {
	var (
		cfgErr       *bulletin.ConfigurationError
		insufficient *bulletin.InsufficientHeadlinesError
		unreachable  *bulletin.WindowUnreachableError
	)
	switch {
	case errors.Is(err, bulletin.ErrEmptyInput):
		return http.StatusBadRequest, "No valid headlines found."
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, cfgErr.Error()
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity, insufficient.Error()
	case errors.As(err, &unreachable):
		return http.StatusUnprocessableEntity, unreachable.Error()
	default:
		return http.StatusInternalServerError, "Bulletin generation failed."
	}
}

func (h *BulletinHandler) GetAudio(c *gin.Context) {
	name := c.Param("name")
	if !audioNamePattern.MatchString(name) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid audio name."})
		return
	}

	path := filepath.Join(h.outputDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Audio not found."})
		return
	}

	c.Header("Content-Type", "audio/wav")
	c.File(path)
}

func (h *BulletinHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

func (h *BulletinHandler) GetIndex(c *gin.Context) {
	h.serveAsset(c, "index.html", "text/html; charset=utf-8")
}

func (h *BulletinHandler) GetStyles(c *gin.Context) {
	h.serveAsset(c, "styles.css", "text/css; charset=utf-8")
}

func (h *BulletinHandler) GetScript(c *gin.Context) {
	h.serveAsset(c, "app.js", "application/javascript; charset=utf-8")
}

func (h *BulletinHandler) serveAsset(c *gin.Context, name, contentType string) {
	data, err := fs.ReadFile(h.assets, name)
	if err != nil {
		slog.Error("error reading ui asset", "name", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
