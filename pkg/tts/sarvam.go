package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tanzim5/News/pkg/bulletin"
)

const (
	DefaultEndpoint     = "https://api.sarvam.ai/text-to-speech"
	DefaultModel        = "bulbul:v2"
	DefaultLanguageCode = "bn-IN"
	DefaultSpeaker      = "Aayan"
	DefaultSampleRate   = 22050

	requestTimeout = 90 * time.Second
	// cap on how much of an error body ends up in RequestError.Message
	maxErrorBody = 2048
)

type Config struct {
	APIKey       string
	Endpoint     string
	Model        string
	LanguageCode string
	Speaker      string
	SampleRate   int
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:       apiKey,
		Endpoint:     DefaultEndpoint,
		Model:        DefaultModel,
		LanguageCode: DefaultLanguageCode,
		Speaker:      DefaultSpeaker,
		SampleRate:   DefaultSampleRate,
	}
}

// withDefaults fills every empty field except the API key.
func (c Config) withDefaults() Config {
	d := DefaultConfig(c.APIKey)
	if c.Endpoint != "" {
		d.Endpoint = c.Endpoint
	}
	if c.Model != "" {
		d.Model = c.Model
	}
	if c.LanguageCode != "" {
		d.LanguageCode = c.LanguageCode
	}
	if c.Speaker != "" {
		d.Speaker = c.Speaker
	}
	if c.SampleRate > 0 {
		d.SampleRate = c.SampleRate
	}
	return d
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return &bulletin.ConfigurationError{Field: "sarvam_api_key", Reason: "is required for audio generation"}
	}
	return nil
}

// RequestError is returned when the speech service rejects a request or
// cannot be reached. StatusCode is 0 for network failures.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("sarvam tts network error: %v", e.Err)
	}
	return fmt.Sprintf("sarvam tts http error %d: %s", e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Synthesizer turns a script into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Client talks to the Sarvam Bulbul text-to-speech API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

type synthesizeRequest struct {
	Inputs              []string `json:"inputs"`
	TargetLanguageCode  string   `json:"target_language_code"`
	Speaker             string   `json:"speaker"`
	Model               string   `json:"model"`
	SpeechSampleRate    int      `json:"speech_sample_rate"`
	EnablePreprocessing bool     `json:"enable_preprocessing"`
}

type synthesizeResponse struct {
	Audios []string `json:"audios"`
	Audio  string   `json:"audio"`
}

// Synthesize posts text to the service and returns the audio. The service
// either answers with audio bytes directly or with JSON carrying base64
// audio in "audios" or "audio".
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{
		Inputs:              []string{text},
		TargetLanguageCode:  c.cfg.LanguageCode,
		Speaker:             c.cfg.Speaker,
		Model:               c.cfg.Model,
		SpeechSampleRate:    c.cfg.SampleRate,
		EnablePreprocessing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sarvam encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sarvam request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-subscription-key", c.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(data)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(msg)}
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "audio") {
		return data, nil
	}

	var parsed synthesizeResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("sarvam decode: %w", err)
	}

	encoded := parsed.Audio
	if len(parsed.Audios) > 0 && parsed.Audios[0] != "" {
		encoded = parsed.Audios[0]
	}
	if encoded == "" {
		return nil, fmt.Errorf("sarvam response missing audio field")
	}

	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("sarvam audio decode: %w", err)
	}
	return audio, nil
}

// SynthesizeToFile writes the synthesized audio to path.
func SynthesizeToFile(ctx context.Context, s Synthesizer, text, path string) error {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}
