package handler

type GenerateRequest struct {
	Headlines        string `json:"headlines"`
	MinHeadlines     *int   `json:"min_headlines" binding:"omitempty,min=1"`
	MaxHeadlines     *int   `json:"max_headlines" binding:"omitempty,min=1"`
	TargetSecondsMin *int   `json:"target_seconds_min" binding:"omitempty,min=1"`
	TargetSecondsMax *int   `json:"target_seconds_max" binding:"omitempty,min=1"`
	Strategy         string `json:"strategy"`
	Strict           bool   `json:"strict"`
	GenerateAudio    bool   `json:"generate_audio"`
	SarvamAPIKey     string `json:"sarvam_api_key"`
}

type GenerateResponse struct {
	Script          string   `json:"script"`
	DurationSeconds float64  `json:"duration_seconds"`
	DurationMinutes float64  `json:"duration_minutes"`
	HeadlinesUsed   int      `json:"headlines_used"`
	BelowTarget     bool     `json:"below_target"`
	AboveTarget     bool     `json:"above_target"`
	Warnings        []string `json:"warnings"`
	Message         string   `json:"message"`
	AudioURL        string   `json:"audio_url,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
