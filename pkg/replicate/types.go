package replicate

import (
	"encoding/json"
	"strings"
	"time"
)

// Status is the lifecycle state of a prediction as reported by the API.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Terminal reports whether the prediction has finished, successfully or not.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// PredictionInput is the fixed request payload shape for image-to-image
// generation models.
type PredictionInput struct {
	Prompt           string `json:"prompt"`
	InputImage       string `json:"input_image"`
	AspectRatio      string `json:"aspect_ratio"`
	OutputFormat     string `json:"output_format"`
	SafetyTolerance  int    `json:"safety_tolerance"`
	PromptUpsampling bool   `json:"prompt_upsampling"`
}

// Prediction is the job descriptor returned by the create and status
// endpoints. Output stays raw because models return either a single URL
// string or an array of URLs.
type Prediction struct {
	ID     string          `json:"id"`
	Status Status          `json:"status"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// ErrorMessage flattens the provider's error field, which may be a plain
// string or a structured object.
func (p *Prediction) ErrorMessage() string {
	if len(p.Error) == 0 || string(p.Error) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(p.Error, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(p.Error))
}

// FirstOutput extracts the generated image URL. If the model produced a
// sequence, the first element is taken.
func (p *Prediction) FirstOutput() (string, error) {
	if len(p.Output) == 0 || string(p.Output) == "null" {
		return "", ErrEmptyOutput
	}

	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		if single == "" {
			return "", ErrEmptyOutput
		}
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(p.Output, &many); err == nil {
		if len(many) == 0 || many[0] == "" {
			return "", ErrEmptyOutput
		}
		return many[0], nil
	}

	return "", ErrInvalidResponse
}

// Config holds provider client configuration.
type Config struct {
	APIToken        string        `env:"REPLICATE_API_TOKEN"`
	BaseURL         string        `env:"REPLICATE_BASE_URL" envDefault:"https://api.replicate.com/v1"`
	Model           string        `env:"REPLICATE_MODEL" envDefault:"black-forest-labs/flux-kontext-pro"`
	PollInterval    time.Duration `env:"REPLICATE_POLL_INTERVAL" envDefault:"2s"`
	MaxPollAttempts int           `env:"REPLICATE_MAX_POLL_ATTEMPTS" envDefault:"60"`
}
