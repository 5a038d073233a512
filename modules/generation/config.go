package generation

import "time"

// Config controls the image generation pipeline.
type Config struct {
	// RateLimit is the number of generations allowed per client address
	// within RateWindow.
	RateLimit  int           `env:"GENERATION_RATE_LIMIT" envDefault:"5"`
	RateWindow time.Duration `env:"GENERATION_RATE_WINDOW" envDefault:"24h"`

	// MockAI short-circuits the provider call and returns MockImageURL,
	// used for local development without burning provider credits.
	MockAI       bool   `env:"MOCK_AI" envDefault:"false"`
	MockImageURL string `env:"MOCK_IMAGE_URL" envDefault:"https://placehold.co/900x600.jpg"`

	// MaxUploadBytes caps the accepted photo size.
	MaxUploadBytes int64 `env:"GENERATION_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}
