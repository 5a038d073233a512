package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wishmint/wishmint/pkg/blob"
	"github.com/wishmint/wishmint/pkg/logger"
	"github.com/wishmint/wishmint/pkg/replicate"
)

// stylePrompt is the fixed instruction sent with every generation. The user
// supplies only the photo; the card style is not configurable.
const stylePrompt = "Transform this photo into a cute, warm, hand-drawn greeting card " +
	"illustration with soft pastel colors, gentle outlines and a cozy festive atmosphere. " +
	"Keep the people and composition recognizable."

// Predictor is the provider surface the service depends on.
type Predictor interface {
	CreatePrediction(ctx context.Context, input replicate.PredictionInput) (*replicate.Prediction, error)
	Wait(ctx context.Context, id string) (*replicate.Prediction, error)
}

// Result is the outcome of a generation request.
type Result struct {
	ImageURL  string `json:"imageUrl"`
	Remaining int    `json:"remainingGenerations"`
	Mock      bool   `json:"mock,omitempty"`
}

// Service orchestrates a single stylization round trip: quota check, upload
// of the source photo so the provider can fetch it, the provider call with
// polling, and the quota event recorded after success.
type Service struct {
	cfg       Config
	quota     *Quota
	storage   blob.Storage
	predictor Predictor
	log       *slog.Logger
}

// NewService wires the generation pipeline. predictor may be nil only when
// cfg.MockAI is set.
func NewService(cfg Config, quota *Quota, storage blob.Storage, predictor Predictor, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		quota:     quota,
		storage:   storage,
		predictor: predictor,
		log:       log.With(logger.Component("generation")),
	}
}

// Generate runs the stylization pipeline for a photo uploaded by the client
// at the given address.
func (s *Service) Generate(ctx context.Context, ip string, data []byte, contentType string) (Result, error) {
	if err := s.quota.Check(ctx, ip); err != nil {
		return Result{}, err
	}

	if s.cfg.MockAI {
		return s.finish(ctx, ip, s.cfg.MockImageURL, true)
	}

	key := blob.NewKey("inputs", contentType)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.log.ErrorContext(ctx, "source photo upload failed", logger.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	sourceURL := s.storage.URL(key)

	prediction, err := s.predictor.CreatePrediction(ctx, replicate.PredictionInput{
		Prompt:          stylePrompt,
		InputImage:      sourceURL,
		AspectRatio:     "match_input_image",
		OutputFormat:    "jpg",
		SafetyTolerance: 2,
	})
	if err != nil {
		s.cleanup(ctx, key)
		return Result{}, err
	}

	s.log.InfoContext(ctx, "prediction created", logger.PredictionID(prediction.ID))

	prediction, err = s.predictor.Wait(ctx, prediction.ID)
	if err != nil {
		s.cleanup(ctx, key)
		return Result{}, err
	}

	imageURL, err := prediction.FirstOutput()
	if err != nil {
		s.cleanup(ctx, key)
		return Result{}, err
	}

	return s.finish(ctx, ip, imageURL, false)
}

// cleanup removes the stored source photo after a failed generation so
// abandoned originals don't accumulate. Best effort: the photo is orphaned
// data, not a correctness problem.
func (s *Service) cleanup(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.log.WarnContext(ctx, "failed to remove source photo", logger.Error(err))
	}
}

// finish records the quota event and reports the remaining allowance. The
// event insert happens before the remaining count so the response reflects
// the generation that just completed.
func (s *Service) finish(ctx context.Context, ip, imageURL string, mock bool) (Result, error) {
	if err := s.quota.Record(ctx, ip); err != nil {
		// The image exists; losing the event only grants the client a free
		// generation, so log and continue.
		s.log.ErrorContext(ctx, "failed to record generation event", logger.Error(err))
	}

	remaining, err := s.quota.Remaining(ctx, ip)
	if err != nil {
		s.log.WarnContext(ctx, "failed to read remaining quota", logger.Error(err))
		remaining = 0
	}

	return Result{ImageURL: imageURL, Remaining: remaining, Mock: mock}, nil
}
