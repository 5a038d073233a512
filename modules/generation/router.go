package generation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wishmint/wishmint/handler"
	"github.com/wishmint/wishmint/pkg/clientip"
	"github.com/wishmint/wishmint/pkg/replicate"
)

// Register mounts the module's endpoints on the given router.
func (s *Service) Register(r chi.Router) {
	r.Post("/generate", s.handleGenerate)
}

// Handle returns a standalone router with the module's endpoints.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		handler.Fail(w, classifyError(fmt.Errorf("%w: %w", ErrMissingImage, err)))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handler.Fail(w, classifyError(fmt.Errorf("%w: %w", ErrMissingImage, err)))
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		handler.Fail(w, classifyError(ErrInvalidImageFormat))
		return
	}

	result, err := s.Generate(r.Context(), clientip.GetIPFromContext(r.Context()), data, contentType)
	if err != nil {
		handler.Fail(w, classifyError(err))
		return
	}

	handler.Success(w, "image generated", result)
}

// classifyError maps pipeline errors onto API errors: quota exhaustion is a
// 429, provider failures are 502s, and everything else stays a 500. A failed
// quota lookup gets the same 429 as an exhausted one: the address is treated
// as at its limit whenever the count cannot be verified.
func classifyError(err error) error {
	switch {
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrQuotaUnavailable):
		return handler.NewError(http.StatusTooManyRequests, handler.CodeRateLimitExceeded,
			"daily generation limit reached, try again later").WithCause(err)
	case errors.Is(err, ErrMissingImage):
		return handler.NewError(http.StatusBadRequest, handler.CodeMissingImage,
			"image file is required").WithCause(err)
	case errors.Is(err, ErrInvalidImageFormat):
		return handler.NewError(http.StatusBadRequest, handler.CodeInvalidImageFormat,
			"uploaded file is not an image").WithCause(err)
	case errors.Is(err, ErrUploadFailed):
		return handler.NewError(http.StatusInternalServerError, handler.CodeUploadFailed,
			"failed to store uploaded image").WithCause(err)
	case errors.Is(err, replicate.ErrMissingAPIToken), errors.Is(err, replicate.ErrInvalidConfig):
		return handler.NewError(http.StatusInternalServerError, handler.CodeMissingAPIToken,
			"image provider is not configured").WithCause(err)
	case errors.Is(err, replicate.ErrCreateFailed):
		return handler.NewError(http.StatusBadGateway, handler.CodeProviderRejected,
			"image provider rejected the request").WithCause(err)
	case errors.Is(err, replicate.ErrWaitTimeout):
		return handler.NewError(http.StatusBadGateway, handler.CodeGenerationTimeout,
			"image generation timed out").WithCause(err)
	case errors.Is(err, replicate.ErrEmptyOutput):
		return handler.NewError(http.StatusBadGateway, handler.CodeGenerationEmpty,
			"image provider returned no result").WithCause(err)
	case errors.Is(err, replicate.ErrPredictionFailed),
		errors.Is(err, replicate.ErrInvalidResponse),
		errors.Is(err, replicate.ErrRequestFailed):
		return handler.NewError(http.StatusBadGateway, handler.CodeProviderBadResponse,
			"image provider failed").WithCause(err)
	}
	return err
}
