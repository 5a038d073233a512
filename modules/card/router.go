package card

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wishmint/wishmint/handler"
	"github.com/wishmint/wishmint/pkg/cardimage"
	"github.com/wishmint/wishmint/pkg/validate"
)

// Register mounts the module's endpoints on the given router.
func (s *Service) Register(r chi.Router) {
	r.Post("/save/card", s.handleSave)
	r.Post("/upload", s.handleUpload)
	r.Post("/compose", s.handleCompose)
	r.Get("/card/{cardID}", s.handleCardPage)
}

// Handle returns a standalone router with the module's endpoints.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func (s *Service) handleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		handler.Fail(w, handler.NewError(http.StatusBadRequest, handler.CodeValidationFailed, "invalid request body").WithCause(err))
		return
	}

	resp, err := s.Save(r.Context(), req)
	if err != nil {
		handler.Fail(w, classifyError(err))
		return
	}

	handler.Success(w, "card saved", resp)
}

func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageData string `json:"imageData"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		handler.Fail(w, handler.NewError(http.StatusBadRequest, handler.CodeMissingImageData, "invalid request body").WithCause(err))
		return
	}
	if req.ImageData == "" {
		handler.Fail(w, handler.NewError(http.StatusBadRequest, handler.CodeMissingImageData, "image data is required"))
		return
	}

	url, err := s.UploadDataURL(r.Context(), req.ImageData)
	if err != nil {
		handler.Fail(w, classifyError(err))
		return
	}

	handler.Success(w, "image uploaded", UploadResponse{URL: url})
}

func (s *Service) handleCompose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, _, err := r.FormFile("image")
	if err != nil {
		handler.Fail(w, handler.NewError(http.StatusBadRequest, handler.CodeMissingImage, "image file is required").WithCause(err))
		return
	}
	defer file.Close()

	source, err := io.ReadAll(file)
	if err != nil {
		handler.Fail(w, handler.NewError(http.StatusBadRequest, handler.CodeMissingImage, "could not read image file").WithCause(err))
		return
	}

	url, err := s.ComposeAndStore(r.Context(), source, cardimage.Text{
		SenderName:    r.FormValue("senderName"),
		RecipientName: r.FormValue("recipientName"),
		Message:       r.FormValue("message"),
	})
	if err != nil {
		handler.Fail(w, classifyError(err))
		return
	}

	handler.Success(w, "card composed", UploadResponse{URL: url})
}

// classifyError maps module errors onto API errors.
func classifyError(err error) error {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		return handler.NewValidationError(verrs)
	case errors.Is(err, ErrNotFound):
		return handler.NewError(http.StatusNotFound, handler.CodeCardNotFound, "card not found").WithCause(err)
	case errors.Is(err, ErrInvalidDataURL):
		return handler.NewError(http.StatusBadRequest, handler.CodeInvalidImageFormat, "image data must be a base64 image data URL").WithCause(err)
	case errors.Is(err, cardimage.ErrImageDecode):
		return handler.NewError(http.StatusBadRequest, handler.CodeInvalidImageFormat, "uploaded file is not a supported image").WithCause(err)
	case errors.Is(err, cardimage.ErrEncodeFailed),
		errors.Is(err, cardimage.ErrNilImage),
		errors.Is(err, cardimage.ErrFontUnavailable),
		errors.Is(err, cardimage.ErrQRFailed):
		return handler.NewError(http.StatusInternalServerError, handler.CodeComposeFailed, "failed to compose card image").WithCause(err)
	case errors.Is(err, ErrStoreFailed):
		return handler.NewError(http.StatusInternalServerError, handler.CodeInternalError, "could not save card").WithCause(err)
	}
	return err
}
