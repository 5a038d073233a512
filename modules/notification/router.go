package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wishmint/wishmint/handler"
	"github.com/wishmint/wishmint/pkg/email"
	"github.com/wishmint/wishmint/pkg/validate"
)

// Register mounts the module's endpoints on the given router.
func (s *Service) Register(r chi.Router) {
	r.Post("/send/email", s.handleSend)
}

// Handle returns a standalone router with the module's endpoints.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func (s *Service) handleSend(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		handler.Fail(w, handler.NewError(http.StatusBadRequest, handler.CodeValidationFailed, "invalid request body").WithCause(err))
		return
	}

	resp, err := s.Send(r.Context(), req)
	if err != nil {
		handler.Fail(w, classifyError(err))
		return
	}

	handler.Success(w, "email sent", resp)
}

func classifyError(err error) error {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		return handler.NewValidationError(verrs)
	case errors.Is(err, email.ErrInvalidParams):
		return handler.NewError(http.StatusBadRequest, handler.CodeValidationFailed, "invalid email parameters").WithCause(err)
	case errors.Is(err, email.ErrFailedToSendEmail):
		return handler.NewError(http.StatusInternalServerError, handler.CodeEmailSendFailed, "failed to send card email").WithCause(err)
	}
	return err
}
