package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the JSON envelope every API endpoint returns.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries machine-readable error information inside the envelope.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes the envelope with the given status code. Encoding failures are
// silently dropped since the header has already been written.
func JSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Success writes a 200 envelope with an optional message and payload.
func Success(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail classifies err and writes the matching error envelope. A *Error keeps
// its status, code and details; anything else becomes a generic 500 so
// internal error text never leaks to clients.
func Fail(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		JSON(w, apiErr.Status, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
		return
	}

	JSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    CodeInternalError,
			Message: "internal server error",
		},
	})
}
