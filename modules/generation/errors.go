package generation

import "errors"

var (
	// ErrQuotaExceeded indicates the client address used up its generation
	// allowance for the current window.
	ErrQuotaExceeded = errors.New("generation quota exceeded")

	// ErrQuotaUnavailable indicates the quota could not be verified. Requests
	// are rejected rather than allowed through unchecked.
	ErrQuotaUnavailable = errors.New("quota check unavailable")

	// ErrMissingImage indicates the request carried no image file.
	ErrMissingImage = errors.New("image file is required")

	// ErrInvalidImageFormat indicates the uploaded file is not a supported image.
	ErrInvalidImageFormat = errors.New("unsupported image format")

	// ErrUploadFailed indicates the source photo could not be stored.
	ErrUploadFailed = errors.New("failed to store uploaded image")
)
