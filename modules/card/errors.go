package card

import "errors"

var (
	// ErrNotFound indicates no card exists under the requested ID.
	ErrNotFound = errors.New("card not found")

	// ErrInvalidDataURL indicates the upload payload is not a valid
	// base64 image data URL.
	ErrInvalidDataURL = errors.New("invalid image data URL")

	// ErrStoreFailed indicates the card could not be persisted.
	ErrStoreFailed = errors.New("failed to store card")
)
