package blob

import "errors"

var (
	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	// Upload errors
	ErrEmptyKey     = errors.New("object key is empty")
	ErrInvalidKey   = errors.New("invalid object key") // Rejects path traversal
	ErrEmptyObject  = errors.New("object data is empty")
	ErrObjectExists = errors.New("object already exists")
	ErrUploadFailed = errors.New("failed to upload object")

	// S3 error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)
