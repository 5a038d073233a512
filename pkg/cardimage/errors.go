package cardimage

import "errors"

var (
	// ErrNilImage indicates Compose was called without a source image.
	ErrNilImage = errors.New("source image is nil")

	// ErrImageDecode indicates the source bytes could not be decoded as an image.
	ErrImageDecode = errors.New("failed to decode source image")

	// ErrFontUnavailable indicates the embedded typefaces could not be
	// loaded, leaving the renderer unable to draw text.
	ErrFontUnavailable = errors.New("rendering fonts unavailable")

	// ErrEncodeFailed indicates JPEG export of the composed card failed.
	ErrEncodeFailed = errors.New("failed to encode composed card")

	// ErrQRFailed indicates the share-link QR badge could not be produced.
	ErrQRFailed = errors.New("failed to render share QR badge")
)
