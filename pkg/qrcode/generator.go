package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when the content string is empty or whitespace only.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrGenerateFailed is returned when QR code generation fails.
	ErrGenerateFailed = errors.New("failed to generate QR code")
)

// defaultSize is the size in pixels used when no size is specified.
const defaultSize = 256

// Generate creates a QR code PNG for the given content. A non-positive size
// falls back to the default.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrGenerateFailed, err)
	}
	return png, nil
}

// GenerateDataURI creates a QR code and returns it as a base64 data URI,
// ready to drop into an <img> src attribute.
func GenerateDataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
