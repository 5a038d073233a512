package blob

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage abstracts the object store holding uploaded originals and composed
// card images.
type Storage interface {
	// Upload stores data under key with the given content type. Overwriting
	// an existing object is an error (ErrObjectExists).
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) bool
	// Delete removes an object, used to clean up a stored original when a
	// later pipeline step fails.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for an object key.
	URL(key string) string
}

// extByContentType maps the accepted image MIME types to object key
// extensions. Anything unrecognized falls back to jpg, matching how the
// provider treats unknown inputs.
var extByContentType = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Extension returns the object key extension for an image content type,
// defaulting to "jpg".
func Extension(contentType string) string {
	if ext, ok := extByContentType[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return ext
	}
	return "jpg"
}

// NewKey builds a collision-resistant object key: an optional directory
// prefix, the creation timestamp in milliseconds, a random suffix and an
// extension derived from the content type. Combined with the store's
// no-overwrite semantics, a key collision surfaces as an upload error rather
// than silent data loss.
func NewKey(prefix, contentType string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	key := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), suffix, Extension(contentType))
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, "/") + "/" + key
}
