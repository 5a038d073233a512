package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishmint/wishmint/handler"
	"github.com/wishmint/wishmint/pkg/cardimage"
)

func postJSON(t *testing.T, h http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleSave(t *testing.T) {
	t.Parallel()

	t.Run("returns card id and share url", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())
		rec := postJSON(t, svc.Handle(), "/save/card", validSaveRequest())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Contains(t, rec.Body.String(), `"shareUrl":"https://cards.test/card/`)
	})

	t.Run("validation failure returns 400 with details", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		svc := testCardService(t, store, newFakeStorage())

		req := validSaveRequest()
		req.RecipientEmail = "not-an-email"
		req.Message = strings.Repeat("x", 1001)

		rec := postJSON(t, svc.Handle(), "/save/card", req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
		assert.Contains(t, rec.Body.String(), "recipientEmail")
		assert.Contains(t, rec.Body.String(), "message")
		assert.Zero(t, store.inserts)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())

		req := httptest.NewRequest(http.MethodPost, "/save/card", strings.NewReader("{broken"))
		rec := httptest.NewRecorder()
		svc.Handle().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores the image and returns its URL", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())
		rec := postJSON(t, svc.Handle(), "/upload", map[string]string{"imageData": pngDataURL(t)})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"url":"https://cdn.test/cards/`)
	})

	t.Run("missing image data returns 400", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())
		rec := postJSON(t, svc.Handle(), "/upload", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_IMAGE_DATA")
	})

	t.Run("non-image data URL returns 400", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())
		rec := postJSON(t, svc.Handle(), "/upload", map[string]string{"imageData": "data:text/plain;base64,aGk="})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_IMAGE_FORMAT")
	})
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"font unavailable", cardimage.ErrFontUnavailable, http.StatusInternalServerError, handler.CodeComposeFailed},
		{"qr generation failure", cardimage.ErrQRFailed, http.StatusInternalServerError, handler.CodeComposeFailed},
		{"encode failure", cardimage.ErrEncodeFailed, http.StatusInternalServerError, handler.CodeComposeFailed},
		{"decode failure", cardimage.ErrImageDecode, http.StatusBadRequest, handler.CodeInvalidImageFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var herr *handler.Error
			require.ErrorAs(t, classifyError(fmt.Errorf("composing: %w", tt.err)), &herr)
			assert.Equal(t, tt.wantStatus, herr.Status)
			assert.Equal(t, tt.wantCode, herr.Code)
		})
	}
}

func TestHandleCardPage(t *testing.T) {
	t.Parallel()

	t.Run("renders the share page", func(t *testing.T) {
		t.Parallel()

		store := newFakeStore()
		svc := testCardService(t, store, newFakeStorage())

		id := uuid.New()
		store.cards[id] = Card{
			ID:            id,
			SenderName:    "Alice",
			RecipientName: "Bob",
			Message:       "Warm wishes & hugs",
			ImageURL:      "https://cdn.test/cards/1.jpg",
		}

		req := httptest.NewRequest(http.MethodGet, "/card/"+id.String(), nil)
		rec := httptest.NewRecorder()
		svc.Handle().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "Dear Bob,")
		assert.Contains(t, rec.Body.String(), "Warm wishes &amp; hugs")
		assert.Contains(t, rec.Body.String(), "https://cards.test/card/"+id.String())
	})

	t.Run("unknown card returns 404", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())

		req := httptest.NewRequest(http.MethodGet, "/card/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		svc.Handle().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 404", func(t *testing.T) {
		t.Parallel()

		svc := testCardService(t, newFakeStore(), newFakeStorage())

		req := httptest.NewRequest(http.MethodGet, "/card/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		svc.Handle().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
