package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wishmint/wishmint/pkg/clientip"
	"github.com/wishmint/wishmint/pkg/replicate"
)

type fakeStorage struct {
	uploads   map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads[key] = data
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) bool {
	_, ok := s.uploads[key]
	return ok
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(s.uploads, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) URL(key string) string {
	return "https://cdn.test/" + key
}

type fakePredictor struct {
	createErr  error
	waitErr    error
	outputURL  string
	createSeen []replicate.PredictionInput
}

func (p *fakePredictor) CreatePrediction(ctx context.Context, input replicate.PredictionInput) (*replicate.Prediction, error) {
	p.createSeen = append(p.createSeen, input)
	if p.createErr != nil {
		return nil, p.createErr
	}
	return &replicate.Prediction{ID: "pred-1", Status: replicate.StatusStarting}, nil
}

func (p *fakePredictor) Wait(ctx context.Context, id string) (*replicate.Prediction, error) {
	if p.waitErr != nil {
		return nil, p.waitErr
	}
	output, _ := json.Marshal([]string{p.outputURL})
	return &replicate.Prediction{ID: id, Status: replicate.StatusSucceeded, Output: output}, nil
}

func testService(db *fakeDB, storage *fakeStorage, predictor *fakePredictor, cfg Config) *Service {
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 5
	}
	if cfg.RateWindow == 0 {
		cfg.RateWindow = 24 * time.Hour
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	return NewService(cfg, NewQuota(db, cfg.RateLimit, cfg.RateWindow), storage, predictor, nil)
}

func TestService_Generate(t *testing.T) {
	t.Parallel()

	photo := []byte("fake-jpeg-bytes")

	t.Run("full pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{count: 2}
		storage := newFakeStorage()
		predictor := &fakePredictor{outputURL: "https://cdn.provider/out.jpg"}
		svc := testService(db, storage, predictor, Config{})

		result, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.provider/out.jpg", result.ImageURL)
		assert.False(t, result.Mock)
		// 2 prior events + the one just recorded leaves 2 of 5.
		assert.Equal(t, 2, result.Remaining)
		assert.Equal(t, 1, db.inserts)

		require.Len(t, predictor.createSeen, 1)
		input := predictor.createSeen[0]
		assert.NotEmpty(t, input.Prompt)
		assert.Contains(t, input.InputImage, "https://cdn.test/inputs/")
		assert.Equal(t, "match_input_image", input.AspectRatio)
	})

	t.Run("quota exhaustion stops before any work", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{count: 5}
		storage := newFakeStorage()
		predictor := &fakePredictor{outputURL: "https://cdn.provider/out.jpg"}
		svc := testService(db, storage, predictor, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Empty(t, storage.uploads)
		assert.Empty(t, predictor.createSeen)
	})

	t.Run("quota check failure fails closed", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryErr: errors.New("db down")}
		svc := testService(db, newFakeStorage(), &fakePredictor{}, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		assert.ErrorIs(t, err, ErrQuotaUnavailable)
	})

	t.Run("mock mode skips the provider but still records the event", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{}
		storage := newFakeStorage()
		svc := testService(db, storage, nil, Config{MockAI: true, MockImageURL: "https://placehold.test/x.jpg"})

		result, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		require.NoError(t, err)

		assert.True(t, result.Mock)
		assert.Equal(t, "https://placehold.test/x.jpg", result.ImageURL)
		assert.Equal(t, 4, result.Remaining)
		assert.Equal(t, 1, db.inserts)
		assert.Empty(t, storage.uploads)
	})

	t.Run("upload failure surfaces and consumes no quota", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{}
		storage := newFakeStorage()
		storage.uploadErr = errors.New("access denied")
		svc := testService(db, storage, &fakePredictor{}, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.Zero(t, db.inserts)
	})

	t.Run("provider failure consumes no quota", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{}
		predictor := &fakePredictor{waitErr: replicate.ErrWaitTimeout}
		svc := testService(db, newFakeStorage(), predictor, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		assert.ErrorIs(t, err, replicate.ErrWaitTimeout)
		assert.Zero(t, db.inserts)
	})

	t.Run("provider failure removes the stored source photo", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		predictor := &fakePredictor{waitErr: replicate.ErrPredictionFailed}
		svc := testService(&fakeDB{}, storage, predictor, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		assert.ErrorIs(t, err, replicate.ErrPredictionFailed)
		assert.Empty(t, storage.uploads)
		assert.Len(t, storage.deleted, 1)
	})

	t.Run("rejected create removes the stored source photo", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		predictor := &fakePredictor{createErr: replicate.ErrCreateFailed}
		svc := testService(&fakeDB{}, storage, predictor, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		assert.ErrorIs(t, err, replicate.ErrCreateFailed)
		assert.Empty(t, storage.uploads)
	})

	t.Run("successful generation keeps the source photo", func(t *testing.T) {
		t.Parallel()

		storage := newFakeStorage()
		predictor := &fakePredictor{outputURL: "https://cdn.provider/out.jpg"}
		svc := testService(&fakeDB{}, storage, predictor, Config{})

		_, err := svc.Generate(context.Background(), "203.0.113.7", photo, "image/jpeg")
		require.NoError(t, err)
		assert.Len(t, storage.uploads, 1)
		assert.Empty(t, storage.deleted)
	})
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleGenerate(t *testing.T) {
	t.Parallel()

	doRequest := func(t *testing.T, svc *Service, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/generate", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(clientip.SetIPToContext(req.Context(), "203.0.113.7"))
		rec := httptest.NewRecorder()
		svc.Handle().ServeHTTP(rec, req)
		return rec
	}

	t.Run("returns the stylized image URL", func(t *testing.T) {
		t.Parallel()

		svc := testService(&fakeDB{}, newFakeStorage(), &fakePredictor{outputURL: "https://cdn.provider/out.jpg"}, Config{})
		body, contentType := multipartBody(t, "image", pngBytes(t))

		rec := doRequest(t, svc, body, contentType)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Contains(t, rec.Body.String(), "https://cdn.provider/out.jpg")
	})

	t.Run("missing image field", func(t *testing.T) {
		t.Parallel()

		svc := testService(&fakeDB{}, newFakeStorage(), &fakePredictor{}, Config{})
		body, contentType := multipartBody(t, "photo", pngBytes(t))

		rec := doRequest(t, svc, body, contentType)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_IMAGE")
	})

	t.Run("non-image upload is rejected", func(t *testing.T) {
		t.Parallel()

		svc := testService(&fakeDB{}, newFakeStorage(), &fakePredictor{}, Config{})
		body, contentType := multipartBody(t, "image", []byte("%PDF-1.4 not a picture"))

		rec := doRequest(t, svc, body, contentType)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_IMAGE_FORMAT")
	})

	t.Run("quota exhaustion maps to 429", func(t *testing.T) {
		t.Parallel()

		svc := testService(&fakeDB{count: 5}, newFakeStorage(), &fakePredictor{}, Config{})
		body, contentType := multipartBody(t, "image", pngBytes(t))

		rec := doRequest(t, svc, body, contentType)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("unverifiable quota also maps to 429", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{queryErr: errors.New("connection refused")}
		storage := newFakeStorage()
		predictor := &fakePredictor{outputURL: "https://cdn.provider/out.jpg"}
		svc := testService(db, storage, predictor, Config{})
		body, contentType := multipartBody(t, "image", pngBytes(t))

		rec := doRequest(t, svc, body, contentType)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.Empty(t, storage.uploads)
		assert.Empty(t, predictor.createSeen)
	})

	t.Run("provider timeout maps to 502", func(t *testing.T) {
		t.Parallel()

		svc := testService(&fakeDB{}, newFakeStorage(), &fakePredictor{waitErr: replicate.ErrWaitTimeout}, Config{})
		body, contentType := multipartBody(t, "image", pngBytes(t))

		rec := doRequest(t, svc, body, contentType)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "GENERATION_TIMEOUT")
	})
}
