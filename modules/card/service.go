package card

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wishmint/wishmint/pkg/blob"
	"github.com/wishmint/wishmint/pkg/cardimage"
	"github.com/wishmint/wishmint/pkg/logger"
	"github.com/wishmint/wishmint/pkg/validate"
)

// Config holds card module settings.
type Config struct {
	// BaseURL is the public origin used to build shareable card links.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// MaxUploadBytes caps accepted image payloads.
	MaxUploadBytes int64 `env:"CARD_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Store is the persistence surface the service depends on.
type Store interface {
	Insert(ctx context.Context, c Card) (Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (Card, error)
}

// Service validates, composes and persists greeting cards.
type Service struct {
	cfg        Config
	store      Store
	storage    blob.Storage
	compositor *cardimage.Compositor
	validator  *validate.Validator
	log        *slog.Logger
}

// NewService wires the card module.
func NewService(cfg Config, store Store, storage blob.Storage, compositor *cardimage.Compositor, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cfg:        cfg,
		store:      store,
		storage:    storage,
		compositor: compositor,
		validator:  validate.New(),
		log:        log.With(logger.Component("card")),
	}
}

// Save validates the request and persists the card. Validation runs before
// any store write so an invalid payload never touches the database.
func (s *Service) Save(ctx context.Context, req SaveRequest) (SaveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return SaveResponse{}, err
	}

	saved, err := s.store.Insert(ctx, Card{
		ID:             uuid.New(),
		SenderName:     strings.TrimSpace(req.SenderName),
		RecipientName:  strings.TrimSpace(req.RecipientName),
		RecipientEmail: strings.TrimSpace(req.RecipientEmail),
		Message:        strings.TrimSpace(req.Message),
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return SaveResponse{}, err
	}

	s.log.InfoContext(ctx, "card saved", logger.CardID(saved.ID.String()))

	return SaveResponse{CardID: saved.ID, ShareURL: s.ShareURL(saved.ID)}, nil
}

// Get loads a card by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Card, error) {
	return s.store.GetByID(ctx, id)
}

// ShareURL builds the public link for a card.
func (s *Service) ShareURL(id uuid.UUID) string {
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/card/" + id.String()
}

// UploadDataURL decodes a base64 image data URL, stores the image and
// returns its public URL.
func (s *Service) UploadDataURL(ctx context.Context, dataURL string) (string, error) {
	contentType, data, err := parseDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := blob.NewKey("cards", contentType)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return s.storage.URL(key), nil
}

// ComposeAndStore renders the final card image from the source photo and
// text, stores the JPEG and returns its public URL.
func (s *Service) ComposeAndStore(ctx context.Context, source []byte, text cardimage.Text) (string, error) {
	img, err := cardimage.Decode(bytes.NewReader(source))
	if err != nil {
		return "", err
	}

	composed, err := s.compositor.ComposeJPEG(img, text)
	if err != nil {
		return "", err
	}

	key := blob.NewKey("cards", "image/jpeg")
	if err := s.storage.Upload(ctx, key, composed, "image/jpeg"); err != nil {
		return "", fmt.Errorf("failed to store composed card: %w", err)
	}
	return s.storage.URL(key), nil
}

// parseDataURL splits a "data:image/<fmt>;base64,<payload>" string into its
// content type and decoded bytes.
func parseDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	contentType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" || !strings.HasPrefix(contentType, "image/") {
		return "", nil, ErrInvalidDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	if len(data) == 0 {
		return "", nil, ErrInvalidDataURL
	}
	return contentType, data, nil
}
