package card

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wishmint/wishmint/pkg/pg"
)

// cardDB is the subset of pgxpool.Pool the repository needs.
type cardDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists cards in PostgreSQL.
type Repository struct {
	db cardDB
}

// NewRepository creates a card repository over the given database handle.
func NewRepository(db cardDB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new card and returns it with the server-assigned timestamp.
func (r *Repository) Insert(ctx context.Context, c Card) (Card, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO cards (id, sender_name, recipient_name, recipient_email, message, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		c.ID, c.SenderName, c.RecipientName, c.RecipientEmail, c.Message, c.ImageURL,
	).Scan(&c.CreatedAt)
	if err != nil {
		return Card{}, fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return c, nil
}

// GetByID loads a card, returning ErrNotFound when it does not exist.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Card, error) {
	var c Card
	err := r.db.QueryRow(ctx,
		`SELECT id, sender_name, recipient_name, recipient_email, message, image_url, created_at
		 FROM cards WHERE id = $1`, id,
	).Scan(&c.ID, &c.SenderName, &c.RecipientName, &c.RecipientEmail, &c.Message, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("failed to load card: %w", err)
	}
	return c, nil
}
