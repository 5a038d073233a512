package card

import (
	"time"

	"github.com/google/uuid"
)

// Card is a saved greeting card.
type Card struct {
	ID             uuid.UUID `json:"id"`
	SenderName     string    `json:"senderName"`
	RecipientName  string    `json:"recipientName"`
	RecipientEmail string    `json:"recipientEmail,omitempty"`
	Message        string    `json:"message"`
	ImageURL       string    `json:"imageUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SaveRequest is the payload for saving a card.
type SaveRequest struct {
	SenderName     string `json:"senderName" validate:"required,min=1,max=50"`
	RecipientName  string `json:"recipientName" validate:"required,min=1,max=50"`
	RecipientEmail string `json:"recipientEmail" validate:"omitempty,email"`
	Message        string `json:"message" validate:"required,min=1,max=1000"`
	ImageURL       string `json:"imageUrl" validate:"required,url"`
}

// SaveResponse carries the identifiers returned after a save.
type SaveResponse struct {
	CardID   uuid.UUID `json:"cardId"`
	ShareURL string    `json:"shareUrl"`
}

// UploadResponse carries the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}
