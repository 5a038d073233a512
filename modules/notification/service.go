package notification

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/wishmint/wishmint/pkg/email"
	"github.com/wishmint/wishmint/pkg/logger"
	"github.com/wishmint/wishmint/pkg/validate"
)

//go:embed templates/card_email.html
var emailFS embed.FS

var emailTmpl = template.Must(template.ParseFS(emailFS, "templates/card_email.html"))

// SendRequest is the payload for emailing a card link to its recipient.
type SendRequest struct {
	SenderName     string `json:"senderName" validate:"required,min=1,max=50"`
	RecipientName  string `json:"recipientName" validate:"required,min=1,max=50"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	Message        string `json:"message" validate:"required,min=1,max=1000"`
	ImageURL       string `json:"imageUrl" validate:"required,url"`
	CardURL        string `json:"cardUrl" validate:"required,url"`
}

// SendResponse reports the provider-assigned message ID.
type SendResponse struct {
	MessageID string `json:"messageId"`
}

// Service renders and sends card notification emails.
type Service struct {
	sender    email.EmailSender
	validator *validate.Validator
	log       *slog.Logger
}

// NewService wires the notification module.
func NewService(sender email.EmailSender, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		sender:    sender,
		validator: validate.New(),
		log:       log.With(logger.Component("notification")),
	}
}

type emailData struct {
	SenderName    string
	RecipientName string
	Message       string
	ImageURL      string
	CardURL       string
}

// Send validates the request, renders the email body and dispatches it.
func (s *Service) Send(ctx context.Context, req SendRequest) (SendResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return SendResponse{}, err
	}

	var body bytes.Buffer
	err := emailTmpl.Execute(&body, emailData{
		SenderName:    strings.TrimSpace(req.SenderName),
		RecipientName: strings.TrimSpace(req.RecipientName),
		Message:       strings.TrimSpace(req.Message),
		ImageURL:      req.ImageURL,
		CardURL:       req.CardURL,
	})
	if err != nil {
		return SendResponse{}, fmt.Errorf("failed to render card email: %w", err)
	}

	messageID, err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   req.RecipientEmail,
		Subject:  fmt.Sprintf("%s sent you a greeting card", strings.TrimSpace(req.SenderName)),
		BodyHTML: body.String(),
		Tag:      "card-notification",
	})
	if err != nil {
		s.log.ErrorContext(ctx, "card email dispatch failed", logger.Error(err))
		return SendResponse{}, err
	}

	s.log.InfoContext(ctx, "card email sent", slog.String("message_id", messageID))
	return SendResponse{MessageID: messageID}, nil
}
