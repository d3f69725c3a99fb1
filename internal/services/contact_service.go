package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"portfolio.dev/internal/log"
	"portfolio.dev/internal/models"
	"portfolio.dev/internal/store"
	"portfolio.dev/internal/upstream"
	"portfolio.dev/internal/validation"
)

// Relay is the form-to-email service
type Relay interface {
	Configured() bool
	Send(ctx context.Context, msg upstream.RelayMessage) (*upstream.RelayReply, error)
}

// SubmissionLog records contact attempts
type SubmissionLog interface {
	HashIP(ip string) string
	Record(ctx context.Context, s store.Submission) (int64, error)
}

// SuccessMessage is shown after a message is relayed
const SuccessMessage = "Thank you for your message! I'll get back to you soon."

// ContactService validates contact submissions and forwards them to the relay
type ContactService struct {
	relay    Relay
	log      SubmissionLog
	siteName string
}

// NewContactService creates a ContactService. submissions may be nil.
func NewContactService(relay Relay, submissions SubmissionLog, siteName string) *ContactService {
	return &ContactService{relay: relay, log: submissions, siteName: siteName}
}

// Submit validates d and relays it. remoteIP is only stored hashed.
func (s *ContactService) Submit(ctx context.Context, d models.ContactFormData, remoteIP string) error {
	logger := log.FromContext(ctx, "contact")

	d = validation.Normalize(d)
	if res := validation.ValidateContact(d); !res.Valid {
		return &APIError{Status: http.StatusBadRequest, Message: "Validation failed", Fields: res.Errors}
	}
	if !s.relay.Configured() {
		return &APIError{Status: http.StatusInternalServerError, Message: "Contact form is not configured", Err: upstream.ErrNotConfigured}
	}

	subject := d.Subject
	if subject == "" {
		subject = fmt.Sprintf("New message from %s", d.Name)
	}
	_, sendErr := s.relay.Send(ctx, upstream.RelayMessage{
		Name:     d.Name,
		Email:    d.Email,
		Subject:  subject,
		Message:  d.Message,
		FromName: s.siteName,
		ReplyTo:  d.Email,
	})

	if s.log != nil {
		sub := store.Submission{
			Name:      d.Name,
			Email:     d.Email,
			Subject:   subject,
			HashedIP:  s.log.HashIP(remoteIP),
			Delivered: sendErr == nil,
		}
		if sendErr != nil {
			sub.Error = sendErr.Error()
		}
		if _, err := s.log.Record(ctx, sub); err != nil {
			logger.Error().Err(err).Msg("failed to record contact submission")
		}
	}

	if sendErr != nil {
		logger.Error().Err(sendErr).Msg("contact relay failed")
		if errors.Is(sendErr, upstream.ErrNotConfigured) {
			return &APIError{Status: http.StatusInternalServerError, Message: "Contact form is not configured", Err: sendErr}
		}
		return &APIError{Status: http.StatusBadGateway, Message: "Failed to send message", Err: sendErr}
	}

	logger.Info().Msg("contact message relayed")
	return nil
}
