// File: internal/usecase/contact_uc.go
package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/ports/adapter"
	"social-growth-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ ContactUseCase = (*contactUC)(nil)

type ContactUseCase interface {
	// Relay forwards a contact-form message to the support inbox.
	// Opted-out senders are refused.
	Relay(ctx context.Context, name, email, message string) error
}

type contactUC struct {
	unsubscribes repository.UnsubscribeRepository
	mailer       adapter.Mailer
	log          *zerolog.Logger
}

func NewContactUseCase(
	unsubscribes repository.UnsubscribeRepository,
	mailer adapter.Mailer,
	logger *zerolog.Logger,
) *contactUC {
	return &contactUC{unsubscribes: unsubscribes, mailer: mailer, log: logger}
}

func (u *contactUC) Relay(ctx context.Context, name, email, message string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || message == "" {
		return domain.ErrValidation
	}

	optedOut, err := u.unsubscribes.Exists(ctx, email)
	if err != nil {
		return err
	}
	if optedOut {
		return domain.ErrUnauthorized
	}

	return u.mailer.SendContact(ctx, name, email, message)
}
