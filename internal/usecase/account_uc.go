// File: internal/usecase/account_uc.go
package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/rs/zerolog"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
	"social-growth-backend/internal/domain/ports/adapter"
	"social-growth-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ AccountUseCase = (*accountUC)(nil)

type AccountUseCase interface {
	// CreateOrRefresh provisions the customer account for an email. A
	// repeat signup regenerates the password and re-emails it; a new
	// email inserts a fresh customer. Returns the customer id.
	CreateOrRefresh(ctx context.Context, name, email, locale string) (int64, error)
	// Login validates credentials and returns the customer.
	Login(ctx context.Context, email, password string) (*model.Customer, error)
	// RecoverPassword re-sends the stored credentials to the account
	// email, unless the address opted out.
	RecoverPassword(ctx context.Context, email, locale string) error
	// Unsubscribe appends the email to the opt-out list. A repeat
	// request is a success no-op.
	Unsubscribe(ctx context.Context, email string) error
}

type accountUC struct {
	customers    repository.CustomerRepository
	unsubscribes repository.UnsubscribeRepository
	mailer       adapter.Mailer
	log          *zerolog.Logger
}

func NewAccountUseCase(
	customers repository.CustomerRepository,
	unsubscribes repository.UnsubscribeRepository,
	mailer adapter.Mailer,
	logger *zerolog.Logger,
) *accountUC {
	return &accountUC{customers: customers, unsubscribes: unsubscribes, mailer: mailer, log: logger}
}

const passwordLength = 12
const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword() (string, error) {
	out := make([]byte, passwordLength)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordChars[n.Int64()]
	}
	return string(out), nil
}

func (u *accountUC) CreateOrRefresh(ctx context.Context, name, email, locale string) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, domain.ErrValidation
	}

	password, err := generatePassword()
	if err != nil {
		return 0, err
	}

	existing, err := u.customers.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := u.customers.UpdatePassword(ctx, existing.ID, password); err != nil {
			return 0, err
		}
		u.sendCredentials(ctx, name, email, password, locale)
		return existing.ID, nil
	case err == domain.ErrNotFound:
		id, err := u.customers.Insert(ctx, &model.Customer{Name: name, Email: email, Password: password})
		if err != nil {
			return 0, err
		}
		u.sendCredentials(ctx, name, email, password, locale)
		return id, nil
	default:
		return 0, err
	}
}

// sendCredentials is fire-and-forget: delivery failure must not fail the
// purchase that triggered it.
func (u *accountUC) sendCredentials(ctx context.Context, name, email, password, locale string) {
	if err := u.mailer.SendCredentials(ctx, name, email, password, locale); err != nil {
		u.log.Error().Err(err).Str("email", email).Msg("credentials email failed")
	}
}

func (u *accountUC) Login(ctx context.Context, email, password string) (*model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	c, err := u.customers.FindByEmail(ctx, email)
	if err == domain.ErrNotFound {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if c.Password != password {
		return nil, domain.ErrInvalidCredentials
	}
	return c, nil
}

func (u *accountUC) RecoverPassword(ctx context.Context, email, locale string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.ErrValidation
	}

	optedOut, err := u.unsubscribes.Exists(ctx, email)
	if err != nil {
		return err
	}
	if optedOut {
		// Opted-out addresses are indistinguishable from unknown ones.
		return domain.ErrNotFound
	}

	c, err := u.customers.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := u.mailer.SendCredentials(ctx, c.Name, c.Email, c.Password, locale); err != nil {
		return err
	}
	return nil
}

func (u *accountUC) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.ErrValidation
	}
	exists, err := u.unsubscribes.Exists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return u.unsubscribes.Insert(ctx, email)
}
