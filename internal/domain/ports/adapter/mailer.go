package adapter

import "context"

// Mailer sends transactional email. Delivery is fire-and-forget from the
// caller's perspective; failures are logged, never surfaced to clients.
type Mailer interface {
	// SendCredentials emails a (re)generated password using the locale's
	// template, falling back to English.
	SendCredentials(ctx context.Context, name, email, password, locale string) error
	// SendContact relays a contact-form message to the support inbox.
	SendContact(ctx context.Context, name, email, message string) error
}
