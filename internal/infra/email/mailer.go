package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain/ports/adapter"
)

//go:embed templates
var templatesFS embed.FS

var _ adapter.Mailer = (*Mailer)(nil)

// Mailer renders embedded per-locale templates and sends them through
// the transactional email API.
type Mailer struct {
	sender    *Client
	cfg       config.EmailConfig
	templates *template.Template
}

func NewMailer(sender *Client, cfg config.EmailConfig) (*Mailer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Mailer{sender: sender, cfg: cfg, templates: t}, nil
}

func (m *Mailer) from() string {
	return fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail)
}

// SendCredentials emails a generated password, picking the locale's
// template and falling back to English.
func (m *Mailer) SendCredentials(ctx context.Context, name, email, password, locale string) error {
	name = strings.TrimSpace(name)
	tmplName := "credentials_" + strings.ToLower(locale) + ".html"
	if m.templates.Lookup(tmplName) == nil {
		tmplName = "credentials_en.html"
	}

	var body bytes.Buffer
	data := map[string]string{"Name": name, "Email": email, "Password": password}
	if err := m.templates.ExecuteTemplate(&body, tmplName, data); err != nil {
		return fmt.Errorf("render credentials template: %w", err)
	}
	return m.sender.Send(ctx, m.from(), email, m.cfg.Subject, body.String())
}

// SendContact relays a contact-form message to the support inbox.
func (m *Mailer) SendContact(ctx context.Context, name, email, message string) error {
	var body bytes.Buffer
	data := map[string]string{"Name": name, "Email": email, "Message": message}
	if err := m.templates.ExecuteTemplate(&body, "contact.html", data); err != nil {
		return fmt.Errorf("render contact template: %w", err)
	}
	subject := fmt.Sprintf("Contact form: %s", name)
	return m.sender.Send(ctx, m.from(), m.cfg.ContactTo, subject, body.String())
}
