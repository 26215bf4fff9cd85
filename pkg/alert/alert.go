// Package alert delivers operational notifications, currently the circuit
// breaker's trip/recover transitions around the reasoning client.
package alert

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/cinegraph/cinegraph/pkg/config"
)

// subjectPrefix tags every outgoing alert so recipients can filter on it.
const subjectPrefix = "[cinegraph]"

// Alerter sends a notification with a subject and body.
type Alerter interface {
	Alert(subject, message string) error
}

// EmailAlerter delivers alerts over plain SMTP.
type EmailAlerter struct {
	cfg    config.AlertConfig
	logger *slog.Logger
}

// NewEmailAlerter creates an alerter from the alert configuration. A nil
// logger falls back to the default slog logger.
func NewEmailAlerter(cfg config.AlertConfig, logger *slog.Logger) *EmailAlerter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailAlerter{cfg: cfg, logger: logger}
}

// Alert sends the message to every configured recipient. Disabled alerting is
// a silent no-op so callers never need to branch on configuration.
func (a *EmailAlerter) Alert(subject, message string) error {
	if !a.cfg.Enabled {
		return nil
	}

	auth := smtp.PlainAuth("", a.cfg.Username, a.cfg.Password, a.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", a.cfg.SMTPHost, a.cfg.SMTPPort)
	msg := composeMessage(a.cfg.From, a.cfg.To, subject, message)

	if err := smtp.SendMail(addr, auth, a.cfg.From, a.cfg.To, msg); err != nil {
		a.logger.Error("alert email delivery failed",
			"smtp_addr", addr,
			"subject", subject,
			"error", err)
		return fmt.Errorf("failed to send alert email: %w", err)
	}

	a.logger.Info("alert email sent", "subject", subject, "recipients", len(a.cfg.To))
	return nil
}

// composeMessage renders the RFC 822 payload with the cinegraph subject tag.
func composeMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s %s\r\n\r\n", subjectPrefix, subject)
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// NoOpAlerter discards alerts; used when alerting is disabled.
type NoOpAlerter struct{}

func (n *NoOpAlerter) Alert(subject, message string) error {
	return nil
}
