package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/olea-shop/olea-backend/pkg/config"
	"github.com/olea-shop/olea-backend/pkg/logger"
)

// Sender delivers transactional mail. Services depend on this interface so
// tests can capture messages instead of hitting SMTP.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends plain-text mail over authenticated SMTP.
type SMTPSender struct {
	cfg  config.SMTPConfig
	logg *logger.Logger
}

// NewSMTPSender builds the production sender from config.
func NewSMTPSender(cfg config.SMTPConfig, logg *logger.Logger) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("smtp host and port are required")
	}
	if cfg.DefaultFrom == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &SMTPSender{cfg: cfg, logg: logg}, nil
}

// Send delivers one message. The context is consulted before dialing since
// net/smtp has no context support of its own.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.DefaultFrom,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.DefaultFrom, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "recipient", to), "email delivered")
	}
	return nil
}

// NoopSender drops mail. Used in dev when SMTP is not configured.
type NoopSender struct {
	logg *logger.Logger
}

// NewNoopSender returns a sender that only logs.
func NewNoopSender(logg *logger.Logger) *NoopSender {
	return &NoopSender{logg: logg}
}

func (s *NoopSender) Send(ctx context.Context, to, subject, body string) error {
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "recipient", to), "email suppressed (noop sender)")
	}
	return nil
}
