package email

import (
	"gopkg.in/gomail.v2"
)

// Service sends transactional mail. Delivery failures are reported to the
// caller, who decides whether they matter; pickup fan-out treats them as
// best-effort.
type Service interface {
	Send(to, subject, body string) error
}

// Config holds SMTP settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether SMTP delivery is configured
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates a gomail-backed sender
func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// NoopService discards mail; used when SMTP is not configured
type NoopService struct{}

func (NoopService) Send(_, _, _ string) error { return nil }
