package notify

import (
	"context"
	"crypto/tls"
	"log"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds mail server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Insecure bool // skip TLS verification, for local relays
}

// SMTPSender delivers messages through an SMTP server
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a sender for cfg
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.Insecure {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &SMTPSender{dialer: d, from: cfg.From}
}

// Send builds a multipart message (plain text plus optional HTML) and sends it
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := s.build(msg)
	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	log.Printf("📧 Email sent: %q to %v", msg.Subject, msg.To)
	return nil
}

func (s *SMTPSender) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}

// LogSender writes messages to the log instead of sending them.
// It is used when SMTP is not configured.
type LogSender struct{}

// Send logs the message
func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("📭 [mail:log] to=%v subject=%q\n%s", msg.To, msg.Subject, msg.Text)
	return nil
}
