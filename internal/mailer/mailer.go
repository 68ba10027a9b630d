package mailer

import (
	"travel-request-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer is the notification side of a lifecycle transition. The engine calls
// it after the state change is persisted; a send failure is logged by the
// caller and never rolls the transition back.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(
			config.GetEnv("SMTP_HOST", "localhost"),
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASS", ""),
		),
		from: config.GetEnv("SMTP_FROM", "noreply@travel-requests.local"),
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
