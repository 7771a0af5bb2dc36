// Package gomail adapts an SMTP transport to bantay.Mailer.
package gomail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/lborres/bantay"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ bantay.Mailer = (*Mailer)(nil)

func New(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (m *Mailer) Send(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
