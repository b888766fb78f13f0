package service

import (
	"bitwise74/tourbuddy/config"
	"context"
	"errors"
	"fmt"
	"net/url"

	"gopkg.in/gomail.v2"
)

// Mail is a single plain text message
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer hands mail to a transport. Implementations must be safe for
// concurrent use
type Mailer interface {
	Send(ctx context.Context, m *Mail) error
}

// SMTPMailer sends mail through an authenticated SMTP server
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(c config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(c.Host, c.Port, c.User, c.Password),
		from:   c.From,
	}
}

// Send dials the SMTP server and sends m. Failures are returned as
// *TransportError
func (s *SMTPMailer) Send(ctx context.Context, m *Mail) error {
	if m.To == "" || m.To == s.from {
		return &TransportError{Err: errors.New("invalid email address")}
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return &TransportError{Err: ctx.Err()}
	case err := <-done:
		if err != nil {
			return &TransportError{Err: err}
		}
	}

	return nil
}

// VerificationURL builds the link a user follows to verify their email
func VerificationURL(scheme, host, token string) string {
	u := url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     "/users/verify-email",
		RawQuery: url.Values{"token": {token}}.Encode(),
	}

	return u.String()
}

// VerificationMail builds the mail sent to a freshly registered user
func VerificationMail(to, scheme, host, token string) *Mail {
	return &Mail{
		To:      to,
		Subject: "Email Verification",
		Body: fmt.Sprintf("Please click the following link to verify your email: %s",
			VerificationURL(scheme, host, token)),
	}
}
