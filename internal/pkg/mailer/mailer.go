package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// ISummaryMailer delivers the end-of-session scope summary to the
// back office. Delivery is best effort; callers log and move on.
type ISummaryMailer interface {
	SendScopeSummary(tenantSlug, roomKey, body string) error
}

type EmailService struct {
	host       string
	port       int
	email      string
	password   string
	senderName string
	recipient  string
}

func NewEmailService(host string, port int, email, password, senderName, recipient string) *EmailService {
	return &EmailService{
		host:       host,
		port:       port,
		email:      email,
		password:   password,
		senderName: senderName,
		recipient:  recipient,
	}
}

func (s *EmailService) SendScopeSummary(tenantSlug, roomKey, body string) error {
	if s.host == "" || s.recipient == "" {
		return fmt.Errorf("summary mailer not configured")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.email, s.senderName)
	m.SetHeader("To", s.recipient)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Walkthrough scope summary - %s", tenantSlug, roomKey))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.email, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send scope summary: %w", err)
	}
	return nil
}
