// Package mail delivers contact form submissions over SMTP.
package mail

import (
	"fmt"
	"net/smtp"

	"github.com/avasquez/folio/internal/config"
)

// Sender sends contact mail through a configured relay.
type Sender struct {
	cfg config.SMTPConfig
	to  string

	// send is stubbed in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender builds a Sender delivering to the given address.
func NewSender(cfg config.SMTPConfig, to string) *Sender {
	return &Sender{cfg: cfg, to: to, send: smtp.SendMail}
}

// Contact forwards a contact form submission. Reply-To is set to the
// visitor's address so answering the mail answers the visitor.
func (s *Sender) Contact(name, email, message string) error {
	if s.cfg.User == "" || s.cfg.Password == "" {
		return fmt.Errorf("smtp credentials not configured")
	}
	if s.to == "" {
		return fmt.Errorf("contact address not configured")
	}

	subject := fmt.Sprintf("Portfolio contact: %s", name)
	body := fmt.Sprintf("Name: %s\r\nEmail: %s\r\n\r\n%s\r\n", name, email, message)

	msg := []byte("To: " + s.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body)

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	if err := s.send(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.User, []string{s.to}, msg); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}
