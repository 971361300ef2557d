package mail

import (
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/folio/internal/config"
)

func TestContact(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string

	s := NewSender(config.SMTPConfig{
		Host: "smtp.example.com", Port: "587",
		User: "me@example.com", Password: "app-pass",
	}, "inbox@example.com")
	s.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	require.NoError(t, s.Contact("Visitor", "visitor@example.com", "Hello there"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"inbox@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Reply-To: visitor@example.com")
	assert.Contains(t, gotMsg, "Subject: Portfolio contact: Visitor")
	assert.Contains(t, gotMsg, "Hello there")
}

func TestContactRequiresCredentials(t *testing.T) {
	s := NewSender(config.SMTPConfig{Host: "smtp.example.com", Port: "587"}, "inbox@example.com")

	err := s.Contact("Visitor", "visitor@example.com", "Hello")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "credentials"))
}

func TestContactRequiresDestination(t *testing.T) {
	s := NewSender(config.SMTPConfig{User: "me@example.com", Password: "x"}, "")

	assert.Error(t, s.Contact("Visitor", "visitor@example.com", "Hello"))
}
