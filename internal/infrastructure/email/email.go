// Package email sends transactional e-mail through an HTTP provider API.
package email

import (
	"context"
	"errors"
)

// Errors returned by senders
var (
	ErrProviderUnavailable = errors.New("email: provider unavailable")
	ErrRequestRejected     = errors.New("email: request rejected")
)

// Message is a single outbound e-mail
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
	Tags    map[string]string
}

// Sender delivers messages and returns the provider's message ID
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}
