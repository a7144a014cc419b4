// Package notify moves outbound email intents from the request path to a
// delivery worker. Callers enqueue a Message and return; a Sender delivers it
// later, possibly in another process.
package notify

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrQueueFull    = errors.New("notification queue is full")
	ErrQueueClosed  = errors.New("notification queue is closed")
	ErrNoRecipients = errors.New("message has no recipients")
)

// Message is one email to deliver
type Message struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

// Validate drops blank recipients and checks something is left
func (m *Message) Validate() error {
	to := make([]string, 0, len(m.To))
	for _, addr := range m.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	m.To = to
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// Queue accepts messages for later delivery
type Queue interface {
	Enqueue(ctx context.Context, msg Message) error
}

// Sender delivers a message
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
