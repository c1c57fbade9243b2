// Package memory provides an in-process outbox used as the default mail
// backend for local development and tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"payslip/internal/slip"
)

type Sender struct {
	mu   sync.Mutex
	sent []slip.Message
}

var _ slip.Sender = (*Sender)(nil)

func New() *Sender { return &Sender{} }

// Send records the message in the outbox. The recipient address is still
// validated so the memory backend exercises the same failure path as a
// real transport.
func (s *Sender) Send(_ context.Context, msg slip.Message) error {
	if !strings.Contains(msg.To, "@") {
		return fmt.Errorf("invalid recipient %q", msg.To)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a copy of the outbox in send order.
func (s *Sender) Sent() []slip.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]slip.Message(nil), s.sent...)
}
