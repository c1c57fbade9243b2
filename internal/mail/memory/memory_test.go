package memory

import (
	"context"
	"testing"

	"payslip/internal/slip"
)

func TestMemorySenderRecordsInOrder(t *testing.T) {
	s := New()
	for _, to := range []string{"a@example.com", "b@example.com"} {
		if err := s.Send(context.Background(), slip.Message{To: to, Subject: "Your Salary Slip"}); err != nil {
			t.Fatalf("send to %s: %v", to, err)
		}
	}
	sent := s.Sent()
	if len(sent) != 2 || sent[0].To != "a@example.com" || sent[1].To != "b@example.com" {
		t.Fatalf("unexpected outbox: %v", sent)
	}
}

func TestMemorySenderRejectsBadRecipient(t *testing.T) {
	s := New()
	if err := s.Send(context.Background(), slip.Message{To: "nope"}); err == nil {
		t.Fatal("expected error for invalid recipient")
	}
	if len(s.Sent()) != 0 {
		t.Fatal("failed send must not be recorded")
	}
}
