package amqp

import (
	"testing"
	"time"
)

func TestSlipDispatchedMessageRoundTrip(t *testing.T) {
	msg := &SlipDispatchedMessage{
		Index:       2,
		Name:        "Uma",
		Recipient:   "payroll@example.com",
		AmountCents: 95000,
		Artifact:    "slip-2-abc.pdf",
		Sent:        false,
		Error:       "send slip: smtp 550",
		Timestamp:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := SlipDispatchedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if *got != *msg {
		t.Fatalf("round trip mismatch: %+v != %+v", got, msg)
	}
}

func TestSlipDispatchedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := SlipDispatchedMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
