package amqp

import (
	"encoding/json"
	"time"
)

// SlipDispatchedMessage reports one record's dispatch outcome on the
// report channel. Consumers journal these; the batch itself never leaves
// the wizard process.
type SlipDispatchedMessage struct {
	Index       int       `json:"index"`
	Name        string    `json:"name"`
	Recipient   string    `json:"recipient"`
	AmountCents int64     `json:"amount_cents"`
	Artifact    string    `json:"artifact"`
	Sent        bool      `json:"sent"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes
func (m *SlipDispatchedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SlipDispatchedMessageFromJSON creates a message from JSON bytes
func SlipDispatchedMessageFromJSON(data []byte) (*SlipDispatchedMessage, error) {
	var msg SlipDispatchedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
