package amqp

import (
	"context"
	"log/slog"
	"time"

	applog "payslip/internal/log"
	"payslip/internal/slip"
)

// OutcomeReporter bridges the dispatcher's report channel onto AMQP.
// Publish failures are logged and swallowed: losing a report must never
// fail the record it reports on.
type OutcomeReporter struct {
	client *Client
}

var _ slip.Reporter = (*OutcomeReporter)(nil)

func NewOutcomeReporter(client *Client) *OutcomeReporter {
	return &OutcomeReporter{client: client}
}

func (r *OutcomeReporter) Report(ctx context.Context, outcome slip.Outcome) {
	if r.client == nil {
		return
	}

	msg := &SlipDispatchedMessage{
		Index:       outcome.Index,
		Name:        outcome.Record.Name,
		Recipient:   outcome.Record.Email,
		AmountCents: outcome.Record.Amount.Cents,
		Artifact:    outcome.Artifact,
		Sent:        outcome.Sent(),
		Timestamp:   time.Now(),
	}
	if outcome.Err != nil {
		msg.Error = outcome.Err.Error()
	}

	if err := r.client.PublishSlipDispatched(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish dispatch outcome",
			applog.FieldComponent, applog.ComponentAMQP,
			applog.FieldSlotIndex, outcome.Index,
			applog.FieldName, outcome.Record.Name,
			applog.FieldError, err)
	}
}
