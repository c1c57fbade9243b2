package storage

import (
	"context"
	"log/slog"

	applog "payslip/internal/log"
	"payslip/internal/slip"
)

// JournalReporter writes each dispatch outcome straight into the journal.
// Used when no AMQP report channel is configured; write failures are
// logged and never affect the record's outcome.
type JournalReporter struct {
	journal *SQLiteJournal
}

var _ slip.Reporter = (*JournalReporter)(nil)

func NewJournalReporter(journal *SQLiteJournal) *JournalReporter {
	return &JournalReporter{journal: journal}
}

func (r *JournalReporter) Report(ctx context.Context, outcome slip.Outcome) {
	if r.journal == nil {
		return
	}

	entry := JournalEntry{
		SlotIndex:    outcome.Index,
		Name:         outcome.Record.Name,
		Recipient:    outcome.Record.Email,
		AmountCents:  outcome.Record.Amount.Cents,
		Artifact:     outcome.Artifact,
		Sent:         outcome.Sent(),
		DispatchedAt: outcome.CompletedAt,
	}
	if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
	}

	if _, err := r.journal.Append(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "Failed to journal dispatch outcome",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldSlotIndex, outcome.Index,
			applog.FieldName, outcome.Record.Name,
			applog.FieldError, err)
	}
}
