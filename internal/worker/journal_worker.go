package worker

import (
	"context"
	"fmt"
	"log/slog"

	"payslip/internal/amqp"
	"payslip/internal/storage"
)

// JournalWorker consumes dispatch outcome messages from the report
// channel and persists them in the SQLite journal.
type JournalWorker struct {
	journal *storage.SQLiteJournal
}

func NewJournalWorker(journal *storage.SQLiteJournal) *JournalWorker {
	return &JournalWorker{journal: journal}
}

// HandleDispatchedMessage journals a single outcome message. Returning an
// error requeues the delivery.
func (w *JournalWorker) HandleDispatchedMessage(ctx context.Context, msg *amqp.SlipDispatchedMessage) error {
	slog.InfoContext(ctx, "Processing dispatch outcome message",
		"index", msg.Index,
		"name", msg.Name,
		"sent", msg.Sent)

	entry := storage.JournalEntry{
		SlotIndex:    msg.Index,
		Name:         msg.Name,
		Recipient:    msg.Recipient,
		AmountCents:  msg.AmountCents,
		Artifact:     msg.Artifact,
		Sent:         msg.Sent,
		Error:        msg.Error,
		DispatchedAt: msg.Timestamp,
	}

	if _, err := w.journal.Append(ctx, entry); err != nil {
		return fmt.Errorf("journal dispatch outcome: %w", err)
	}

	return nil
}
