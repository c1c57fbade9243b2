package slip

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"payslip/internal/core"
	applog "payslip/internal/log"
)

// Dispatcher renders and sends one slip per record. Records are processed
// strictly in batch order and each record's pipeline is isolated: a
// failure (or panic) in one record never prevents the next from being
// attempted.
type Dispatcher struct {
	renderer  Renderer
	sender    Sender
	assets    AssetSource
	workDir   string
	company   string
	reporters []Reporter
}

func NewDispatcher(renderer Renderer, sender Sender, assets AssetSource, workDir, company string, reporters ...Reporter) *Dispatcher {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Dispatcher{
		renderer:  renderer,
		sender:    sender,
		assets:    assets,
		workDir:   workDir,
		company:   company,
		reporters: reporters,
	}
}

// Process runs the render/send/cleanup pipeline for every record and
// returns the outcomes in input order. Each outcome is reported before
// the next record is attempted.
func (d *Dispatcher) Process(ctx context.Context, records []core.Record) []Outcome {
	outcomes := make([]Outcome, 0, len(records))
	for i, rec := range records {
		outcome := d.processRecord(ctx, i, rec)

		if outcome.Sent() {
			slog.InfoContext(ctx, "Salary slip sent",
				applog.FieldComponent, applog.ComponentDispatch,
				applog.FieldSlotIndex, outcome.Index,
				applog.FieldName, rec.Name,
				applog.FieldRecipient, rec.Email,
				applog.FieldArtifact, outcome.Artifact)
		} else {
			slog.ErrorContext(ctx, "Salary slip dispatch failed",
				applog.FieldComponent, applog.ComponentDispatch,
				applog.FieldSlotIndex, outcome.Index,
				applog.FieldName, rec.Name,
				applog.FieldRecipient, rec.Email,
				applog.FieldError, outcome.Err)
		}

		d.report(ctx, outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// report delivers the outcome to every reporter. Reporting is
// best-effort: a panicking reporter must not stop the remaining
// records or reporters.
func (d *Dispatcher) report(ctx context.Context, outcome Outcome) {
	for _, r := range d.reporters {
		func() {
			defer func() {
				if p := recover(); p != nil {
					slog.ErrorContext(ctx, "Reporter panicked",
						applog.FieldComponent, applog.ComponentDispatch,
						applog.FieldSlotIndex, outcome.Index,
						"panic", p)
				}
			}()
			r.Report(ctx, outcome)
		}()
	}
}

// processRecord runs one record's pipeline. The rendered artifact is
// removed after the send attempt regardless of its outcome; a removal
// error is logged and never replaces the send result.
func (d *Dispatcher) processRecord(ctx context.Context, index int, rec core.Record) (outcome Outcome) {
	outcome = Outcome{Index: index, Record: rec}
	defer func() {
		if p := recover(); p != nil {
			outcome.Err = fmt.Errorf("record %d: panic during dispatch: %v", index, p)
		}
		outcome.CompletedAt = time.Now()
	}()

	letterhead, err := d.assets.Fetch(ctx)
	if err != nil {
		outcome.Err = fmt.Errorf("fetch letterhead: %w", err)
		return outcome
	}

	// Artifact names use the slot index plus a generated token, never the
	// candidate name, so duplicate names cannot overwrite each other.
	outcome.Artifact = fmt.Sprintf("slip-%d-%s%s", index, uuid.NewString(), d.renderer.Ext())
	path := filepath.Join(d.workDir, outcome.Artifact)

	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Failed to remove rendered slip",
				applog.FieldComponent, applog.ComponentDispatch,
				applog.FieldOperation, applog.OpCleanup,
				"path", path,
				applog.FieldError, err)
		}
	}()

	doc := NewDocument(d.company, rec, time.Now(), letterhead)
	if err := d.renderer.Render(ctx, doc, path); err != nil {
		outcome.Err = fmt.Errorf("render slip: %w", err)
		return outcome
	}

	msg := Message{
		To:             rec.Email,
		Subject:        Subject,
		Body:           bodyFor(rec.Name, d.company),
		AttachmentPath: path,
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		outcome.Err = fmt.Errorf("send slip: %w", err)
		return outcome
	}

	return outcome
}

func bodyFor(name, company string) string {
	return fmt.Sprintf("Dear %s,\n\nPlease find attached your salary slip for this month.\n\nBest regards,\n%s", name, company)
}
