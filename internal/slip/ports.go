package slip

import (
	"context"
	"time"

	"payslip/internal/core"
)

// Subject is the fixed subject line for every dispatched slip.
const Subject = "Your Salary Slip"

type (
	// Field is one labeled line of the slip body table.
	Field struct {
		Label string
		Value string
	}

	// Document is the structured content handed to a layout engine:
	// letterhead image, brand title, generation date and the body table.
	Document struct {
		Title      string
		Date       time.Time
		Letterhead []byte
		Fields     []Field
	}

	// Message is one outbound mail with the rendered slip attached.
	Message struct {
		To             string
		Subject        string
		Body           string
		AttachmentPath string
	}

	// Outcome is the per-record result of one dispatch pipeline run.
	Outcome struct {
		Index       int
		Record      core.Record
		Artifact    string
		Err         error
		CompletedAt time.Time
	}
)

// Ports for outbound adapters.
type (
	// Renderer produces a one-page document artifact at the given path.
	Renderer interface {
		Render(ctx context.Context, doc Document, path string) error
		// Ext returns the artifact file extension including the dot.
		Ext() string
	}

	// Sender delivers one message through a pre-authenticated transport.
	Sender interface {
		Send(ctx context.Context, msg Message) error
	}

	// AssetSource yields the letterhead image bytes, or an error when the
	// asset is unavailable.
	AssetSource interface {
		Fetch(ctx context.Context) ([]byte, error)
	}

	// Reporter receives each record's outcome as soon as it is known.
	Reporter interface {
		Report(ctx context.Context, outcome Outcome)
	}
)

// Sent reports whether the outcome was a successful dispatch.
func (o Outcome) Sent() bool { return o.Err == nil }

// NewDocument builds the slip content for one record. Every monetary
// field carries the record's current amount, currency-prefixed.
func NewDocument(title string, rec core.Record, now time.Time, letterhead []byte) Document {
	return Document{
		Title:      title,
		Date:       now,
		Letterhead: letterhead,
		Fields: []Field{
			{Label: "Name", Value: rec.Name},
			{Label: "Salary", Value: rec.Amount.FormatUSD()},
		},
	}
}

// DateLine formats the generation date for the slip, fixed layout,
// locale independent.
func (d Document) DateLine() string {
	return d.Date.Format("January 2, 2006")
}
