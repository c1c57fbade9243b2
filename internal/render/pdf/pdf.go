// Package pdf renders slip documents to single-page PDF artifacts.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"payslip/internal/slip"
)

// Letterhead box matches the original slip layout: 2in x 1in.
const (
	letterheadWidthMM  = 50.8
	letterheadHeightMM = 25.4
)

type Renderer struct{}

var _ slip.Renderer = (*Renderer)(nil)

func New() *Renderer { return &Renderer{} }

func (r *Renderer) Ext() string { return ".pdf" }

// Render lays out the letterhead, title, date line and body table on one
// Letter-sized page and writes the artifact to path.
func (r *Renderer) Render(ctx context.Context, doc slip.Document, path string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(doc.Title, false)
	pdf.AddPage()

	if len(doc.Letterhead) > 0 {
		opts := fpdf.ImageOptions{ImageType: imageType(doc.Letterhead)}
		pdf.RegisterImageOptionsReader("letterhead", opts, bytes.NewReader(doc.Letterhead))
		pdf.ImageOptions("letterhead", 15, 15, letterheadWidthMM, letterheadHeightMM, false, opts, 0, "")
		pdf.SetY(15 + letterheadHeightMM + 5)
	} else {
		pdf.SetY(20)
	}

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, doc.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Date: "+doc.DateLine(), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Body table: shaded label column, one row per field.
	const (
		labelWidth = 50.0
		valueWidth = 110.0
		rowHeight  = 10.0
	)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(173, 216, 230)
	for _, field := range doc.Fields {
		pdf.CellFormat(labelWidth, rowHeight, field.Label, "1", 0, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(valueWidth, rowHeight, field.Value, "1", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}

	slog.DebugContext(ctx, "Slip rendered",
		"format", "pdf",
		"path", path,
		"fields", len(doc.Fields))
	return nil
}

func imageType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return "PNG"
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8}):
		return "JPG"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "GIF"
	default:
		return "PNG"
	}
}
