// Package xlsx renders slip documents as single-sheet XLSX workbooks,
// for payroll teams that archive slips in spreadsheet form.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"payslip/internal/slip"
)

const sheet = "Salary Slip"

type Renderer struct{}

var _ slip.Renderer = (*Renderer)(nil)

func New() *Renderer { return &Renderer{} }

func (r *Renderer) Ext() string { return ".xlsx" }

func (r *Renderer) Render(ctx context.Context, doc slip.Document, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if len(doc.Letterhead) > 0 {
		pic := &excelize.Picture{
			Extension: imageExt(doc.Letterhead),
			File:      doc.Letterhead,
			Format:    &excelize.GraphicOptions{AutoFit: true},
		}
		if err := f.AddPictureFromBytes(sheet, "A1", pic); err != nil {
			return fmt.Errorf("add letterhead: %w", err)
		}
	}

	write := func(cell string, v any) {
		_ = f.SetCellValue(sheet, cell, v)
	}
	write("A6", doc.Title)
	write("A7", "Date: "+doc.DateLine())

	row := 9
	for _, field := range doc.Fields {
		write(fmt.Sprintf("A%d", row), field.Label)
		write(fmt.Sprintf("B%d", row), field.Value)
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	slog.DebugContext(ctx, "Slip rendered",
		"format", "xlsx",
		"path", path,
		"fields", len(doc.Fields))
	return nil
}

func imageExt(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8}):
		return ".jpg"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return ".gif"
	default:
		return ".png"
	}
}
