package pdf

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"payslip/internal/core"
	"payslip/internal/slip"
)

func testPNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testDocument(letterhead []byte) slip.Document {
	rec := core.Record{Name: "Sajjad", Email: "aunraza@sinecure.ai", Amount: core.Money{Cents: 123450}}
	return slip.NewDocument("Sinecure AI", rec, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), letterhead)
}

func TestRenderWritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slip.pdf")

	if err := New().Render(context.Background(), testDocument(testPNG(t)), path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("artifact is not a PDF, starts with %q", data[:min(8, len(data))])
	}
}

func TestRenderWithoutLetterhead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slip.pdf")

	if err := New().Render(context.Background(), testDocument(nil), path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected artifact on disk: %v", err)
	}
}

func TestExt(t *testing.T) {
	if got := New().Ext(); got != ".pdf" {
		t.Errorf("Ext() = %q, want .pdf", got)
	}
}

func TestImageType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, "PNG"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "JPG"},
		{"gif", []byte("GIF89a"), "GIF"},
		{"unknown defaults to png", []byte("bogus"), "PNG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imageType(tt.data); got != tt.want {
				t.Errorf("imageType() = %q, want %q", got, tt.want)
			}
		})
	}
}
