package services

import (
	"context"
	"errors"
	"os"
	"testing"

	"payslip/internal/core"
	"payslip/internal/slip"
)

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, _ slip.Document, path string) error {
	return os.WriteFile(path, []byte("x"), 0o644)
}
func (stubRenderer) Ext() string { return ".pdf" }

type stubSender struct{ sent int }

func (s *stubSender) Send(context.Context, slip.Message) error {
	s.sent++
	return nil
}

type stubAssets struct{}

func (stubAssets) Fetch(context.Context) ([]byte, error) { return []byte{1}, nil }

var roster = core.Roster{"Sajjad", "Aun", "Uma", "Shivani"}

func newTestService(t *testing.T) (*SlipService, *stubSender) {
	t.Helper()
	sender := &stubSender{}
	d := slip.NewDispatcher(stubRenderer{}, sender, stubAssets{}, t.TempDir(), "Sinecure AI")
	return NewSlipService(4, roster, "payroll@example.com", d, nil, nil), sender
}

func TestDispatchRefusesPartialBatch(t *testing.T) {
	svc, sender := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitSlot(ctx, "Sajjad", core.Money{Cents: 100}); err != nil {
		t.Fatalf("SubmitSlot: %v", err)
	}

	_, err := svc.Dispatch(ctx)
	if !errors.Is(err, core.ErrCollectionIncomplete) {
		t.Fatalf("got %v, want ErrCollectionIncomplete", err)
	}
	if sender.sent != 0 {
		t.Fatal("nothing should be sent before the batch is complete")
	}
}

func TestFullWorkflow(t *testing.T) {
	svc, sender := newTestService(t)
	ctx := context.Background()

	amounts := []int64{100000, 120000, 90000, 110000}
	for i, name := range roster {
		if err := svc.SubmitSlot(ctx, name, core.Money{Cents: amounts[i]}); err != nil {
			t.Fatalf("SubmitSlot(%s): %v", name, err)
		}
	}

	_, _, _, ready := svc.Snapshot()
	if !ready {
		t.Fatal("batch should be ready after four submissions")
	}

	if err := svc.Amend(ctx, 2, core.Money{Cents: 95000}); err != nil {
		t.Fatalf("Amend: %v", err)
	}
	records, _, _, _ := svc.Snapshot()
	if records[2].Amount.Cents != 95000 {
		t.Fatalf("amended amount = %d", records[2].Amount.Cents)
	}

	outcomes, err := svc.Dispatch(ctx)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(outcomes) != 4 {
		t.Fatalf("got %d outcomes", len(outcomes))
	}
	for i, o := range outcomes {
		if !o.Sent() {
			t.Errorf("record %d failed: %v", i, o.Err)
		}
	}
	if sender.sent != 4 {
		t.Fatalf("sent %d messages", sender.sent)
	}
}

func TestResetStartsFreshBatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitSlot(ctx, "Uma", core.Money{Cents: 10}); err != nil {
		t.Fatalf("SubmitSlot: %v", err)
	}
	svc.Reset()

	_, cursor, _, _ := svc.Snapshot()
	if cursor != 0 {
		t.Fatalf("cursor after reset = %d", cursor)
	}
}

func TestCloseWithNilComponents(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Close(); err != nil {
		t.Fatalf("Close with nil components: %v", err)
	}
}
