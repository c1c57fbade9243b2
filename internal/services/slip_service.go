package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"payslip/internal/amqp"
	"payslip/internal/core"
	applog "payslip/internal/log"
	"payslip/internal/session"
	"payslip/internal/slip"
	"payslip/internal/storage"
)

// SlipService owns the one interactive collection session and hands the
// finalized batch to the dispatcher. The session is created lazily on
// first access and lives until Reset or process end; it is never
// persisted.
type SlipService struct {
	batchSize    int
	roster       core.Roster
	defaultEmail string

	dispatcher *slip.Dispatcher
	amqpClient *amqp.Client
	journal    *storage.SQLiteJournal

	mu   sync.Mutex
	sess *session.Session
}

func NewSlipService(batchSize int, roster core.Roster, defaultEmail string, dispatcher *slip.Dispatcher, amqpClient *amqp.Client, journal *storage.SQLiteJournal) *SlipService {
	return &SlipService{
		batchSize:    batchSize,
		roster:       roster,
		defaultEmail: defaultEmail,
		dispatcher:   dispatcher,
		amqpClient:   amqpClient,
		journal:      journal,
	}
}

// current returns the live session, creating it on first use.
// Callers must hold s.mu.
func (s *SlipService) current() (*session.Session, error) {
	if s.sess == nil {
		sess, err := session.New(s.batchSize, s.roster, s.defaultEmail)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		s.sess = sess
	}
	return s.sess, nil
}

func (s *SlipService) SubmitSlot(ctx context.Context, name string, amount core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.current()
	if err != nil {
		return err
	}
	if err := sess.SubmitSlot(name, amount); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Slot submitted",
		applog.FieldOperation, applog.OpSubmit,
		applog.FieldName, name,
		applog.FieldAmountCents, amount.Cents,
		"cursor", sess.Cursor(),
		"size", sess.Size())
	return nil
}

func (s *SlipService) Amend(ctx context.Context, index int, amount core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.current()
	if err != nil {
		return err
	}
	if err := sess.Amend(index, amount); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Record amended",
		applog.FieldOperation, applog.OpAmend,
		applog.FieldSlotIndex, index,
		applog.FieldAmountCents, amount.Cents)
	return nil
}

// Dispatch hands the finalized batch to the dispatcher. Refuses a
// partial batch; individual record failures are reflected in the
// returned outcomes, never as an error here.
func (s *SlipService) Dispatch(ctx context.Context) ([]slip.Outcome, error) {
	s.mu.Lock()
	sess, err := s.current()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !sess.ReadyForDispatch() {
		s.mu.Unlock()
		return nil, core.ErrCollectionIncomplete
	}
	records := sess.Records()
	s.mu.Unlock()

	slog.InfoContext(ctx, "Dispatching batch",
		applog.FieldOperation, applog.OpDispatch,
		"records", len(records))
	return s.dispatcher.Process(ctx, records), nil
}

// Snapshot returns the state the view renders from.
func (s *SlipService) Snapshot() (records []core.Record, cursor, size int, ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.current()
	if err != nil {
		return nil, 0, s.batchSize, false
	}
	return sess.Records(), sess.Cursor(), sess.Size(), sess.ReadyForDispatch()
}

func (s *SlipService) Roster() core.Roster {
	return append(core.Roster(nil), s.roster...)
}

// Reset discards the current session; the next access starts a fresh
// batch.
func (s *SlipService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
}

// Close closes the report channel and journal connections.
func (s *SlipService) Close() error {
	var errs []error

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("journal: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close slip service: %v", errs)
	}
	return nil
}
