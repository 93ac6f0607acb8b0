// Package budget provides the Service through which every collaborator reads
// and changes the budget.
//
// A Service is created once, opened explicitly (which loads the snapshot and
// runs the period check) and closed explicitly. Every mutation is applied in
// memory, saved, and announced on the event bus. When saving fails the
// mutation is kept: the in-memory state stays authoritative and the
// *store.PersistError is returned to the caller.
package budget

import (
	"context"
	"errors"
	"sync"

	"fjacquet/daily-dollar/internal/dateutils"
	"fjacquet/daily-dollar/internal/events"
	"fjacquet/daily-dollar/internal/forecast"
	"fjacquet/daily-dollar/internal/importer"
	"fjacquet/daily-dollar/internal/ledger"
	"fjacquet/daily-dollar/internal/logging"
	"fjacquet/daily-dollar/internal/models"
	"fjacquet/daily-dollar/internal/rollover"
	"fjacquet/daily-dollar/internal/store"

	"github.com/shopspring/decimal"
)

// ErrNotOpen is returned by operations called before Open or after Close.
var ErrNotOpen = errors.New("budget service is not open")

// Options configures a Service.
type Options struct {
	Store  store.SnapshotStore
	Bus    *events.Bus
	Logger logging.Logger
	Clock  dateutils.Clock

	// Seeds, PaycheckAmount and PaycheckDay shape the snapshot created when
	// the store is empty. Empty seeds, a nil amount and a zero day fall back to
	// the built-in defaults; an explicit zero amount is kept.
	Seeds          []models.CategorySeed
	PaycheckAmount *decimal.Decimal
	PaycheckDay    int

	CatchUpMissedPeriods bool
}

// Service owns the ledger and its persistence.
type Service struct {
	mu       sync.Mutex
	opts     Options
	store    store.SnapshotStore
	bus      *events.Bus
	logger   logging.Logger
	clock    dateutils.Clock
	rollover *rollover.Engine
	importer *importer.Importer
	ledger   *ledger.Ledger
}

// NewService creates a closed service. A nil store keeps data in memory, a
// nil bus creates a private one.
func NewService(opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus(opts.Logger)
	}
	if opts.Clock == nil {
		opts.Clock = dateutils.SystemClock{}
	}
	if opts.PaycheckDay == 0 {
		opts.PaycheckDay = 1
	}
	if opts.PaycheckAmount == nil {
		amount := decimal.NewFromInt(3000)
		opts.PaycheckAmount = &amount
	}

	logger := opts.Logger.WithField(logging.FieldComponent, "budget")
	return &Service{
		opts:     opts,
		store:    opts.Store,
		bus:      opts.Bus,
		logger:   logger,
		clock:    opts.Clock,
		rollover: rollover.NewEngine(rollover.WithCatchUp(opts.CatchUpMissedPeriods)),
		importer: importer.New(logger),
	}
}

// Bus returns the bus the service publishes on.
func (s *Service) Bus() *events.Bus {
	return s.bus
}

// Open loads the snapshot, or creates one when the store is empty, then runs
// the period check once. A load failure is fatal; a failure to save the
// result is returned alongside the check result and the service stays open.
func (s *Service) Open(ctx context.Context) (rollover.Result, error) {
	s.mu.Lock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		s.mu.Unlock()
		return rollover.Result{}, err
	}

	created := snap == nil
	if created {
		snap = models.NewSnapshot(*s.opts.PaycheckAmount, s.opts.PaycheckDay, s.opts.Seeds)
		s.logger.Info("No stored budget found, starting a new one",
			logging.F(logging.FieldCount, len(snap.Categories)))
	}
	s.ledger = ledger.New(snap, s.clock)

	res, pending, err := s.checkPeriodLocked(ctx, created)
	s.mu.Unlock()

	s.publish(pending...)
	return res, err
}

// CheckPeriodChange runs the period check against the current time.
func (s *Service) CheckPeriodChange(ctx context.Context) (rollover.Result, error) {
	s.mu.Lock()
	if s.ledger == nil {
		s.mu.Unlock()
		return rollover.Result{}, ErrNotOpen
	}
	res, pending, err := s.checkPeriodLocked(ctx, false)
	s.mu.Unlock()

	s.publish(pending...)
	return res, err
}

func (s *Service) checkPeriodLocked(ctx context.Context, forceSave bool) (rollover.Result, []events.Event, error) {
	res := s.rollover.CheckPeriodChange(s.ledger, s.clock.Now())

	switch res.Outcome {
	case rollover.Initialized:
		s.logger.Info("Period tracking initialized",
			logging.F(logging.FieldPeriodStart, dateutils.ToISODate(res.PeriodStart)))
	case rollover.RolledOver:
		s.logger.Info("New period started",
			logging.F(logging.FieldPeriodStart, dateutils.ToISODate(res.PeriodStart)),
			logging.F(logging.FieldBalance, res.BeginningBalance.String()),
			logging.F(logging.FieldCount, res.PeriodsApplied))
	}

	if !forceSave && !res.Changed() {
		return res, nil, nil
	}

	err := s.saveLocked(ctx, "check_period")
	var pending []events.Event
	if res.Outcome == rollover.RolledOver {
		pending = append(pending, events.NewEvent(events.PeriodRolledOver, events.Rollover{
			PeriodStart:      res.PeriodStart,
			BeginningBalance: res.BeginningBalance,
			PeriodsApplied:   res.PeriodsApplied,
		}))
	}
	return res, pending, err
}

// Close saves the snapshot one last time and releases the store.
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger == nil {
		return s.store.Close()
	}
	saveErr := s.saveLocked(ctx, "close")
	s.ledger = nil
	return errors.Join(saveErr, s.store.Close())
}

// Read runs fn with the ledger while holding the service lock. fn must not
// call back into the service.
func (s *Service) Read(fn func(l *ledger.Ledger)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ledger == nil {
		return ErrNotOpen
	}
	fn(s.ledger)
	return nil
}

// Forecast returns the forecast figures.
func (s *Service) Forecast() (forecast.Summary, error) {
	var summary forecast.Summary
	err := s.Read(func(l *ledger.Ledger) {
		summary = forecast.New(l).Summarize()
	})
	return summary, err
}

// saveLocked persists the snapshot. Failures are logged and returned as
// *store.PersistError.
func (s *Service) saveLocked(ctx context.Context, op string) error {
	err := s.store.Save(ctx, s.ledger.Snapshot())
	if err == nil {
		return nil
	}

	var perr *store.PersistError
	if !errors.As(err, &perr) {
		err = &store.PersistError{Op: store.OpSave, Backend: "custom", Err: err}
	}
	s.logger.WithError(err).Warn("Failed to persist budget, keeping in-memory changes",
		logging.F(logging.FieldOperation, op))
	return err
}

// mutate applies fn under the lock and, when it changed something, saves
// and announces the change once the lock is released.
func (s *Service) mutate(ctx context.Context, op string, fn func(l *ledger.Ledger) (entityID string, changed bool, err error)) error {
	s.mu.Lock()
	if s.ledger == nil {
		s.mu.Unlock()
		return ErrNotOpen
	}

	entityID, changed, err := fn(s.ledger)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}

	s.logger.Debug("Budget updated", logging.F(logging.FieldOperation, op))
	saveErr := s.saveLocked(ctx, op)
	s.mu.Unlock()

	s.publish(events.NewEvent(events.LedgerChanged, events.Change{
		Operation: op,
		EntityID:  entityID,
		Persisted: saveErr == nil,
	}))
	return saveErr
}

func (s *Service) publish(evts ...events.Event) {
	for _, e := range evts {
		if err := s.bus.Publish(e); err != nil {
			s.logger.WithError(err).Warn("Event delivery failed", logging.F(logging.FieldEvent, string(e.Type)))
		}
	}
}
