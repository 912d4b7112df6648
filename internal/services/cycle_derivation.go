package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

var ErrDerivationFailed = errors.New("cycle derivation failed")

const (
	DerivationOutcomeApplied   = "applied"
	DerivationOutcomeUnchanged = "unchanged"
	DerivationOutcomeFailed    = "failed"
)

type DerivationPeriodDayRepository interface {
	ListByUser(userID uint) ([]models.PeriodDay, error)
}

type DerivationCycleRepository interface {
	ListAllByUser(userID uint) ([]models.Cycle, error)
	ApplyPlan(userID uint, deleteIDs []uint, updates []models.Cycle, inserts []models.Cycle) error
}

type DerivationRecorder interface {
	RecordDerivation(outcome string, duration time.Duration)
}

type DerivationResult struct {
	Inserted int
	Updated  int
	Deleted  int
}

// CycleDeriver rebuilds a user's cycles from the full period-day history.
// Runs for the same user are serialized; different users proceed in parallel.
type CycleDeriver struct {
	days     DerivationPeriodDayRepository
	cycles   DerivationCycleRepository
	locks    *UserLocks
	options  SegmentOptions
	location *time.Location
	now      func() time.Time
	recorder DerivationRecorder
}

func NewCycleDeriver(days DerivationPeriodDayRepository, cycles DerivationCycleRepository, options SegmentOptions, location *time.Location) *CycleDeriver {
	if location == nil {
		location = time.UTC
	}
	return &CycleDeriver{
		days:     days,
		cycles:   cycles,
		locks:    NewUserLocks(),
		options:  options.normalized(),
		location: location,
		now:      time.Now,
	}
}

func (deriver *CycleDeriver) WithRecorder(recorder DerivationRecorder) *CycleDeriver {
	deriver.recorder = recorder
	return deriver
}

func (deriver *CycleDeriver) WithClock(now func() time.Time) *CycleDeriver {
	if now != nil {
		deriver.now = now
	}
	return deriver
}

// OnPeriodDayChanged is the post-write hook of the period-day store.
func (deriver *CycleDeriver) OnPeriodDayChanged(userID uint) error {
	_, err := deriver.Rederive(userID)
	return err
}

func (deriver *CycleDeriver) Rederive(userID uint) (DerivationResult, error) {
	unlock := deriver.locks.Lock(userID)
	defer unlock()

	startedAt := time.Now()
	result, err := deriver.rederiveLocked(userID)
	outcome := DerivationOutcomeApplied
	switch {
	case err != nil:
		outcome = DerivationOutcomeFailed
	case result == (DerivationResult{}):
		outcome = DerivationOutcomeUnchanged
	}
	if deriver.recorder != nil {
		deriver.recorder.RecordDerivation(outcome, time.Since(startedAt))
	}
	return result, err
}

func (deriver *CycleDeriver) rederiveLocked(userID uint) (DerivationResult, error) {
	days, err := deriver.days.ListByUser(userID)
	if err != nil {
		return DerivationResult{}, fmt.Errorf("%w: load period days: %v", ErrDerivationFailed, err)
	}
	persisted, err := deriver.cycles.ListAllByUser(userID)
	if err != nil {
		return DerivationResult{}, fmt.Errorf("%w: load cycles: %v", ErrDerivationFailed, err)
	}

	today := TodayAt(deriver.now(), deriver.location)
	candidates := SegmentPeriodDays(SegmentDaysFromPeriodDays(days), today, deriver.options)
	plan := PlanCycleReconciliation(candidates, persisted)
	if plan.IsEmpty() {
		return DerivationResult{}, nil
	}

	if err := deriver.cycles.ApplyPlan(userID, plan.DeleteIDs(), plan.ToUpdate, plan.ToInsert); err != nil {
		return DerivationResult{}, fmt.Errorf("%w: apply plan: %v", ErrDerivationFailed, err)
	}
	return DerivationResult{
		Inserted: len(plan.ToInsert),
		Updated:  len(plan.ToUpdate),
		Deleted:  len(plan.ToDelete),
	}, nil
}
