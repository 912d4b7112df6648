package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

const (
	DefaultCycleListLimit     = 50
	MaxCycleListLimit         = 500
	DefaultAnalysisCycleLimit = 12
)

var (
	ErrCycleNotFound       = errors.New("cycle not found")
	ErrCycleDayNotFound    = errors.New("cycle day not found")
	ErrCycleConflict       = errors.New("cycle already exists for start date")
	ErrCycleStartRequired  = errors.New("start date is required")
	ErrCycleEndBeforeStart = errors.New("end date is before start date")
	ErrNoCycleChanges      = errors.New("no fields to update")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrCycleLoadFailed     = errors.New("load cycle failed")
	ErrCyclePersistFailed  = errors.New("persist cycle failed")
)

type CycleRepository interface {
	ListByUser(userID uint, limit int) ([]models.Cycle, error)
	ListByStartRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.Cycle, error)
	ListWithCycleLength(userID uint, limit int) ([]models.Cycle, error)
	ListRecentCycleLengths(userID uint, minLength int, maxLength int, limit int) ([]int, error)
	FindByIDForUser(cycleID uint, userID uint) (models.Cycle, bool, error)
	FindLatest(userID uint) (models.Cycle, bool, error)
	ExistsByUserAndStartRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
	Create(cycle *models.Cycle) error
	Save(cycle *models.Cycle) error
	Delete(cycle *models.Cycle) error
	ListDays(cycleID uint) ([]models.CycleDay, error)
	FindDay(cycleID uint, dayID uint) (models.CycleDay, bool, error)
	FindDayByDayRange(cycleID uint, dayStart time.Time, dayEnd time.Time) (models.CycleDay, bool, error)
	CreateDay(day *models.CycleDay) error
	SaveDay(day *models.CycleDay) error
	DeleteDay(day *models.CycleDay) error
}

type ManualCycleInput struct {
	StartDate string
	EndDate   *string
	Flow      *string
	Notes     *string
}

// CyclePatch edits user-owned attributes. An empty EndDate string reopens the cycle.
type CyclePatch struct {
	EndDate *string
	Flow    *string
	Notes   *string
}

type CycleDayInput struct {
	Date  string
	Flow  *string
	Notes *string
}

type CycleDayPatch struct {
	Flow  *string
	Notes *string
}

type CycleService struct {
	cycles CycleRepository
	stats  CycleStatsOptions
}

func NewCycleService(cycles CycleRepository, stats CycleStatsOptions) *CycleService {
	return &CycleService{
		cycles: cycles,
		stats:  stats.normalized(),
	}
}

func (service *CycleService) List(userID uint, limit int) ([]models.Cycle, error) {
	if limit <= 0 {
		limit = DefaultCycleListLimit
	}
	if limit > MaxCycleListLimit {
		limit = MaxCycleListLimit
	}
	return service.cycles.ListByUser(userID, limit)
}

func (service *CycleService) Get(userID uint, cycleID uint) (models.Cycle, error) {
	cycle, found, err := service.cycles.FindByIDForUser(cycleID, userID)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if !found {
		return models.Cycle{}, ErrCycleNotFound
	}
	return cycle, nil
}

// Latest returns the most recent cycle; found is false when none is logged.
func (service *CycleService) Latest(userID uint) (models.Cycle, bool, error) {
	return service.cycles.FindLatest(userID)
}

// ListByDateRange returns cycles whose start date falls within [from, to].
func (service *CycleService) ListByDateRange(userID uint, rawFrom string, rawTo string) ([]models.Cycle, error) {
	from, err := ParseCalendarDate(rawFrom)
	if err != nil {
		return nil, err
	}
	to, err := ParseCalendarDate(rawTo)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	_, toEnd := DayRange(to, time.UTC)
	return service.cycles.ListByStartRange(userID, from, toEnd)
}

func (service *CycleService) ListForAnalysis(userID uint, limit int) ([]models.Cycle, error) {
	if limit <= 0 {
		limit = DefaultAnalysisCycleLimit
	}
	return service.cycles.ListWithCycleLength(userID, limit)
}

func (service *CycleService) CreateManual(userID uint, input ManualCycleInput) (models.Cycle, error) {
	if strings.TrimSpace(input.StartDate) == "" {
		return models.Cycle{}, ErrCycleStartRequired
	}
	start, err := ParseCalendarDate(input.StartDate)
	if err != nil {
		return models.Cycle{}, err
	}

	cycle := models.Cycle{
		UserID:    userID,
		StartDate: start,
		Flow:      models.FlowMedium,
		Source:    models.CycleSourceManual,
	}
	if input.Flow != nil && strings.TrimSpace(*input.Flow) != "" {
		flow, err := NormalizeDayFlow(*input.Flow)
		if err != nil {
			return models.Cycle{}, err
		}
		cycle.Flow = flow
	}
	if input.Notes != nil {
		cycle.Notes = TrimDayNotes(*input.Notes)
	}
	if input.EndDate != nil && strings.TrimSpace(*input.EndDate) != "" {
		if err := applyCycleEndDate(&cycle, *input.EndDate); err != nil {
			return models.Cycle{}, err
		}
	}

	dayStart, dayEnd := DayRange(start, time.UTC)
	exists, err := service.cycles.ExistsByUserAndStartRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if exists {
		return models.Cycle{}, ErrCycleConflict
	}

	if err := service.cycles.Create(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCyclePersistFailed, err)
	}
	return cycle, nil
}

func (service *CycleService) Update(userID uint, cycleID uint, patch CyclePatch) (models.Cycle, error) {
	if patch.EndDate == nil && patch.Flow == nil && patch.Notes == nil {
		return models.Cycle{}, ErrNoCycleChanges
	}

	cycle, err := service.Get(userID, cycleID)
	if err != nil {
		return models.Cycle{}, err
	}

	if patch.Flow != nil {
		flow, err := NormalizeDayFlow(*patch.Flow)
		if err != nil {
			return models.Cycle{}, err
		}
		cycle.Flow = flow
	}
	if patch.Notes != nil {
		cycle.Notes = TrimDayNotes(*patch.Notes)
	}
	if patch.EndDate != nil {
		if strings.TrimSpace(*patch.EndDate) == "" {
			cycle.EndDate = nil
		} else if err := applyCycleEndDate(&cycle, *patch.EndDate); err != nil {
			return models.Cycle{}, err
		}
	}

	if err := service.cycles.Save(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCyclePersistFailed, err)
	}
	return cycle, nil
}

func (service *CycleService) Delete(userID uint, cycleID uint) error {
	cycle, err := service.Get(userID, cycleID)
	if err != nil {
		return err
	}
	if err := service.cycles.Delete(&cycle); err != nil {
		return fmt.Errorf("%w: %v", ErrCyclePersistFailed, err)
	}
	return nil
}

func (service *CycleService) ListDays(userID uint, cycleID uint) ([]models.CycleDay, error) {
	if _, err := service.Get(userID, cycleID); err != nil {
		return nil, err
	}
	return service.cycles.ListDays(cycleID)
}

// UpsertDay logs a day inside a cycle, updating the existing entry for that date.
func (service *CycleService) UpsertDay(userID uint, cycleID uint, input CycleDayInput) (models.CycleDay, error) {
	if _, err := service.Get(userID, cycleID); err != nil {
		return models.CycleDay{}, err
	}
	date, err := ParseCalendarDate(input.Date)
	if err != nil {
		return models.CycleDay{}, err
	}

	dayStart, dayEnd := DayRange(date, time.UTC)
	day, found, err := service.cycles.FindDayByDayRange(cycleID, dayStart, dayEnd)
	if err != nil {
		return models.CycleDay{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if !found {
		day = models.CycleDay{CycleID: cycleID, Date: dayStart, Flow: models.FlowMedium}
	}
	if err := applyCycleDayFields(&day, input.Flow, input.Notes); err != nil {
		return models.CycleDay{}, err
	}

	if found {
		err = service.cycles.SaveDay(&day)
	} else {
		err = service.cycles.CreateDay(&day)
	}
	if err != nil {
		return models.CycleDay{}, fmt.Errorf("%w: %v", ErrCyclePersistFailed, err)
	}
	return day, nil
}

func (service *CycleService) UpdateDay(userID uint, cycleID uint, dayID uint, patch CycleDayPatch) (models.CycleDay, error) {
	if patch.Flow == nil && patch.Notes == nil {
		return models.CycleDay{}, ErrNoCycleChanges
	}
	day, err := service.findDay(userID, cycleID, dayID)
	if err != nil {
		return models.CycleDay{}, err
	}
	if err := applyCycleDayFields(&day, patch.Flow, patch.Notes); err != nil {
		return models.CycleDay{}, err
	}
	if err := service.cycles.SaveDay(&day); err != nil {
		return models.CycleDay{}, fmt.Errorf("%w: %v", ErrCyclePersistFailed, err)
	}
	return day, nil
}

func (service *CycleService) DeleteDay(userID uint, cycleID uint, dayID uint) error {
	day, err := service.findDay(userID, cycleID, dayID)
	if err != nil {
		return err
	}
	if err := service.cycles.DeleteDay(&day); err != nil {
		return fmt.Errorf("%w: %v", ErrCyclePersistFailed, err)
	}
	return nil
}

func (service *CycleService) findDay(userID uint, cycleID uint, dayID uint) (models.CycleDay, error) {
	if _, err := service.Get(userID, cycleID); err != nil {
		return models.CycleDay{}, err
	}
	day, found, err := service.cycles.FindDay(cycleID, dayID)
	if err != nil {
		return models.CycleDay{}, fmt.Errorf("%w: %v", ErrCycleLoadFailed, err)
	}
	if !found {
		return models.CycleDay{}, ErrCycleDayNotFound
	}
	return day, nil
}

func applyCycleEndDate(cycle *models.Cycle, rawEnd string) error {
	end, err := ParseCalendarDate(rawEnd)
	if err != nil {
		return err
	}
	if end.Before(CalendarDate(cycle.StartDate)) {
		return ErrCycleEndBeforeStart
	}
	cycle.EndDate = timePointer(end)
	cycle.PeriodLength = intPointer(DaysBetween(cycle.StartDate, end) + 1)
	return nil
}

func applyCycleDayFields(day *models.CycleDay, flow *string, notes *string) error {
	if flow != nil {
		normalized, err := NormalizeDayFlow(*flow)
		if err != nil {
			return err
		}
		day.Flow = normalized
	}
	if notes != nil {
		day.Notes = TrimDayNotes(*notes)
	}
	return nil
}
