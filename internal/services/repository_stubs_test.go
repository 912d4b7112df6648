package services

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

type periodDayRepositoryStub struct {
	mu      sync.Mutex
	entries map[uint]models.PeriodDay
	nextID  uint
	listErr error
}

func newPeriodDayRepositoryStub() *periodDayRepositoryStub {
	return &periodDayRepositoryStub{
		entries: make(map[uint]models.PeriodDay),
		nextID:  1,
	}
}

func (stub *periodDayRepositoryStub) ListByUser(userID uint) ([]models.PeriodDay, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	if stub.listErr != nil {
		return nil, stub.listErr
	}
	days := make([]models.PeriodDay, 0)
	for _, entry := range stub.entries {
		if entry.UserID == userID {
			days = append(days, entry)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		if days[i].Date.Equal(days[j].Date) {
			return days[i].ID < days[j].ID
		}
		return days[i].Date.Before(days[j].Date)
	})
	return days, nil
}

func (stub *periodDayRepositoryStub) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PeriodDay, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	for _, entry := range stub.entries {
		if entry.UserID == userID && !entry.Date.Before(dayStart) && entry.Date.Before(dayEnd) {
			return entry, true, nil
		}
	}
	return models.PeriodDay{}, false, nil
}

func (stub *periodDayRepositoryStub) FindByIDForUser(dayID uint, userID uint) (models.PeriodDay, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	entry, ok := stub.entries[dayID]
	if !ok || entry.UserID != userID {
		return models.PeriodDay{}, false, nil
	}
	return entry, true, nil
}

func (stub *periodDayRepositoryStub) Create(entry *models.PeriodDay) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	for _, existing := range stub.entries {
		if existing.UserID == entry.UserID && existing.Date.Equal(entry.Date) {
			return errors.New("UNIQUE constraint failed: period_days.user_id, period_days.date")
		}
	}
	entry.ID = stub.nextID
	stub.nextID++
	stub.entries[entry.ID] = *entry
	return nil
}

func (stub *periodDayRepositoryStub) Save(entry *models.PeriodDay) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.entries[entry.ID] = *entry
	return nil
}

func (stub *periodDayRepositoryStub) DeleteByIDForUser(dayID uint, userID uint) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	entry, ok := stub.entries[dayID]
	if !ok || entry.UserID != userID {
		return false, nil
	}
	delete(stub.entries, dayID)
	return true, nil
}

type cycleRepositoryStub struct {
	mu          sync.Mutex
	cycles      map[uint]models.Cycle
	days        map[uint]models.CycleDay
	nextID      uint
	nextDayID   uint
	applyErr    error
	applyCalls  int
	updateCalls int
}

func newCycleRepositoryStub() *cycleRepositoryStub {
	return &cycleRepositoryStub{
		cycles:    make(map[uint]models.Cycle),
		days:      make(map[uint]models.CycleDay),
		nextID:    1,
		nextDayID: 1,
	}
}

func (stub *cycleRepositoryStub) sortedLocked(userID uint, descending bool) []models.Cycle {
	cycles := make([]models.Cycle, 0)
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID {
			cycles = append(cycles, cycle)
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		if descending {
			return cycles[i].StartDate.After(cycles[j].StartDate)
		}
		return cycles[i].StartDate.Before(cycles[j].StartDate)
	})
	return cycles
}

func (stub *cycleRepositoryStub) ListAllByUser(userID uint) ([]models.Cycle, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.sortedLocked(userID, false), nil
}

func (stub *cycleRepositoryStub) ListByUser(userID uint, limit int) ([]models.Cycle, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	cycles := stub.sortedLocked(userID, true)
	if limit > 0 && len(cycles) > limit {
		cycles = cycles[:limit]
	}
	return cycles, nil
}

func (stub *cycleRepositoryStub) ListByStartRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.Cycle, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	cycles := make([]models.Cycle, 0)
	for _, cycle := range stub.sortedLocked(userID, true) {
		if !cycle.StartDate.Before(fromStart) && cycle.StartDate.Before(toEnd) {
			cycles = append(cycles, cycle)
		}
	}
	return cycles, nil
}

func (stub *cycleRepositoryStub) ListWithCycleLength(userID uint, limit int) ([]models.Cycle, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	cycles := make([]models.Cycle, 0)
	for _, cycle := range stub.sortedLocked(userID, true) {
		if cycle.CycleLength != nil {
			cycles = append(cycles, cycle)
		}
	}
	if limit > 0 && len(cycles) > limit {
		cycles = cycles[:limit]
	}
	return cycles, nil
}

func (stub *cycleRepositoryStub) ListRecentCycleLengths(userID uint, minLength int, maxLength int, limit int) ([]int, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	lengths := make([]int, 0)
	for _, cycle := range stub.sortedLocked(userID, true) {
		if cycle.CycleLength == nil || *cycle.CycleLength < minLength || *cycle.CycleLength > maxLength {
			continue
		}
		lengths = append(lengths, *cycle.CycleLength)
		if limit > 0 && len(lengths) == limit {
			break
		}
	}
	return lengths, nil
}

func (stub *cycleRepositoryStub) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	cycle, ok := stub.cycles[cycleID]
	if !ok || cycle.UserID != userID {
		return models.Cycle{}, false, nil
	}
	return cycle, true, nil
}

func (stub *cycleRepositoryStub) FindLatest(userID uint) (models.Cycle, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	cycles := stub.sortedLocked(userID, true)
	if len(cycles) == 0 {
		return models.Cycle{}, false, nil
	}
	return cycles[0], true, nil
}

func (stub *cycleRepositoryStub) ExistsByUserAndStartRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	for _, cycle := range stub.cycles {
		if cycle.UserID == userID && !cycle.StartDate.Before(dayStart) && cycle.StartDate.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *cycleRepositoryStub) insertLocked(cycle *models.Cycle) error {
	for _, existing := range stub.cycles {
		if existing.UserID == cycle.UserID && existing.StartDate.Equal(cycle.StartDate) {
			return errors.New("UNIQUE constraint failed: cycles.user_id, cycles.start_date")
		}
	}
	cycle.ID = stub.nextID
	stub.nextID++
	stub.cycles[cycle.ID] = *cycle
	return nil
}

func (stub *cycleRepositoryStub) Create(cycle *models.Cycle) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.insertLocked(cycle)
}

func (stub *cycleRepositoryStub) Save(cycle *models.Cycle) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.cycles[cycle.ID] = *cycle
	return nil
}

func (stub *cycleRepositoryStub) Delete(cycle *models.Cycle) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.deleteLocked(cycle.ID)
	return nil
}

func (stub *cycleRepositoryStub) deleteLocked(cycleID uint) {
	delete(stub.cycles, cycleID)
	for dayID, day := range stub.days {
		if day.CycleID == cycleID {
			delete(stub.days, dayID)
		}
	}
}

func (stub *cycleRepositoryStub) ApplyPlan(userID uint, deleteIDs []uint, updates []models.Cycle, inserts []models.Cycle) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.applyCalls++
	if stub.applyErr != nil {
		return stub.applyErr
	}
	for _, cycleID := range deleteIDs {
		if cycle, ok := stub.cycles[cycleID]; ok && cycle.UserID == userID {
			stub.deleteLocked(cycleID)
		}
	}
	for _, update := range updates {
		stored, ok := stub.cycles[update.ID]
		if !ok || stored.UserID != userID {
			continue
		}
		stub.updateCalls++
		stored.EndDate = update.EndDate
		stored.CycleLength = update.CycleLength
		stored.PeriodLength = update.PeriodLength
		stub.cycles[update.ID] = stored
	}
	for index := range inserts {
		inserts[index].UserID = userID
		if err := stub.insertLocked(&inserts[index]); err != nil {
			return err
		}
	}
	return nil
}

func (stub *cycleRepositoryStub) ListDays(cycleID uint) ([]models.CycleDay, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	days := make([]models.CycleDay, 0)
	for _, day := range stub.days {
		if day.CycleID == cycleID {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days, nil
}

func (stub *cycleRepositoryStub) FindDay(cycleID uint, dayID uint) (models.CycleDay, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	day, ok := stub.days[dayID]
	if !ok || day.CycleID != cycleID {
		return models.CycleDay{}, false, nil
	}
	return day, true, nil
}

func (stub *cycleRepositoryStub) FindDayByDayRange(cycleID uint, dayStart time.Time, dayEnd time.Time) (models.CycleDay, bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	for _, day := range stub.days {
		if day.CycleID == cycleID && !day.Date.Before(dayStart) && day.Date.Before(dayEnd) {
			return day, true, nil
		}
	}
	return models.CycleDay{}, false, nil
}

func (stub *cycleRepositoryStub) CreateDay(day *models.CycleDay) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	day.ID = stub.nextDayID
	stub.nextDayID++
	stub.days[day.ID] = *day
	return nil
}

func (stub *cycleRepositoryStub) SaveDay(day *models.CycleDay) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	stub.days[day.ID] = *day
	return nil
}

func (stub *cycleRepositoryStub) DeleteDay(day *models.CycleDay) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	delete(stub.days, day.ID)
	return nil
}

func mustDay(raw string) time.Time {
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return day
}

func stringPointer(value string) *string {
	return &value
}
