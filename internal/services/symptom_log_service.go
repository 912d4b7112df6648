package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/datatypes"
)

const (
	DefaultSymptomListLimit = 90
	MaxSymptomListLimit     = 365
	DefaultSymptomStatsDays = 30
	MaxSymptomStatsDays     = 365
	MaxStressLevel          = 10
	MaxSleepHoursPerDay     = 24
)

var (
	ErrSymptomLogNotFound      = errors.New("symptom log not found")
	ErrInvalidSymptomValue     = errors.New("invalid symptom value")
	ErrInvalidSleepHours       = errors.New("invalid sleep hours")
	ErrInvalidStressLevel      = errors.New("invalid stress level")
	ErrNoSymptomChanges        = errors.New("no fields to update")
	ErrSymptomLogLoadFailed    = errors.New("load symptom log failed")
	ErrSymptomLogPersistFailed = errors.New("persist symptom log failed")
)

// trackedSymptoms are the scores averaged by the summary view.
var trackedSymptoms = []string{"cramps", "mood", "energy", "headache", "bloating"}

type SymptomLogRepository interface {
	ListRecent(userID uint, limit int) ([]models.SymptomLog, error)
	ListByUserRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.SymptomLog, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.SymptomLog, bool, error)
	FindLatest(userID uint) (models.SymptomLog, bool, error)
	FindByIDForUser(logID uint, userID uint) (models.SymptomLog, bool, error)
	Create(entry *models.SymptomLog) error
	Save(entry *models.SymptomLog) error
	DeleteByIDForUser(logID uint, userID uint) (bool, error)
}

type SymptomLogInput struct {
	Date        string
	Symptoms    map[string]any
	SleepHours  *float64
	StressLevel *int
	Notes       *string
}

type SymptomLogPatch struct {
	Symptoms    map[string]any
	SleepHours  *float64
	StressLevel *int
	Notes       *string
}

type SymptomSummary struct {
	TotalLogs int                 `json:"total_logs"`
	Days      int                 `json:"days"`
	Averages  map[string]*float64 `json:"averages"`
	AvgSleep  *float64            `json:"avg_sleep"`
	AvgStress *float64            `json:"avg_stress"`
}

type SymptomLogService struct {
	logs     SymptomLogRepository
	location *time.Location
	now      func() time.Time
}

func NewSymptomLogService(logs SymptomLogRepository, location *time.Location) *SymptomLogService {
	if location == nil {
		location = time.UTC
	}
	return &SymptomLogService{
		logs:     logs,
		location: location,
		now:      time.Now,
	}
}

func (service *SymptomLogService) WithClock(now func() time.Time) *SymptomLogService {
	if now != nil {
		service.now = now
	}
	return service
}

// Upsert saves the log for a date, replacing fields of an existing entry.
// Missing symptom scores fall back to the neutral defaults.
func (service *SymptomLogService) Upsert(userID uint, input SymptomLogInput) (models.SymptomLog, error) {
	day, err := ParseCalendarDate(input.Date)
	if err != nil {
		return models.SymptomLog{}, err
	}
	if err := validateSymptomMeasures(input.Symptoms, input.SleepHours, input.StressLevel); err != nil {
		return models.SymptomLog{}, err
	}

	dayStart, dayEnd := DayRange(day, time.UTC)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.SymptomLog{}, fmt.Errorf("%w: %v", ErrSymptomLogLoadFailed, err)
	}
	if !found {
		entry = models.SymptomLog{UserID: userID, Date: dayStart}
	}

	symptoms := input.Symptoms
	if len(symptoms) == 0 {
		symptoms = models.DefaultSymptomScores()
	}
	entry.Symptoms = datatypes.JSONMap(symptoms)
	entry.SleepHours = input.SleepHours
	entry.StressLevel = input.StressLevel
	if input.Notes != nil {
		entry.Notes = TrimDayNotes(*input.Notes)
	}

	if found {
		err = service.logs.Save(&entry)
	} else {
		err = service.logs.Create(&entry)
	}
	if err != nil {
		return models.SymptomLog{}, fmt.Errorf("%w: %v", ErrSymptomLogPersistFailed, err)
	}
	return entry, nil
}

func (service *SymptomLogService) List(userID uint, limit int) ([]models.SymptomLog, error) {
	if limit <= 0 {
		limit = DefaultSymptomListLimit
	}
	if limit > MaxSymptomListLimit {
		limit = MaxSymptomListLimit
	}
	return service.logs.ListRecent(userID, limit)
}

func (service *SymptomLogService) ListRange(userID uint, rawFrom string, rawTo string) ([]models.SymptomLog, error) {
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
	return service.logs.ListByUserRange(userID, from, toEnd)
}

// FindByDate returns nil when nothing was logged for the date.
func (service *SymptomLogService) FindByDate(userID uint, rawDate string) (*models.SymptomLog, error) {
	day, err := ParseCalendarDate(rawDate)
	if err != nil {
		return nil, err
	}
	dayStart, dayEnd := DayRange(day, time.UTC)
	entry, found, err := service.logs.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymptomLogLoadFailed, err)
	}
	if !found {
		return nil, nil
	}
	return &entry, nil
}

func (service *SymptomLogService) Latest(userID uint) (*models.SymptomLog, error) {
	entry, found, err := service.logs.FindLatest(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSymptomLogLoadFailed, err)
	}
	if !found {
		return nil, nil
	}
	return &entry, nil
}

func (service *SymptomLogService) Update(userID uint, logID uint, patch SymptomLogPatch) (models.SymptomLog, error) {
	if patch.Symptoms == nil && patch.SleepHours == nil && patch.StressLevel == nil && patch.Notes == nil {
		return models.SymptomLog{}, ErrNoSymptomChanges
	}
	if err := validateSymptomMeasures(patch.Symptoms, patch.SleepHours, patch.StressLevel); err != nil {
		return models.SymptomLog{}, err
	}

	entry, found, err := service.logs.FindByIDForUser(logID, userID)
	if err != nil {
		return models.SymptomLog{}, fmt.Errorf("%w: %v", ErrSymptomLogLoadFailed, err)
	}
	if !found {
		return models.SymptomLog{}, ErrSymptomLogNotFound
	}

	if patch.Symptoms != nil {
		entry.Symptoms = datatypes.JSONMap(patch.Symptoms)
	}
	if patch.SleepHours != nil {
		entry.SleepHours = patch.SleepHours
	}
	if patch.StressLevel != nil {
		entry.StressLevel = patch.StressLevel
	}
	if patch.Notes != nil {
		entry.Notes = TrimDayNotes(*patch.Notes)
	}
	if err := service.logs.Save(&entry); err != nil {
		return models.SymptomLog{}, fmt.Errorf("%w: %v", ErrSymptomLogPersistFailed, err)
	}
	return entry, nil
}

func (service *SymptomLogService) Delete(userID uint, logID uint) error {
	deleted, err := service.logs.DeleteByIDForUser(logID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSymptomLogPersistFailed, err)
	}
	if !deleted {
		return ErrSymptomLogNotFound
	}
	return nil
}

// Summary averages symptom scores over the last days, today included.
func (service *SymptomLogService) Summary(userID uint, days int) (SymptomSummary, error) {
	if days <= 0 {
		days = DefaultSymptomStatsDays
	}
	if days > MaxSymptomStatsDays {
		days = MaxSymptomStatsDays
	}

	today := TodayAt(service.now(), service.location)
	from := today.AddDate(0, 0, -days)
	logs, err := service.logs.ListByUserRange(userID, from, today.AddDate(0, 0, 1))
	if err != nil {
		return SymptomSummary{}, fmt.Errorf("%w: %v", ErrSymptomLogLoadFailed, err)
	}

	summary := SymptomSummary{
		TotalLogs: len(logs),
		Days:      days,
		Averages:  make(map[string]*float64, len(trackedSymptoms)),
	}
	for _, name := range trackedSymptoms {
		values := make([]float64, 0, len(logs))
		for _, entry := range logs {
			if value, ok := symptomScore(entry.Symptoms[name]); ok {
				values = append(values, value)
			}
		}
		summary.Averages[name] = averageFloats(values)
	}

	sleep := make([]float64, 0, len(logs))
	stress := make([]float64, 0, len(logs))
	for _, entry := range logs {
		if entry.SleepHours != nil {
			sleep = append(sleep, *entry.SleepHours)
		}
		if entry.StressLevel != nil {
			stress = append(stress, float64(*entry.StressLevel))
		}
	}
	summary.AvgSleep = averageFloats(sleep)
	summary.AvgStress = averageFloats(stress)
	return summary, nil
}

func validateSymptomMeasures(symptoms map[string]any, sleepHours *float64, stressLevel *int) error {
	for _, value := range symptoms {
		if _, ok := symptomScore(value); !ok {
			return ErrInvalidSymptomValue
		}
	}
	if sleepHours != nil && (*sleepHours < 0 || *sleepHours > MaxSleepHoursPerDay) {
		return ErrInvalidSleepHours
	}
	if stressLevel != nil && (*stressLevel < 0 || *stressLevel > MaxStressLevel) {
		return ErrInvalidStressLevel
	}
	return nil
}

// symptomScore reads a numeric score out of a decoded JSON value.
func symptomScore(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(typed, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func averageFloats(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	average := roundTo(sum/float64(len(values)), 2)
	return &average
}
