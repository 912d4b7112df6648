package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Period",
	"Flow",
	"Cramps",
	"Mood",
	"Energy",
	"Headache",
	"Bloating",
	"Sleep hours",
	"Stress",
	"Notes",
}

var exportSymptomColumns = []string{"cramps", "mood", "energy", "headache", "bloating"}

type ExportPeriodDayReader interface {
	ListByUser(userID uint) ([]models.PeriodDay, error)
}

type ExportSymptomReader interface {
	ListRecent(userID uint, limit int) ([]models.SymptomLog, error)
}

type ExportService struct {
	periodDays ExportPeriodDayReader
	symptoms   ExportSymptomReader
}

type ExportSummary struct {
	TotalEntries int    `json:"total_entries"`
	PeriodDays   int    `json:"period_days"`
	SymptomLogs  int    `json:"symptom_logs"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

// ExportEntry merges the period day and symptom log recorded for one date.
type ExportEntry struct {
	Date        string         `json:"date"`
	Period      bool           `json:"period"`
	Flow        string         `json:"flow"`
	Symptoms    map[string]any `json:"symptoms"`
	SleepHours  *float64       `json:"sleep_hours"`
	StressLevel *int           `json:"stress_level"`
	Notes       string         `json:"notes"`
}

func NewExportService(periodDays ExportPeriodDayReader, symptoms ExportSymptomReader) *ExportService {
	return &ExportService{
		periodDays: periodDays,
		symptoms:   symptoms,
	}
}

// BuildEntries returns one entry per date that has a period day or a symptom
// log inside the optional inclusive range, oldest first.
func (service *ExportService) BuildEntries(userID uint, from *time.Time, to *time.Time) ([]ExportEntry, error) {
	days, err := service.periodDays.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list period days: %w", err)
	}
	logs, err := service.symptoms.ListRecent(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list symptom logs: %w", err)
	}

	byDate := make(map[string]*ExportEntry)
	entryFor := func(date time.Time) *ExportEntry {
		key := FormatCalendarDate(date)
		if entry, ok := byDate[key]; ok {
			return entry
		}
		entry := &ExportEntry{Date: key, Flow: models.FlowNone}
		byDate[key] = entry
		return entry
	}

	for _, day := range days {
		if !inExportRange(day.Date, from, to) {
			continue
		}
		entry := entryFor(day.Date)
		entry.Period = day.Flow != models.FlowNone
		entry.Flow = day.Flow
		entry.Notes = joinExportNotes(entry.Notes, day.Notes)
	}
	for _, logEntry := range logs {
		if !inExportRange(logEntry.Date, from, to) {
			continue
		}
		entry := entryFor(logEntry.Date)
		entry.Symptoms = map[string]any(logEntry.Symptoms)
		entry.SleepHours = logEntry.SleepHours
		entry.StressLevel = logEntry.StressLevel
		entry.Notes = joinExportNotes(entry.Notes, logEntry.Notes)
	}

	entries := make([]ExportEntry, 0, len(byDate))
	for _, entry := range byDate {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries, nil
}

func (service *ExportService) BuildSummary(userID uint, from *time.Time, to *time.Time) (ExportSummary, error) {
	entries, err := service.BuildEntries(userID, from, to)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	summary := ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Date,
		DateTo:       entries[len(entries)-1].Date,
	}
	for _, entry := range entries {
		if entry.Period {
			summary.PeriodDays++
		}
		if entry.Symptoms != nil || entry.SleepHours != nil || entry.StressLevel != nil {
			summary.SymptomLogs++
		}
	}
	return summary, nil
}

func (entry ExportEntry) CSVColumns() []string {
	columns := []string{
		entry.Date,
		csvYesNo(entry.Period),
		csvFlowLabel(entry.Flow),
	}
	for _, name := range exportSymptomColumns {
		columns = append(columns, csvScore(entry.Symptoms[name]))
	}
	sleep := ""
	if entry.SleepHours != nil {
		sleep = strconv.FormatFloat(*entry.SleepHours, 'f', -1, 64)
	}
	stress := ""
	if entry.StressLevel != nil {
		stress = strconv.Itoa(*entry.StressLevel)
	}
	return append(columns, sleep, stress, entry.Notes)
}

func joinExportNotes(existing string, next string) string {
	next = strings.TrimSpace(next)
	switch {
	case next == "":
		return existing
	case existing == "":
		return next
	default:
		return existing + "; " + next
	}
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvFlowLabel(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowSpotting:
		return "Spotting"
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	default:
		return "None"
	}
}

func csvScore(value any) string {
	score, ok := symptomScore(value)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}
