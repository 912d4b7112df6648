package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/datatypes"
)

type stubExportSymptomReader struct {
	logs []models.SymptomLog
	err  error
}

func (stub *stubExportSymptomReader) ListRecent(uint, int) ([]models.SymptomLog, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return stub.logs, nil
}

type stubExportPeriodDayReader struct {
	days []models.PeriodDay
}

func (stub *stubExportPeriodDayReader) ListByUser(uint) ([]models.PeriodDay, error) {
	return stub.days, nil
}

func mustParseExportDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := ParseCalendarDate(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return parsed
}

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	sleep := 7.5
	stress := 2
	return NewExportService(
		&stubExportPeriodDayReader{days: []models.PeriodDay{
			{Date: mustParseExportDay(t, "2026-02-01"), Flow: models.FlowHeavy, Notes: "first day"},
			{Date: mustParseExportDay(t, "2026-02-02"), Flow: models.FlowLight},
			{Date: mustParseExportDay(t, "2026-03-01"), Flow: models.FlowMedium},
		}},
		&stubExportSymptomReader{logs: []models.SymptomLog{
			{
				Date:        mustParseExportDay(t, "2026-02-05"),
				Symptoms:    datatypes.JSONMap{"cramps": float64(1), "mood": float64(4), "energy": 3.5},
				SleepHours:  &sleep,
				StressLevel: &stress,
			},
			{
				Date:     mustParseExportDay(t, "2026-02-01"),
				Symptoms: datatypes.JSONMap{"cramps": 4},
				Notes:    "rough",
			},
		}},
	)
}

func TestExportBuildEntriesMergesByDate(t *testing.T) {
	service := newExportFixture(t)

	entries, err := service.BuildEntries(1, nil, nil)
	if err != nil {
		t.Fatalf("BuildEntries() unexpected error: %v", err)
	}

	dates := make([]string, 0, len(entries))
	for _, entry := range entries {
		dates = append(dates, entry.Date)
	}
	want := []string{"2026-02-01", "2026-02-02", "2026-02-05", "2026-03-01"}
	if !reflect.DeepEqual(dates, want) {
		t.Fatalf("expected dates %v, got %v", want, dates)
	}

	first := entries[0]
	if !first.Period || first.Flow != models.FlowHeavy {
		t.Fatalf("expected heavy period on first entry, got %+v", first)
	}
	if first.Notes != "first day; rough" {
		t.Fatalf("expected merged notes, got %q", first.Notes)
	}
	if entries[2].Period || entries[2].Flow != models.FlowNone {
		t.Fatalf("expected symptom-only entry without period, got %+v", entries[2])
	}
}

func TestExportBuildEntriesHonorsInclusiveRange(t *testing.T) {
	service := newExportFixture(t)
	from := mustParseExportDay(t, "2026-02-02")
	to := mustParseExportDay(t, "2026-02-05")

	entries, err := service.BuildEntries(1, &from, &to)
	if err != nil {
		t.Fatalf("BuildEntries() unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Date != "2026-02-02" || entries[1].Date != "2026-02-05" {
		t.Fatalf("expected 2026-02-02 and 2026-02-05, got %+v", entries)
	}
}

func TestExportBuildSummaryUsesDateBounds(t *testing.T) {
	service := newExportFixture(t)

	summary, err := service.BuildSummary(1, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummary() unexpected error: %v", err)
	}
	want := ExportSummary{
		TotalEntries: 4,
		PeriodDays:   3,
		SymptomLogs:  2,
		HasData:      true,
		DateFrom:     "2026-02-01",
		DateTo:       "2026-03-01",
	}
	if summary != want {
		t.Fatalf("expected %+v, got %+v", want, summary)
	}
}

func TestExportBuildSummaryEmpty(t *testing.T) {
	service := NewExportService(&stubExportPeriodDayReader{}, &stubExportSymptomReader{})

	summary, err := service.BuildSummary(1, nil, nil)
	if err != nil {
		t.Fatalf("BuildSummary() unexpected error: %v", err)
	}
	if summary.HasData || summary.TotalEntries != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestExportBuildEntriesPropagatesReaderError(t *testing.T) {
	readErr := errors.New("boom")
	service := NewExportService(&stubExportPeriodDayReader{}, &stubExportSymptomReader{err: readErr})

	if _, err := service.BuildEntries(1, nil, nil); !errors.Is(err, readErr) {
		t.Fatalf("expected wrapped reader error, got %v", err)
	}
}

func TestExportEntryCSVColumns(t *testing.T) {
	service := newExportFixture(t)
	entries, err := service.BuildEntries(1, nil, nil)
	if err != nil {
		t.Fatalf("BuildEntries() unexpected error: %v", err)
	}

	got := entries[2].CSVColumns()
	want := []string{"2026-02-05", "No", "None", "1", "4", "3.5", "", "", "7.5", "2", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len(got) != len(ExportCSVHeaders) {
		t.Fatalf("expected %d columns, got %d", len(ExportCSVHeaders), len(got))
	}

	first := entries[0].CSVColumns()
	if first[1] != "Yes" || first[2] != "Heavy" || first[3] != "4" {
		t.Fatalf("unexpected first row %q", first)
	}
}

func TestParseExportRange(t *testing.T) {
	from, to, err := ParseExportRange(" 2026-02-01 ", "2026-02-10")
	if err != nil {
		t.Fatalf("ParseExportRange() unexpected error: %v", err)
	}
	if FormatCalendarDate(*from) != "2026-02-01" || FormatCalendarDate(*to) != "2026-02-10" {
		t.Fatalf("unexpected bounds %v %v", from, to)
	}

	from, to, err = ParseExportRange("", "")
	if err != nil || from != nil || to != nil {
		t.Fatalf("expected open range, got %v %v %v", from, to, err)
	}

	if _, _, err := ParseExportRange("02/01/2026", ""); !errors.Is(err, ErrExportFromDateInvalid) {
		t.Fatalf("expected ErrExportFromDateInvalid, got %v", err)
	}
	if _, _, err := ParseExportRange("", "nope"); !errors.Is(err, ErrExportToDateInvalid) {
		t.Fatalf("expected ErrExportToDateInvalid, got %v", err)
	}
	if _, _, err := ParseExportRange("2026-02-10", "2026-02-01"); !errors.Is(err, ErrExportRangeInvalid) {
		t.Fatalf("expected ErrExportRangeInvalid, got %v", err)
	}
}
