package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

func TestCycleRepositoryApplyPlanDeletesUpdatesAndInserts(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "solaris-apply.db"))
	user := createTestUser(t, database, "apply@example.com")
	repo := NewCycleRepository(database)

	stale := models.Cycle{UserID: user.ID, StartDate: testDay(2026, 1, 1), Flow: models.FlowLight, Source: models.CycleSourceDerived}
	kept := models.Cycle{UserID: user.ID, StartDate: testDay(2026, 1, 29), Flow: models.FlowHeavy, Notes: "keep me", Source: models.CycleSourceDerived}
	for _, cycle := range []*models.Cycle{&stale, &kept} {
		if err := repo.Create(cycle); err != nil {
			t.Fatalf("seed cycle: %v", err)
		}
	}
	if err := repo.CreateDay(&models.CycleDay{CycleID: stale.ID, Date: testDay(2026, 1, 1), Flow: models.FlowLight}); err != nil {
		t.Fatalf("seed cycle day: %v", err)
	}

	endDate := testDay(2026, 2, 2)
	cycleLength := 30
	periodLength := 5
	inserted := []models.Cycle{{StartDate: testDay(2026, 2, 28), Flow: models.FlowMedium, Source: models.CycleSourceDerived, PeriodLength: &periodLength}}

	err := repo.ApplyPlan(user.ID, []uint{stale.ID}, []models.Cycle{{
		ID:           kept.ID,
		Flow:         models.FlowNone,
		EndDate:      &endDate,
		CycleLength:  &cycleLength,
		PeriodLength: &periodLength,
	}}, inserted)
	if err != nil {
		t.Fatalf("apply plan: %v", err)
	}

	cycles, err := repo.ListAllByUser(user.ID)
	if err != nil {
		t.Fatalf("list cycles: %v", err)
	}
	if len(cycles) != 2 {
		t.Fatalf("expected 2 cycles after apply, got %d", len(cycles))
	}

	updated := cycles[0]
	if updated.ID != kept.ID {
		t.Fatalf("expected kept cycle id %d first, got %d", kept.ID, updated.ID)
	}
	if updated.CycleLength == nil || *updated.CycleLength != 30 {
		t.Fatalf("expected cycle length 30, got %v", updated.CycleLength)
	}
	if updated.EndDate == nil || !updated.EndDate.Equal(endDate) {
		t.Fatalf("expected end date %s, got %v", endDate, updated.EndDate)
	}
	if updated.Flow != models.FlowHeavy || updated.Notes != "keep me" {
		t.Fatalf("expected flow and notes to be preserved, got flow=%q notes=%q", updated.Flow, updated.Notes)
	}
	if cycles[1].UserID != user.ID || cycles[1].EndDate != nil {
		t.Fatalf("expected inserted open cycle for user, got %#v", cycles[1])
	}

	days, err := repo.ListDays(stale.ID)
	if err != nil {
		t.Fatalf("list days: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected days of deleted cycle to be removed, got %d", len(days))
	}
}

func TestCycleRepositoryListRecentCycleLengthsFiltersRange(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "solaris-lengths.db"))
	user := createTestUser(t, database, "lengths@example.com")
	repo := NewCycleRepository(database)

	lengths := []int{28, 60, 30, 10}
	start := testDay(2025, 1, 1)
	for index, length := range lengths {
		value := length
		cycle := models.Cycle{
			UserID:      user.ID,
			StartDate:   start.AddDate(0, 0, index*40),
			CycleLength: &value,
			Flow:        models.FlowMedium,
			Source:      models.CycleSourceDerived,
		}
		if err := repo.Create(&cycle); err != nil {
			t.Fatalf("seed cycle: %v", err)
		}
	}

	got, err := repo.ListRecentCycleLengths(user.ID, 14, 45, 6)
	if err != nil {
		t.Fatalf("list recent cycle lengths: %v", err)
	}
	if len(got) != 2 || got[0] != 30 || got[1] != 28 {
		t.Fatalf("expected [30 28], got %v", got)
	}
}

func testDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
