package services

import (
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

// ReconciliationPlan lists the writes that bring persisted cycles in line with
// freshly segmented candidates. ToUpdate rows carry their persisted identity
// with only the derived attributes replaced.
type ReconciliationPlan struct {
	ToInsert []models.Cycle
	ToUpdate []models.Cycle
	ToDelete []models.Cycle
}

func (plan ReconciliationPlan) IsEmpty() bool {
	return len(plan.ToInsert) == 0 && len(plan.ToUpdate) == 0 && len(plan.ToDelete) == 0
}

func (plan ReconciliationPlan) DeleteIDs() []uint {
	ids := make([]uint, 0, len(plan.ToDelete))
	for _, cycle := range plan.ToDelete {
		ids = append(ids, cycle.ID)
	}
	return ids
}

// PlanCycleReconciliation matches candidates to persisted cycles by calendar
// start date. Unmatched derived cycles are deleted, unmatched manual ones only
// lose attributes a run gave them, and rows whose derived attributes already
// agree are not touched.
func PlanCycleReconciliation(candidates []CandidateCycle, persisted []models.Cycle) ReconciliationPlan {
	plan := ReconciliationPlan{
		ToInsert: make([]models.Cycle, 0),
		ToUpdate: make([]models.Cycle, 0),
		ToDelete: make([]models.Cycle, 0),
	}

	persistedByStart := make(map[string]models.Cycle, len(persisted))
	ordered := make([]models.Cycle, len(persisted))
	copy(ordered, persisted)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})
	for _, cycle := range ordered {
		key := FormatCalendarDate(cycle.StartDate)
		if _, exists := persistedByStart[key]; exists {
			if cycle.Source != models.CycleSourceManual {
				plan.ToDelete = append(plan.ToDelete, cycle)
			}
			continue
		}
		persistedByStart[key] = cycle
	}

	matched := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		key := FormatCalendarDate(candidate.StartDate)
		if _, seen := matched[key]; seen {
			continue
		}
		matched[key] = struct{}{}

		existing, exists := persistedByStart[key]
		if !exists {
			plan.ToInsert = append(plan.ToInsert, newDerivedCycle(candidate))
			continue
		}
		if derivedAttributesMatch(existing, candidate) {
			continue
		}

		existing.EndDate = copyTimePointer(candidate.EndDate)
		existing.CycleLength = copyIntPointer(candidate.CycleLength)
		existing.PeriodLength = intPointer(candidate.PeriodLength)
		plan.ToUpdate = append(plan.ToUpdate, existing)
	}

	for key, cycle := range persistedByStart {
		if _, exists := matched[key]; exists {
			continue
		}
		if cycle.Source == models.CycleSourceManual {
			if released, changed := releaseAdoptedCycle(cycle); changed {
				plan.ToUpdate = append(plan.ToUpdate, released)
			}
			continue
		}
		plan.ToDelete = append(plan.ToDelete, cycle)
	}
	sort.Slice(plan.ToUpdate, func(i, j int) bool {
		return plan.ToUpdate[i].ID < plan.ToUpdate[j].ID
	})
	sort.Slice(plan.ToDelete, func(i, j int) bool {
		return plan.ToDelete[i].ID < plan.ToDelete[j].ID
	})

	return plan
}

// releaseAdoptedCycle clears the derived attributes a manual cycle picked up
// while a run started on its date. Only derivation sets CycleLength on a
// manual row; without one the row keeps its own end date.
func releaseAdoptedCycle(cycle models.Cycle) (models.Cycle, bool) {
	if cycle.CycleLength == nil {
		return cycle, false
	}
	cycle.EndDate = nil
	cycle.CycleLength = nil
	cycle.PeriodLength = nil
	return cycle, true
}

func newDerivedCycle(candidate CandidateCycle) models.Cycle {
	flow := strings.TrimSpace(candidate.Flow)
	if flow == "" || flow == models.FlowNone {
		flow = models.FlowMedium
	}
	return models.Cycle{
		StartDate:    CalendarDate(candidate.StartDate),
		EndDate:      copyTimePointer(candidate.EndDate),
		CycleLength:  copyIntPointer(candidate.CycleLength),
		PeriodLength: intPointer(candidate.PeriodLength),
		Flow:         flow,
		Source:       models.CycleSourceDerived,
	}
}

func derivedAttributesMatch(cycle models.Cycle, candidate CandidateCycle) bool {
	if !sameCalendarDate(cycle.EndDate, candidate.EndDate) {
		return false
	}
	if !sameInt(cycle.CycleLength, candidate.CycleLength) {
		return false
	}
	return cycle.PeriodLength != nil && *cycle.PeriodLength == candidate.PeriodLength
}

func sameCalendarDate(left *time.Time, right *time.Time) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	return FormatCalendarDate(*left) == FormatCalendarDate(*right)
}

func sameInt(left *int, right *int) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	return *left == *right
}

func copyTimePointer(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	return timePointer(CalendarDate(*value))
}

func copyIntPointer(value *int) *int {
	if value == nil {
		return nil
	}
	return intPointer(*value)
}
