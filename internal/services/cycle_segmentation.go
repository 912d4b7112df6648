package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

const (
	DefaultGapThresholdDays = 2
	DefaultOpenWindowDays   = 10
)

// SegmentOptions tunes how period days are grouped into bleeding episodes.
// Days at most GapThresholdDays apart share a run. The most recent run stays
// open until more than OpenWindowDays have passed since its last day.
type SegmentOptions struct {
	GapThresholdDays int
	OpenWindowDays   int
}

func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		GapThresholdDays: DefaultGapThresholdDays,
		OpenWindowDays:   DefaultOpenWindowDays,
	}
}

func (options SegmentOptions) normalized() SegmentOptions {
	if options.GapThresholdDays <= 0 {
		options.GapThresholdDays = DefaultGapThresholdDays
	}
	if options.OpenWindowDays <= 0 {
		options.OpenWindowDays = DefaultOpenWindowDays
	}
	return options
}

type SegmentDay struct {
	Date time.Time
	Flow string
}

// CandidateCycle is one run of period days as the segmentation sees it.
// EndDate is nil while the run is open. Flow is the heaviest flow in the run
// and only seeds newly created cycles.
type CandidateCycle struct {
	StartDate    time.Time
	EndDate      *time.Time
	lastDay      time.Time
	PeriodLength int
	CycleLength  *int
	Flow         string
}

func SegmentDaysFromPeriodDays(days []models.PeriodDay) []SegmentDay {
	segmentDays := make([]SegmentDay, 0, len(days))
	for _, day := range days {
		segmentDays = append(segmentDays, SegmentDay{Date: day.Date, Flow: day.Flow})
	}
	return segmentDays
}

// SegmentPeriodDays groups period days into candidate cycles ordered by start
// date. today must already be a calendar date in the user's location.
func SegmentPeriodDays(days []SegmentDay, today time.Time, options SegmentOptions) []CandidateCycle {
	if len(days) == 0 {
		return []CandidateCycle{}
	}
	options = options.normalized()
	today = CalendarDate(today)

	sorted := collapseSegmentDays(days)

	candidates := make([]CandidateCycle, 0)
	current := CandidateCycle{
		StartDate:    sorted[0].Date,
		lastDay:      sorted[0].Date,
		PeriodLength: 1,
		Flow:         sorted[0].Flow,
	}
	for _, day := range sorted[1:] {
		if DaysBetween(current.lastDay, day.Date) <= options.GapThresholdDays {
			current.lastDay = day.Date
			current.PeriodLength++
			if flowWeight(day.Flow) > flowWeight(current.Flow) {
				current.Flow = day.Flow
			}
			continue
		}

		current.EndDate = timePointer(current.lastDay)
		candidates = append(candidates, current)
		current = CandidateCycle{
			StartDate:    day.Date,
			lastDay:      day.Date,
			PeriodLength: 1,
			Flow:         day.Flow,
		}
	}

	if DaysBetween(current.lastDay, today) > options.OpenWindowDays {
		current.EndDate = timePointer(current.lastDay)
	}
	candidates = append(candidates, current)

	for index := 0; index < len(candidates)-1; index++ {
		candidates[index].CycleLength = intPointer(DaysBetween(candidates[index].StartDate, candidates[index+1].StartDate))
	}
	return candidates
}

// collapseSegmentDays returns a sorted copy with one entry per calendar date,
// keeping the heaviest flow logged for that date.
func collapseSegmentDays(days []SegmentDay) []SegmentDay {
	byDate := make(map[string]SegmentDay, len(days))
	for _, day := range days {
		date := CalendarDate(day.Date)
		key := FormatCalendarDate(date)
		existing, exists := byDate[key]
		if !exists || flowWeight(day.Flow) > flowWeight(existing.Flow) {
			byDate[key] = SegmentDay{Date: date, Flow: day.Flow}
		}
	}

	sorted := make([]SegmentDay, 0, len(byDate))
	for _, day := range byDate {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}
