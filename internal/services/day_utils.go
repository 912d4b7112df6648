package services

import (
	"errors"
	"math"
	"strings"
	"time"
)

const calendarDateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// CalendarDate keeps the wall-clock date of value and pins it to UTC midnight,
// which is how every stored date is kept.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TodayAt returns the current calendar date as seen in location.
func TodayAt(now time.Time, location *time.Location) time.Time {
	return CalendarDate(DateAtLocation(now, location))
}

func ParseCalendarDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	parsed, err := time.Parse(calendarDateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatCalendarDate(value time.Time) string {
	return CalendarDate(value).Format(calendarDateLayout)
}

// DaysBetween counts whole calendar days from from to to.
func DaysBetween(from time.Time, to time.Time) int {
	return int(math.Round(CalendarDate(to).Sub(CalendarDate(from)).Hours() / 24))
}

func intPointer(value int) *int {
	return &value
}

func timePointer(value time.Time) *time.Time {
	return &value
}
