package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("invalid from date")
	ErrExportToDateInvalid   = errors.New("invalid to date")
	ErrExportRangeInvalid    = errors.New("invalid range")
)

// ParseExportRange reads optional inclusive bounds. A blank bound leaves that
// side of the range open.
func ParseExportRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	var from *time.Time
	if strings.TrimSpace(rawFrom) != "" {
		parsed, err := ParseCalendarDate(rawFrom)
		if err != nil {
			return nil, nil, ErrExportFromDateInvalid
		}
		from = &parsed
	}

	var to *time.Time
	if strings.TrimSpace(rawTo) != "" {
		parsed, err := ParseCalendarDate(rawTo)
		if err != nil {
			return nil, nil, ErrExportToDateInvalid
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrExportRangeInvalid
	}
	return from, to, nil
}

func inExportRange(date time.Time, from *time.Time, to *time.Time) bool {
	day := CalendarDate(date)
	if from != nil && day.Before(*from) {
		return false
	}
	if to != nil && day.After(*to) {
		return false
	}
	return true
}
