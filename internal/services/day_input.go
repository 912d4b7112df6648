package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/solaris/internal/models"
)

const MaxDayNotesLength = 2000

var ErrInvalidDayFlow = errors.New("invalid day flow")

func IsValidDayFlow(flow string) bool {
	switch flow {
	case models.FlowNone, models.FlowSpotting, models.FlowLight, models.FlowMedium, models.FlowHeavy:
		return true
	default:
		return false
	}
}

func NormalizeDayFlow(raw string) (string, error) {
	flow := strings.ToLower(strings.TrimSpace(raw))
	if !IsValidDayFlow(flow) {
		return "", ErrInvalidDayFlow
	}
	return flow, nil
}

func TrimDayNotes(value string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= MaxDayNotesLength {
		return value
	}
	return string([]rune(value)[:MaxDayNotesLength])
}

// flowWeight orders flows from lightest to heaviest.
func flowWeight(flow string) int {
	switch flow {
	case models.FlowSpotting:
		return 1
	case models.FlowLight:
		return 2
	case models.FlowMedium:
		return 3
	case models.FlowHeavy:
		return 4
	default:
		return 0
	}
}
