package models

import (
	"time"

	"gorm.io/datatypes"
)

type SymptomLog struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"not null;uniqueIndex:uidx_symptom_logs_user_date" json:"user_id"`
	Date        time.Time         `gorm:"type:date;not null;uniqueIndex:uidx_symptom_logs_user_date" json:"date"`
	Symptoms    datatypes.JSONMap `json:"symptoms"`
	SleepHours  *float64          `json:"sleep_hours"`
	StressLevel *int              `json:"stress_level"`
	Notes       string            `json:"notes"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func DefaultSymptomScores() map[string]any {
	return map[string]any{
		"cramps":   0,
		"mood":     3,
		"energy":   3,
		"headache": 0,
		"bloating": 0,
	}
}
