package models

import "time"

const (
	CycleSourceDerived = "derived"
	CycleSourceManual  = "manual"
)

// Cycle is rebuilt from period days on every period-day write. Rows with
// Source == CycleSourceManual were entered by the user and are never removed
// by re-derivation.
type Cycle struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:uidx_cycles_user_start" json:"user_id"`
	StartDate    time.Time  `gorm:"type:date;not null;uniqueIndex:uidx_cycles_user_start" json:"start_date"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date"`
	CycleLength  *int       `json:"cycle_length"`
	PeriodLength *int       `json:"period_length"`
	Flow         string     `gorm:"not null;default:medium" json:"flow"`
	Notes        string     `json:"notes"`
	Source       string     `gorm:"not null;default:derived" json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (cycle Cycle) IsOpen() bool {
	return cycle.EndDate == nil
}

type CycleDay struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CycleID   uint      `gorm:"not null;uniqueIndex:uidx_cycle_days_cycle_date" json:"cycle_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uidx_cycle_days_cycle_date" json:"date"`
	Flow      string    `gorm:"not null;default:medium" json:"flow"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
