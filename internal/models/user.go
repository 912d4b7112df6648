package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Name         string     `json:"name"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// AccountStats counts the records a user owns.
type AccountStats struct {
	TotalCycles      int64 `json:"totalCycles"`
	TotalPeriodDays  int64 `json:"totalPeriodDays"`
	TotalSymptomLogs int64 `json:"totalSymptomLogs"`
}
