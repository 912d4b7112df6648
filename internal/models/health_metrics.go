package models

import "time"

type HealthMetrics struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Birthdate time.Time `gorm:"type:date;not null" json:"birthdate"`
	Height    float64   `gorm:"not null" json:"height"`
	Weight    float64   `gorm:"not null" json:"weight"`
	UseMetric bool      `gorm:"not null" json:"use_metric"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HealthMetrics) TableName() string {
	return "health_metrics"
}

// AgeAt returns full years between the birthdate and day.
func (metrics HealthMetrics) AgeAt(day time.Time) int {
	age := day.Year() - metrics.Birthdate.Year()
	if day.Month() < metrics.Birthdate.Month() ||
		(day.Month() == metrics.Birthdate.Month() && day.Day() < metrics.Birthdate.Day()) {
		age--
	}
	return age
}
