package models

import "time"

type NotificationSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	UserID             uint      `gorm:"not null;uniqueIndex" json:"-"`
	PeriodReminders    bool      `gorm:"not null;default:false" json:"periodReminders"`
	OvulationReminders bool      `gorm:"not null;default:false" json:"ovulationReminders"`
	DailyReminders     bool      `gorm:"not null;default:false" json:"dailyReminders"`
	InsightsReminders  bool      `gorm:"not null;default:false" json:"insightsReminders"`
	AnomalyReminders   bool      `gorm:"not null;default:false" json:"anomalyReminders"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

func (NotificationSettings) TableName() string {
	return "notification_settings"
}
