package db

import "gorm.io/gorm"

type Repositories struct {
	Users                *UserRepository
	PeriodDays           *PeriodDayRepository
	Cycles               *CycleRepository
	SymptomLogs          *SymptomLogRepository
	HealthMetrics        *HealthMetricsRepository
	NotificationSettings *NotificationSettingsRepository
	Insights             *InsightRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:                NewUserRepository(database),
		PeriodDays:           NewPeriodDayRepository(database),
		Cycles:               NewCycleRepository(database),
		SymptomLogs:          NewSymptomLogRepository(database),
		HealthMetrics:        NewHealthMetricsRepository(database),
		NotificationSettings: NewNotificationSettingsRepository(database),
		Insights:             NewInsightRepository(database),
	}
}
