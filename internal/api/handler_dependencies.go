package api

import (
	"github.com/terraincognita07/solaris/internal/db"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) withDependencies(repositories *db.Repositories, settings Settings) *Handler {
	handler.authService = services.NewAuthService(repositories.Users)
	if settings.PasswordHashCost > 0 {
		handler.authService.WithHashCost(settings.PasswordHashCost)
	}
	handler.accountService = services.NewAccountService(repositories.Users)
	if settings.PasswordHashCost > 0 {
		handler.accountService.WithHashCost(settings.PasswordHashCost)
	}

	deriver := services.NewCycleDeriver(repositories.PeriodDays, repositories.Cycles, settings.Segment, settings.Location).
		WithRecorder(settings.Derivations)
	handler.periodDayService = services.NewPeriodDayService(repositories.PeriodDays, deriver)
	handler.cycleService = services.NewCycleService(repositories.Cycles, settings.Stats)
	handler.symptomService = services.NewSymptomLogService(repositories.SymptomLogs, settings.Location)
	handler.healthService = services.NewHealthMetricsService(repositories.HealthMetrics, settings.Location)
	handler.notificationService = services.NewNotificationSettingsService(repositories.NotificationSettings)
	handler.insightsService = services.NewInsightsService(
		handler.cycleService,
		repositories.SymptomLogs,
		repositories.HealthMetrics,
		repositories.Insights,
		settings.Analyzer,
		settings.Location,
	).WithRecorder(settings.Analyses)
	handler.exportService = services.NewExportService(repositories.PeriodDays, repositories.SymptomLogs)
	return handler
}
