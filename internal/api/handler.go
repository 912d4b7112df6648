package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/solaris/internal/db"
	"github.com/terraincognita07/solaris/internal/services"
	"gorm.io/gorm"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

// Settings carries everything the handler needs besides the database.
type Settings struct {
	SecretKey        string
	Location         *time.Location
	Segment          services.SegmentOptions
	Stats            services.CycleStatsOptions
	Analyzer         services.Analyzer
	Derivations      services.DerivationRecorder
	Analyses         services.AnalysisRecorder
	PasswordHashCost int
}

type Handler struct {
	secretKey     []byte
	location      *time.Location
	loginThrottle *loginThrottle
	now           func() time.Time

	authService         *services.AuthService
	accountService      *services.AccountService
	periodDayService    *services.PeriodDayService
	cycleService        *services.CycleService
	symptomService      *services.SymptomLogService
	healthService       *services.HealthMetricsService
	notificationService *services.NotificationSettingsService
	insightsService     *services.InsightsService
	exportService       *services.ExportService
}

func NewHandler(database *gorm.DB, settings Settings) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if settings.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}

	handler := &Handler{
		secretKey:     []byte(settings.SecretKey),
		location:      settings.Location,
		loginThrottle: newLoginThrottle(loginAttemptLimit, loginAttemptWindow),
		now:           time.Now,
	}
	return handler.withDependencies(db.NewRepositories(database), settings), nil
}
