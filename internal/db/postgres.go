package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects to PostgreSQL. The embedded SQL migrations are SQLite
// dialect, so the schema is maintained from the models instead.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres driver")
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(schemaModels()...); err != nil {
		return nil, fmt.Errorf("auto migrate postgres: %w", err)
	}
	return database, nil
}

func schemaModels() []any {
	return []any{
		&models.User{},
		&models.PeriodDay{},
		&models.Cycle{},
		&models.CycleDay{},
		&models.SymptomLog{},
		&models.HealthMetrics{},
		&models.NotificationSettings{},
		&models.AIInsight{},
	}
}
