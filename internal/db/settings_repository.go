package db

import (
	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/gorm"
)

type HealthMetricsRepository struct {
	database *gorm.DB
}

func NewHealthMetricsRepository(database *gorm.DB) *HealthMetricsRepository {
	return &HealthMetricsRepository{database: database}
}

func (repo *HealthMetricsRepository) FindByUser(userID uint) (models.HealthMetrics, bool, error) {
	metrics := models.HealthMetrics{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&metrics)
	if result.Error != nil {
		return models.HealthMetrics{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HealthMetrics{}, false, nil
	}
	return metrics, true, nil
}

func (repo *HealthMetricsRepository) Save(metrics *models.HealthMetrics) error {
	return repo.database.Save(metrics).Error
}

func (repo *HealthMetricsRepository) DeleteByUser(userID uint) (bool, error) {
	result := repo.database.Where("user_id = ?", userID).Delete(&models.HealthMetrics{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type NotificationSettingsRepository struct {
	database *gorm.DB
}

func NewNotificationSettingsRepository(database *gorm.DB) *NotificationSettingsRepository {
	return &NotificationSettingsRepository{database: database}
}

func (repo *NotificationSettingsRepository) FindByUser(userID uint) (models.NotificationSettings, bool, error) {
	settings := models.NotificationSettings{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.NotificationSettings{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.NotificationSettings{}, false, nil
	}
	return settings, true, nil
}

func (repo *NotificationSettingsRepository) Save(settings *models.NotificationSettings) error {
	return repo.database.Save(settings).Error
}
