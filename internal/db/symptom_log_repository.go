package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) ListRecent(userID uint, limit int) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	query := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) ListByUserRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.SymptomLog, error) {
	logs := make([]models.SymptomLog, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, fromStart, toEnd).
		Order("date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *SymptomLogRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.SymptomLog, bool, error) {
	entry := models.SymptomLog{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.SymptomLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *SymptomLogRepository) FindLatest(userID uint) (models.SymptomLog, bool, error) {
	entry := models.SymptomLog{}
	result := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC").Limit(1).Find(&entry)
	if result.Error != nil {
		return models.SymptomLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *SymptomLogRepository) FindByIDForUser(logID uint, userID uint) (models.SymptomLog, bool, error) {
	entry := models.SymptomLog{}
	if err := repo.database.Where("id = ? AND user_id = ?", logID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.SymptomLog{}, false, nil
		}
		return models.SymptomLog{}, false, err
	}
	return entry, true, nil
}

func (repo *SymptomLogRepository) Create(entry *models.SymptomLog) error {
	return repo.database.Create(entry).Error
}

func (repo *SymptomLogRepository) Save(entry *models.SymptomLog) error {
	return repo.database.Save(entry).Error
}

func (repo *SymptomLogRepository) DeleteByIDForUser(logID uint, userID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", logID, userID).Delete(&models.SymptomLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
