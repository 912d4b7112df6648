package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/gorm"
)

type PeriodDayRepository struct {
	database *gorm.DB
}

func NewPeriodDayRepository(database *gorm.DB) *PeriodDayRepository {
	return &PeriodDayRepository{database: database}
}

func (repo *PeriodDayRepository) ListByUser(userID uint) ([]models.PeriodDay, error) {
	days := make([]models.PeriodDay, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *PeriodDayRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PeriodDay, bool, error) {
	entry := models.PeriodDay{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("id ASC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.PeriodDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PeriodDay{}, false, nil
	}
	return entry, true, nil
}

func (repo *PeriodDayRepository) FindByIDForUser(dayID uint, userID uint) (models.PeriodDay, bool, error) {
	entry := models.PeriodDay{}
	if err := repo.database.Where("id = ? AND user_id = ?", dayID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PeriodDay{}, false, nil
		}
		return models.PeriodDay{}, false, err
	}
	return entry, true, nil
}

func (repo *PeriodDayRepository) Create(entry *models.PeriodDay) error {
	return repo.database.Create(entry).Error
}

func (repo *PeriodDayRepository) Save(entry *models.PeriodDay) error {
	return repo.database.Save(entry).Error
}

func (repo *PeriodDayRepository) DeleteByIDForUser(dayID uint, userID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", dayID, userID).Delete(&models.PeriodDay{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
