package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByUser(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	query := repo.database.Where("user_id = ?", userID).Order("start_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListAllByUser(userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("start_date ASC, id ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListByStartRange(userID uint, fromStart time.Time, toEnd time.Time) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, fromStart, toEnd).
		Order("start_date DESC, id DESC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListWithCycleLength(userID uint, limit int) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	query := repo.database.
		Where("user_id = ? AND cycle_length IS NOT NULL", userID).
		Order("start_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListRecentCycleLengths(userID uint, minLength int, maxLength int, limit int) ([]int, error) {
	lengths := make([]int, 0)
	query := repo.database.Model(&models.Cycle{}).
		Where("user_id = ? AND cycle_length IS NOT NULL AND cycle_length BETWEEN ? AND ?", userID, minLength, maxLength).
		Order("start_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Pluck("cycle_length", &lengths).Error; err != nil {
		return nil, err
	}
	return lengths, nil
}

func (repo *CycleRepository) FindByIDForUser(cycleID uint, userID uint) (models.Cycle, bool, error) {
	cycle := models.Cycle{}
	if err := repo.database.Where("id = ? AND user_id = ?", cycleID, userID).First(&cycle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cycle{}, false, nil
		}
		return models.Cycle{}, false, err
	}
	return cycle, true, nil
}

func (repo *CycleRepository) FindLatest(userID uint) (models.Cycle, bool, error) {
	cycle := models.Cycle{}
	result := repo.database.Where("user_id = ?", userID).Order("start_date DESC, id DESC").Limit(1).Find(&cycle)
	if result.Error != nil {
		return models.Cycle{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Cycle{}, false, nil
	}
	return cycle, true, nil
}

func (repo *CycleRepository) ExistsByUserAndStartRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Cycle{}).
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CycleRepository) Create(cycle *models.Cycle) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

// Delete removes the cycle together with its days.
func (repo *CycleRepository) Delete(cycle *models.Cycle) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cycle_id = ?", cycle.ID).Delete(&models.CycleDay{}).Error; err != nil {
			return err
		}
		return tx.Delete(cycle).Error
	})
}

// ApplyPlan writes a reconciliation result for one user atomically: deletes
// first, then updates, then inserts. Deleted cycles lose their days too. Only
// the derived columns of updated cycles are written.
func (repo *CycleRepository) ApplyPlan(userID uint, deleteIDs []uint, updates []models.Cycle, inserts []models.Cycle) error {
	if len(deleteIDs) == 0 && len(updates) == 0 && len(inserts) == 0 {
		return nil
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		if len(deleteIDs) > 0 {
			if err := tx.Where("cycle_id IN ?", deleteIDs).Delete(&models.CycleDay{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ? AND id IN ?", userID, deleteIDs).Delete(&models.Cycle{}).Error; err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		for _, update := range updates {
			if err := tx.Model(&models.Cycle{}).
				Where("id = ? AND user_id = ?", update.ID, userID).
				Updates(map[string]any{
					"end_date":      update.EndDate,
					"cycle_length":  update.CycleLength,
					"period_length": update.PeriodLength,
					"updated_at":    now,
				}).Error; err != nil {
				return err
			}
		}

		for index := range inserts {
			inserts[index].UserID = userID
			if err := tx.Create(&inserts[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *CycleRepository) ListDays(cycleID uint) ([]models.CycleDay, error) {
	days := make([]models.CycleDay, 0)
	if err := repo.database.Where("cycle_id = ?", cycleID).Order("date ASC, id ASC").Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (repo *CycleRepository) FindDay(cycleID uint, dayID uint) (models.CycleDay, bool, error) {
	day := models.CycleDay{}
	if err := repo.database.Where("id = ? AND cycle_id = ?", dayID, cycleID).First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CycleDay{}, false, nil
		}
		return models.CycleDay{}, false, err
	}
	return day, true, nil
}

func (repo *CycleRepository) FindDayByDayRange(cycleID uint, dayStart time.Time, dayEnd time.Time) (models.CycleDay, bool, error) {
	day := models.CycleDay{}
	result := repo.database.
		Where("cycle_id = ? AND date >= ? AND date < ?", cycleID, dayStart, dayEnd).
		Limit(1).
		Find(&day)
	if result.Error != nil {
		return models.CycleDay{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleDay{}, false, nil
	}
	return day, true, nil
}

func (repo *CycleRepository) CreateDay(day *models.CycleDay) error {
	return repo.database.Create(day).Error
}

func (repo *CycleRepository) SaveDay(day *models.CycleDay) error {
	return repo.database.Save(day).Error
}

func (repo *CycleRepository) DeleteDay(day *models.CycleDay) error {
	return repo.database.Delete(day).Error
}
