package db

import (
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ListIDs() ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.User{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) TouchLastLogin(userID uint, at time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
}

func (repo *UserRepository) UpdateName(userID uint, name string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("name", name).Error
}

func (repo *UserRepository) UpdatePasswordHash(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (repo *UserRepository) CountOwnedRecords(userID uint) (models.AccountStats, error) {
	stats := models.AccountStats{}
	if err := repo.database.Model(&models.Cycle{}).Where("user_id = ?", userID).Count(&stats.TotalCycles).Error; err != nil {
		return models.AccountStats{}, err
	}
	if err := repo.database.Model(&models.PeriodDay{}).Where("user_id = ?", userID).Count(&stats.TotalPeriodDays).Error; err != nil {
		return models.AccountStats{}, err
	}
	if err := repo.database.Model(&models.SymptomLog{}).Where("user_id = ?", userID).Count(&stats.TotalSymptomLogs).Error; err != nil {
		return models.AccountStats{}, err
	}
	return stats, nil
}

// DeleteAccountAndRelatedData removes every owned row and then the user in one
// transaction.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cycle_id IN (SELECT id FROM cycles WHERE user_id = ?)", userID).Delete(&models.CycleDay{}).Error; err != nil {
			return err
		}
		owned := []any{
			&models.Cycle{},
			&models.PeriodDay{},
			&models.SymptomLog{},
			&models.HealthMetrics{},
			&models.NotificationSettings{},
			&models.AIInsight{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
