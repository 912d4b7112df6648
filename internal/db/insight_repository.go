package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
	"gorm.io/gorm"
)

type InsightRepository struct {
	database *gorm.DB
}

func NewInsightRepository(database *gorm.DB) *InsightRepository {
	return &InsightRepository{database: database}
}

func (repo *InsightRepository) Create(insight *models.AIInsight) error {
	return repo.database.Create(insight).Error
}

func (repo *InsightRepository) ListRecent(userID uint, limit int) ([]models.AIInsight, error) {
	insights := make([]models.AIInsight, 0)
	query := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (repo *InsightRepository) ListUnviewed(userID uint) ([]models.AIInsight, error) {
	insights := make([]models.AIInsight, 0)
	if err := repo.database.
		Where("user_id = ? AND viewed = ? AND should_display = ?", userID, false, true).
		Order("display_priority DESC, date DESC, id DESC").
		Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (repo *InsightRepository) MarkViewed(insightID uint, userID uint, at time.Time) (bool, error) {
	result := repo.database.Model(&models.AIInsight{}).
		Where("id = ? AND user_id = ?", insightID, userID).
		Updates(map[string]any{"viewed": true, "viewed_at": at})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *InsightRepository) FindByIDForUser(insightID uint, userID uint) (models.AIInsight, bool, error) {
	insight := models.AIInsight{}
	if err := repo.database.Where("id = ? AND user_id = ?", insightID, userID).First(&insight).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AIInsight{}, false, nil
		}
		return models.AIInsight{}, false, err
	}
	return insight, true, nil
}
