package models

import (
	"time"

	"gorm.io/datatypes"
)

const InsightTypeComprehensive = "comprehensive_analysis"

type AIInsight struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Date            time.Time      `gorm:"not null" json:"date"`
	InsightType     string         `gorm:"not null" json:"insight_type"`
	Prediction      datatypes.JSON `json:"prediction"`
	Anomaly         datatypes.JSON `json:"anomaly"`
	CycleData       datatypes.JSON `json:"cycle_data"`
	ShouldDisplay   bool           `gorm:"not null" json:"should_display"`
	DisplayPriority int            `gorm:"not null;default:0" json:"display_priority"`
	Viewed          bool           `gorm:"not null;default:false" json:"viewed"`
	ViewedAt        *time.Time     `json:"viewed_at"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (AIInsight) TableName() string {
	return "ai_insights"
}
