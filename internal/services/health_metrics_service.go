package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

var (
	ErrHealthMetricsNotFound      = errors.New("no health metrics found")
	ErrHealthMetricsIncomplete    = errors.New("birthdate, height and weight are required")
	ErrInvalidHealthMeasurement   = errors.New("invalid health measurement")
	ErrHealthMetricsLoadFailed    = errors.New("load health metrics failed")
	ErrHealthMetricsPersistFailed = errors.New("persist health metrics failed")
)

type HealthMetricsRepository interface {
	FindByUser(userID uint) (models.HealthMetrics, bool, error)
	Save(metrics *models.HealthMetrics) error
	DeleteByUser(userID uint) (bool, error)
}

type HealthMetricsInput struct {
	Birthdate string
	Height    float64
	Weight    float64
	UseMetric *bool
}

type HealthMetricsService struct {
	metrics  HealthMetricsRepository
	location *time.Location
	now      func() time.Time
}

func NewHealthMetricsService(metrics HealthMetricsRepository, location *time.Location) *HealthMetricsService {
	if location == nil {
		location = time.UTC
	}
	return &HealthMetricsService{
		metrics:  metrics,
		location: location,
		now:      time.Now,
	}
}

func (service *HealthMetricsService) Get(userID uint) (models.HealthMetrics, error) {
	metrics, found, err := service.metrics.FindByUser(userID)
	if err != nil {
		return models.HealthMetrics{}, fmt.Errorf("%w: %v", ErrHealthMetricsLoadFailed, err)
	}
	if !found {
		return models.HealthMetrics{}, ErrHealthMetricsNotFound
	}
	return metrics, nil
}

// Save keeps a single row per user. UseMetric defaults to true.
func (service *HealthMetricsService) Save(userID uint, input HealthMetricsInput) (models.HealthMetrics, error) {
	if input.Birthdate == "" || input.Height == 0 || input.Weight == 0 {
		return models.HealthMetrics{}, ErrHealthMetricsIncomplete
	}
	birthdate, err := ParseCalendarDate(input.Birthdate)
	if err != nil {
		return models.HealthMetrics{}, err
	}
	if input.Height < 0 || input.Weight < 0 || birthdate.After(service.Today()) {
		return models.HealthMetrics{}, ErrInvalidHealthMeasurement
	}

	metrics, found, err := service.metrics.FindByUser(userID)
	if err != nil {
		return models.HealthMetrics{}, fmt.Errorf("%w: %v", ErrHealthMetricsLoadFailed, err)
	}
	if !found {
		metrics = models.HealthMetrics{UserID: userID}
	}
	metrics.Birthdate = birthdate
	metrics.Height = input.Height
	metrics.Weight = input.Weight
	metrics.UseMetric = input.UseMetric == nil || *input.UseMetric

	if err := service.metrics.Save(&metrics); err != nil {
		return models.HealthMetrics{}, fmt.Errorf("%w: %v", ErrHealthMetricsPersistFailed, err)
	}
	return metrics, nil
}

func (service *HealthMetricsService) Delete(userID uint) error {
	if _, err := service.metrics.DeleteByUser(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrHealthMetricsPersistFailed, err)
	}
	return nil
}

func (service *HealthMetricsService) Today() time.Time {
	return TodayAt(service.now(), service.location)
}
