package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/solaris/internal/models"
)

var ErrNotificationSettingsPersistFailed = errors.New("persist notification settings failed")

type NotificationSettingsRepository interface {
	FindByUser(userID uint) (models.NotificationSettings, bool, error)
	Save(settings *models.NotificationSettings) error
}

type NotificationSettingsInput struct {
	PeriodReminders    bool
	OvulationReminders bool
	DailyReminders     bool
	InsightsReminders  bool
	AnomalyReminders   bool
}

type NotificationSettingsService struct {
	settings NotificationSettingsRepository
}

func NewNotificationSettingsService(settings NotificationSettingsRepository) *NotificationSettingsService {
	return &NotificationSettingsService{settings: settings}
}

// Get returns stored settings, or all reminders off when none were saved.
func (service *NotificationSettingsService) Get(userID uint) (models.NotificationSettings, error) {
	settings, found, err := service.settings.FindByUser(userID)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	if !found {
		return models.NotificationSettings{UserID: userID}, nil
	}
	return settings, nil
}

func (service *NotificationSettingsService) Save(userID uint, input NotificationSettingsInput) (models.NotificationSettings, error) {
	settings, found, err := service.settings.FindByUser(userID)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	if !found {
		settings = models.NotificationSettings{UserID: userID}
	}
	settings.PeriodReminders = input.PeriodReminders
	settings.OvulationReminders = input.OvulationReminders
	settings.DailyReminders = input.DailyReminders
	settings.InsightsReminders = input.InsightsReminders
	settings.AnomalyReminders = input.AnomalyReminders

	if err := service.settings.Save(&settings); err != nil {
		return models.NotificationSettings{}, fmt.Errorf("%w: %v", ErrNotificationSettingsPersistFailed, err)
	}
	return settings, nil
}
