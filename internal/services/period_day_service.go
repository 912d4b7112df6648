package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/terraincognita07/solaris/internal/models"
)

var (
	ErrPeriodDayNotFound      = errors.New("period day not found")
	ErrPeriodDayFlowRequired  = errors.New("period day flow is required")
	ErrNoPeriodDayChanges     = errors.New("no fields to update")
	ErrPeriodDayLoadFailed    = errors.New("load period day failed")
	ErrPeriodDayPersistFailed = errors.New("persist period day failed")
)

type PeriodDayRepository interface {
	ListByUser(userID uint) ([]models.PeriodDay, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.PeriodDay, bool, error)
	FindByIDForUser(dayID uint, userID uint) (models.PeriodDay, bool, error)
	Create(entry *models.PeriodDay) error
	Save(entry *models.PeriodDay) error
	DeleteByIDForUser(dayID uint, userID uint) (bool, error)
}

type PeriodDayChangeListener interface {
	OnPeriodDayChanged(userID uint) error
}

type PeriodDayInput struct {
	Date  string
	Flow  string
	Notes *string
}

type PeriodDayPatch struct {
	Flow  *string
	Notes *string
}

type PeriodDayService struct {
	days     PeriodDayRepository
	listener PeriodDayChangeListener
}

func NewPeriodDayService(days PeriodDayRepository, listener PeriodDayChangeListener) *PeriodDayService {
	return &PeriodDayService{
		days:     days,
		listener: listener,
	}
}

func (service *PeriodDayService) List(userID uint) ([]models.PeriodDay, error) {
	return service.days.ListByUser(userID)
}

// Upsert records flow for a calendar date. Logging a date that already exists
// updates that row instead of failing.
func (service *PeriodDayService) Upsert(userID uint, input PeriodDayInput) (models.PeriodDay, error) {
	day, err := ParseCalendarDate(input.Date)
	if err != nil {
		return models.PeriodDay{}, err
	}
	if input.Flow == "" {
		return models.PeriodDay{}, ErrPeriodDayFlowRequired
	}
	flow, err := NormalizeDayFlow(input.Flow)
	if err != nil {
		return models.PeriodDay{}, err
	}

	dayStart, dayEnd := DayRange(day, time.UTC)
	entry, found, err := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.PeriodDay{}, fmt.Errorf("%w: %v", ErrPeriodDayLoadFailed, err)
	}

	if !found {
		entry = models.PeriodDay{
			UserID: userID,
			Date:   dayStart,
			Flow:   flow,
		}
		if input.Notes != nil {
			entry.Notes = TrimDayNotes(*input.Notes)
		}
		if err := service.days.Create(&entry); err != nil {
			// A concurrent request may have inserted the same date first.
			existing, foundAfter, findErr := service.days.FindByUserAndDayRange(userID, dayStart, dayEnd)
			if findErr != nil || !foundAfter {
				return models.PeriodDay{}, fmt.Errorf("%w: %v", ErrPeriodDayPersistFailed, err)
			}
			entry = existing
			found = true
		}
	}

	if found {
		entry.Flow = flow
		if input.Notes != nil {
			entry.Notes = TrimDayNotes(*input.Notes)
		}
		if err := service.days.Save(&entry); err != nil {
			return models.PeriodDay{}, fmt.Errorf("%w: %v", ErrPeriodDayPersistFailed, err)
		}
	}

	service.notifyChanged(userID)
	return entry, nil
}

func (service *PeriodDayService) Update(userID uint, dayID uint, patch PeriodDayPatch) (models.PeriodDay, error) {
	if patch.Flow == nil && patch.Notes == nil {
		return models.PeriodDay{}, ErrNoPeriodDayChanges
	}

	var flow string
	if patch.Flow != nil {
		normalized, err := NormalizeDayFlow(*patch.Flow)
		if err != nil {
			return models.PeriodDay{}, err
		}
		flow = normalized
	}

	entry, found, err := service.days.FindByIDForUser(dayID, userID)
	if err != nil {
		return models.PeriodDay{}, fmt.Errorf("%w: %v", ErrPeriodDayLoadFailed, err)
	}
	if !found {
		return models.PeriodDay{}, ErrPeriodDayNotFound
	}

	if patch.Flow != nil {
		entry.Flow = flow
	}
	if patch.Notes != nil {
		entry.Notes = TrimDayNotes(*patch.Notes)
	}
	if err := service.days.Save(&entry); err != nil {
		return models.PeriodDay{}, fmt.Errorf("%w: %v", ErrPeriodDayPersistFailed, err)
	}

	service.notifyChanged(userID)
	return entry, nil
}

func (service *PeriodDayService) Delete(userID uint, dayID uint) error {
	deleted, err := service.days.DeleteByIDForUser(dayID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPeriodDayPersistFailed, err)
	}
	if !deleted {
		return ErrPeriodDayNotFound
	}

	service.notifyChanged(userID)
	return nil
}

// notifyChanged runs after the write is committed. A failed re-derivation is
// logged and left for the next write to repair.
func (service *PeriodDayService) notifyChanged(userID uint) {
	if service.listener == nil {
		return
	}
	if err := service.listener.OnPeriodDayChanged(userID); err != nil {
		log.Printf("derivation: user %d: %v", userID, err)
	}
}
