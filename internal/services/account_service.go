package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/solaris/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrPasswordChangeInvalidInput = errors.New("current, new and confirm passwords are required")
	ErrPasswordMismatch           = errors.New("password mismatch")
	ErrInvalidCurrentPassword     = errors.New("invalid current password")
	ErrNewPasswordMustDiffer      = errors.New("new password must differ")
	ErrAccountPasswordRequired    = errors.New("password is required")
	ErrAccountPersistFailed       = errors.New("persist account failed")
)

type AccountUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateName(userID uint, name string) error
	UpdatePasswordHash(userID uint, passwordHash string) error
	CountOwnedRecords(userID uint) (models.AccountStats, error)
	DeleteAccountAndRelatedData(userID uint) error
}

type AccountService struct {
	users AccountUserRepository
	cost  int
}

func NewAccountService(users AccountUserRepository) *AccountService {
	return &AccountService{users: users, cost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost, for tests only.
func (service *AccountService) WithHashCost(cost int) *AccountService {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		service.cost = cost
	}
	return service
}

func (service *AccountService) UpdateProfile(userID uint, nameRaw string) (models.User, error) {
	name, err := NormalizeDisplayName(nameRaw)
	if err != nil {
		return models.User{}, err
	}
	user, err := service.loadUser(userID)
	if err != nil {
		return models.User{}, err
	}
	if err := service.users.UpdateName(userID, name); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAccountPersistFailed, err)
	}
	user.Name = name
	return user, nil
}

func ValidatePasswordChange(passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	confirmPassword = strings.TrimSpace(confirmPassword)

	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCurrentPassword
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	return ValidatePasswordStrength(newPassword)
}

func (service *AccountService) ChangePassword(userID uint, currentPassword string, newPassword string, confirmPassword string) error {
	user, err := service.loadUser(userID)
	if err != nil {
		return err
	}
	if err := ValidatePasswordChange(user.PasswordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), service.cost)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAccountPersistFailed, err)
	}
	if err := service.users.UpdatePasswordHash(userID, string(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountPersistFailed, err)
	}
	return nil
}

func (service *AccountService) Stats(userID uint) (models.AccountStats, error) {
	stats, err := service.users.CountOwnedRecords(userID)
	if err != nil {
		return models.AccountStats{}, fmt.Errorf("%w: %v", ErrAuthLoadFailed, err)
	}
	return stats, nil
}

// DeleteAccount requires the current password and removes the user together
// with everything they own.
func (service *AccountService) DeleteAccount(userID uint, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountPasswordRequired
	}
	user, err := service.loadUser(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCurrentPassword
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrAccountPersistFailed, err)
	}
	return nil
}

func (service *AccountService) loadUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthLoadFailed, err)
	}
	return user, nil
}
