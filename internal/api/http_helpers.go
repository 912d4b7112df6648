package api

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

var badRequestErrors = []error{
	services.ErrInvalidDate,
	services.ErrInvalidDateRange,
	services.ErrInvalidDayFlow,
	services.ErrPeriodDayFlowRequired,
	services.ErrNoPeriodDayChanges,
	services.ErrCycleStartRequired,
	services.ErrCycleEndBeforeStart,
	services.ErrNoCycleChanges,
	services.ErrInvalidSymptomValue,
	services.ErrInvalidSleepHours,
	services.ErrInvalidStressLevel,
	services.ErrNoSymptomChanges,
	services.ErrHealthMetricsIncomplete,
	services.ErrInvalidHealthMeasurement,
	services.ErrAuthNameRequired,
	services.ErrWeakPassword,
	services.ErrPasswordChangeInvalidInput,
	services.ErrPasswordMismatch,
	services.ErrNewPasswordMustDiffer,
	services.ErrAccountPasswordRequired,
}

var notFoundErrors = map[error]string{
	services.ErrPeriodDayNotFound:     "Period day not found",
	services.ErrCycleNotFound:         "Cycle not found",
	services.ErrCycleDayNotFound:      "Cycle day not found",
	services.ErrSymptomLogNotFound:    "Log not found",
	services.ErrHealthMetricsNotFound: "No health metrics found",
	services.ErrInsightNotFound:       "Insight not found",
	services.ErrUserNotFound:          "User not found",
}

// serviceError maps service sentinels onto HTTP statuses. Anything unclassified
// is logged and reported as fallbackMessage with status 500.
func serviceError(c *fiber.Ctx, err error, fallbackMessage string) error {
	for _, candidate := range badRequestErrors {
		if errors.Is(err, candidate) {
			return apiError(c, fiber.StatusBadRequest, candidate.Error())
		}
	}
	for candidate, message := range notFoundErrors {
		if errors.Is(err, candidate) {
			return apiError(c, fiber.StatusNotFound, message)
		}
	}
	switch {
	case errors.Is(err, services.ErrCycleConflict), errors.Is(err, services.ErrEmailAlreadyRegistered):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "email and password are required")
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	}

	log.Printf("api: %s %s: %v", c.Method(), c.Path(), err)
	return apiError(c, fiber.StatusInternalServerError, fallbackMessage)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func queryInt(c *fiber.Ctx, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return 0
	}
	return value
}
