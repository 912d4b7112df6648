package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/models"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) UpsertSymptomLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload symptomLogPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.symptomService.Upsert(user.ID, services.SymptomLogInput{
		Date:        payload.Date,
		Symptoms:    payload.Symptoms,
		SleepHours:  payload.SleepHours,
		StressLevel: payload.StressLevel,
		Notes:       payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to save symptom log")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Symptoms logged successfully",
		"log":     entry,
	})
}

// ListSymptomLogs returns the inclusive date range when both bounds are given,
// otherwise the most recent logs.
func (handler *Handler) ListSymptomLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var (
		logs []models.SymptomLog
		err  error
	)
	startDate := strings.TrimSpace(c.Query("startDate"))
	endDate := strings.TrimSpace(c.Query("endDate"))
	if startDate != "" && endDate != "" {
		logs, err = handler.symptomService.ListRange(user.ID, startDate, endDate)
	} else {
		logs, err = handler.symptomService.List(user.ID, queryInt(c, "limit"))
	}
	if err != nil {
		return serviceError(c, err, "failed to load symptom logs")
	}
	return c.JSON(fiber.Map{"logs": logs})
}

func (handler *Handler) SymptomLogByDate(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.symptomService.FindByDate(user.ID, c.Params("date"))
	if err != nil {
		return serviceError(c, err, "failed to load symptom log")
	}
	return c.JSON(fiber.Map{"log": entry})
}

func (handler *Handler) LatestSymptomLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.symptomService.Latest(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load symptom log")
	}
	return c.JSON(fiber.Map{"log": entry})
}

func (handler *Handler) SymptomSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.symptomService.Summary(user.ID, queryInt(c, "days"))
	if err != nil {
		return serviceError(c, err, "failed to load symptom stats")
	}
	return c.JSON(fiber.Map{"stats": summary})
}

func (handler *Handler) UpdateSymptomLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	logID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload symptomLogPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, err := handler.symptomService.Update(user.ID, logID, services.SymptomLogPatch{
		Symptoms:    payload.Symptoms,
		SleepHours:  payload.SleepHours,
		StressLevel: payload.StressLevel,
		Notes:       payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to update symptom log")
	}
	return c.JSON(fiber.Map{
		"message": "Log updated successfully",
		"log":     entry,
	})
}

func (handler *Handler) DeleteSymptomLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	logID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.symptomService.Delete(user.ID, logID); err != nil {
		return serviceError(c, err, "failed to delete symptom log")
	}
	return c.JSON(fiber.Map{"message": "Log deleted successfully"})
}
