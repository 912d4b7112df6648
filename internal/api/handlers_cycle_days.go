package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) ListCycleDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	days, err := handler.cycleService.ListDays(user.ID, cycleID)
	if err != nil {
		return serviceError(c, err, "failed to load cycle days")
	}
	return c.JSON(fiber.Map{"days": days})
}

func (handler *Handler) UpsertCycleDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload cycleDayPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := handler.cycleService.UpsertDay(user.ID, cycleID, services.CycleDayInput{
		Date:  payload.Date,
		Flow:  payload.Flow,
		Notes: payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to log cycle day")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Cycle day logged successfully",
		"day":     day,
	})
}

func (handler *Handler) UpdateCycleDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, okCycle := parseIDParam(c, "id")
	dayID, okDay := parseIDParam(c, "dayId")
	if !okCycle || !okDay {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload cycleDayPatchPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := handler.cycleService.UpdateDay(user.ID, cycleID, dayID, services.CycleDayPatch{
		Flow:  payload.Flow,
		Notes: payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to update cycle day")
	}
	return c.JSON(fiber.Map{
		"message": "Cycle day updated successfully",
		"day":     day,
	})
}

func (handler *Handler) DeleteCycleDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, okCycle := parseIDParam(c, "id")
	dayID, okDay := parseIDParam(c, "dayId")
	if !okCycle || !okDay {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.cycleService.DeleteDay(user.ID, cycleID, dayID); err != nil {
		return serviceError(c, err, "failed to delete cycle day")
	}
	return c.JSON(fiber.Map{"message": "Cycle day deleted successfully"})
}
