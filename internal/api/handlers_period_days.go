package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) ListPeriodDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, err := handler.periodDayService.List(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load period days")
	}
	return c.JSON(fiber.Map{"periodDays": days, "count": len(days)})
}

func (handler *Handler) UpsertPeriodDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload periodDayPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := handler.periodDayService.Upsert(user.ID, services.PeriodDayInput{
		Date:  payload.Date,
		Flow:  payload.Flow,
		Notes: payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to log period day")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Period day logged successfully",
		"periodDay": day,
	})
}

func (handler *Handler) UpdatePeriodDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload periodDayPatchPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := handler.periodDayService.Update(user.ID, dayID, services.PeriodDayPatch{
		Flow:  payload.Flow,
		Notes: payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to update period day")
	}
	return c.JSON(fiber.Map{
		"message":   "Period day updated successfully",
		"periodDay": day,
	})
}

func (handler *Handler) DeletePeriodDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.periodDayService.Delete(user.ID, dayID); err != nil {
		return serviceError(c, err, "failed to delete period day")
	}
	return c.JSON(fiber.Map{"message": "Period day deleted successfully"})
}
