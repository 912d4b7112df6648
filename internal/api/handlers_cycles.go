package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.cycleService.List(user.ID, queryInt(c, "limit"))
	if err != nil {
		return serviceError(c, err, "failed to load cycles")
	}
	return c.JSON(fiber.Map{"cycles": cycles})
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload cyclePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	cycle, err := handler.cycleService.CreateManual(user.ID, services.ManualCycleInput{
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
		Flow:      payload.Flow,
		Notes:     payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to log cycle")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Cycle logged successfully",
		"cycle":   cycle,
	})
}

func (handler *Handler) LatestCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycle, found, err := handler.cycleService.Latest(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load cycle")
	}
	if !found {
		return c.JSON(fiber.Map{"cycle": nil, "message": "No cycles logged yet"})
	}
	return c.JSON(fiber.Map{"cycle": cycle})
}

func (handler *Handler) CycleStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.cycleService.AverageCycleLength(user.ID, queryInt(c, "limit"))
	if err != nil {
		return serviceError(c, err, "failed to load cycle stats")
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (handler *Handler) CyclesInRange(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.cycleService.ListByDateRange(user.ID, c.Query("from"), c.Query("to"))
	if err != nil {
		return serviceError(c, err, "failed to load cycles")
	}
	return c.JSON(fiber.Map{"cycles": cycles})
}

func (handler *Handler) GetCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	cycle, err := handler.cycleService.Get(user.ID, cycleID)
	if err != nil {
		return serviceError(c, err, "failed to load cycle")
	}
	return c.JSON(fiber.Map{"cycle": cycle})
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload cyclePatchPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	cycle, err := handler.cycleService.Update(user.ID, cycleID, services.CyclePatch{
		EndDate: payload.EndDate,
		Flow:    payload.Flow,
		Notes:   payload.Notes,
	})
	if err != nil {
		return serviceError(c, err, "failed to update cycle")
	}
	return c.JSON(fiber.Map{
		"message": "Cycle updated successfully",
		"cycle":   cycle,
	})
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	cycleID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := handler.cycleService.Delete(user.ID, cycleID); err != nil {
		return serviceError(c, err, "failed to delete cycle")
	}
	return c.JSON(fiber.Map{"message": "Cycle deleted successfully"})
}
