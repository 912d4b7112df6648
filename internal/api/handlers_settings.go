package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/models"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) GetHealthMetrics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	metrics, err := handler.healthService.Get(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load health metrics")
	}
	return c.JSON(fiber.Map{"metrics": handler.healthMetricsView(metrics)})
}

func (handler *Handler) SaveHealthMetrics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload healthMetricsPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	metrics, err := handler.healthService.Save(user.ID, services.HealthMetricsInput{
		Birthdate: payload.Birthdate,
		Height:    payload.Height,
		Weight:    payload.Weight,
		UseMetric: payload.UseMetric,
	})
	if err != nil {
		return serviceError(c, err, "failed to save health metrics")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Health metrics saved successfully",
		"metrics": handler.healthMetricsView(metrics),
	})
}

func (handler *Handler) DeleteHealthMetrics(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.healthService.Delete(user.ID); err != nil {
		return serviceError(c, err, "failed to delete health metrics")
	}
	return c.JSON(fiber.Map{"message": "Health metrics deleted successfully"})
}

func (handler *Handler) healthMetricsView(metrics models.HealthMetrics) fiber.Map {
	return fiber.Map{
		"id":        metrics.ID,
		"birthdate": services.FormatCalendarDate(metrics.Birthdate),
		"height":    metrics.Height,
		"weight":    metrics.Weight,
		"useMetric": metrics.UseMetric,
		"age":       metrics.AgeAt(handler.healthService.Today()),
		"createdAt": metrics.CreatedAt,
		"updatedAt": metrics.UpdatedAt,
	}
}

func (handler *Handler) GetNotificationSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.notificationService.Get(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load notification settings")
	}
	return c.JSON(settings)
}

func (handler *Handler) SaveNotificationSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload notificationSettingsPayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := handler.notificationService.Save(user.ID, services.NotificationSettingsInput{
		PeriodReminders:    payload.PeriodReminders,
		OvulationReminders: payload.OvulationReminders,
		DailyReminders:     payload.DailyReminders,
		InsightsReminders:  payload.InsightsReminders,
		AnomalyReminders:   payload.AnomalyReminders,
	})
	if err != nil {
		return serviceError(c, err, "failed to save notification settings")
	}
	return c.JSON(fiber.Map{
		"message":  "Notification settings saved",
		"settings": settings,
	})
}
