package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/solaris/internal/services"
)

func (handler *Handler) CurrentInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	current, err := handler.insightsService.Current(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load insights")
	}
	return c.JSON(currentInsightsPayload(current))
}

func (handler *Handler) AnalyzeInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	outcome, err := handler.insightsService.Analyze(c.UserContext(), user.ID)
	if err != nil {
		return serviceError(c, err, "failed to analyze cycles")
	}

	payload := fiber.Map{
		"success": outcome.Success,
		"message": outcome.Message,
		"hasData": outcome.HasData,
	}
	for field, value := range outcome.Result {
		payload[field] = value
	}
	if outcome.Prediction != nil {
		payload["prediction"] = outcome.Prediction
	}
	return c.JSON(payload)
}

func (handler *Handler) InsightHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.insightsService.History(user.ID, queryInt(c, "limit"))
	if err != nil {
		return serviceError(c, err, "failed to load insights")
	}
	return c.JSON(fiber.Map{"insights": insights})
}

func (handler *Handler) UnviewedInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	insights, err := handler.insightsService.Unviewed(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load insights")
	}
	return c.JSON(fiber.Map{"insights": insights})
}

func (handler *Handler) MarkInsightViewed(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	insightID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	insight, err := handler.insightsService.MarkViewed(user.ID, insightID)
	if err != nil {
		return serviceError(c, err, "failed to update insight")
	}
	return c.JSON(fiber.Map{
		"message": "Insight marked as viewed",
		"insight": insight,
	})
}

// currentInsightsPayload flattens the remote analysis fields next to the
// computed ones.
func currentInsightsPayload(current services.CurrentInsights) fiber.Map {
	if !current.HasData {
		return fiber.Map{
			"message":      current.Message,
			"currentPhase": current.CurrentPhase,
			"hasData":      false,
		}
	}

	payload := fiber.Map{
		"hasData":          true,
		"currentPhase":     current.CurrentPhase,
		"daysSinceStart":   current.DaysSinceStart,
		"avgCycleLength":   current.AvgCycleLength,
		"latestCycleStart": current.LatestCycleStart,
		"totalCycles":      current.TotalCycles,
		"regularityScore":  current.RegularityScore,
		"prediction":       current.Prediction,
	}
	for field, value := range current.Analysis {
		payload[field] = value
	}
	return payload
}
