package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", handler.Signup)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Put("/profile", handler.AuthRequired, handler.UpdateProfile)
	auth.Put("/password", handler.AuthRequired, handler.ChangePassword)
	auth.Get("/stats", handler.AuthRequired, handler.AccountStats)
	auth.Delete("/account", handler.AuthRequired, handler.DeleteAccount)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	periodDays := api.Group("/period-days", handler.AuthRequired)
	periodDays.Get("", handler.ListPeriodDays)
	periodDays.Post("", handler.UpsertPeriodDay)
	periodDays.Put("/:id", handler.UpdatePeriodDay)
	periodDays.Delete("/:id", handler.DeletePeriodDay)

	// Static segments are registered before /:id so they are not captured as ids.
	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Get("/latest/current", handler.LatestCycle)
	cycles.Get("/stats/average", handler.CycleStats)
	cycles.Get("/range", handler.CyclesInRange)
	cycles.Get("/:id", handler.GetCycle)
	cycles.Put("/:id", handler.UpdateCycle)
	cycles.Delete("/:id", handler.DeleteCycle)
	cycles.Get("/:id/days", handler.ListCycleDays)
	cycles.Post("/:id/days", handler.UpsertCycleDay)
	cycles.Put("/:id/days/:dayId", handler.UpdateCycleDay)
	cycles.Delete("/:id/days/:dayId", handler.DeleteCycleDay)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.ListSymptomLogs)
	symptoms.Post("", handler.UpsertSymptomLog)
	symptoms.Get("/date/:date", handler.SymptomLogByDate)
	symptoms.Get("/latest/current", handler.LatestSymptomLog)
	symptoms.Get("/stats/summary", handler.SymptomSummary)
	symptoms.Put("/:id", handler.UpdateSymptomLog)
	symptoms.Delete("/:id", handler.DeleteSymptomLog)

	health := api.Group("/health", handler.AuthRequired)
	health.Get("/metrics", handler.GetHealthMetrics)
	health.Post("/metrics", handler.SaveHealthMetrics)
	health.Delete("/metrics", handler.DeleteHealthMetrics)

	notifications := api.Group("/notifications", handler.AuthRequired)
	notifications.Get("/settings", handler.GetNotificationSettings)
	notifications.Post("/settings", handler.SaveNotificationSettings)

	insights := api.Group("/insights", handler.AuthRequired)
	insights.Get("/current", handler.CurrentInsights)
	insights.Post("/analyze", handler.AnalyzeInsights)
	insights.Get("/history", handler.InsightHistory)
	insights.Get("/unviewed", handler.UnviewedInsights)
	insights.Put("/:id/viewed", handler.MarkInsightViewed)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
	export.Get("/summary", handler.ExportSummary)
}
