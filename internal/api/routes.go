package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Patch("", handler.UpdateProfile)
	profile.Post("/onboarded", handler.SetOnboarded)
	profile.Delete("/data", handler.ClearAllData)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/today", handler.CycleToday)
	cycle.Get("/forecast", handler.CycleForecast)
	cycle.Get("/next-period", handler.CycleNextPeriod)
	cycle.Get("/phases/:phase", handler.PhaseDetails)
	cycle.Get("/task-categories", handler.TaskCategories)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.LogPeriodStart)
	periods.Patch("/:id", handler.LogPeriodEnd)

	energy := api.Group("/energy", handler.AuthRequired)
	energy.Get("", handler.ListEnergy)
	energy.Post("", handler.LogEnergy)
	energy.Get("/today", handler.TodayEnergy)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Post("", handler.LogSymptoms)

	goals := api.Group("/goals", handler.AuthRequired)
	goals.Get("", handler.ListGoals)
	goals.Post("", handler.CreateGoal)
	goals.Patch("/:id", handler.UpdateGoal)
	goals.Post("/:id/tasks", handler.AddGoalTask)
	goals.Post("/:id/tasks/:taskID/complete", handler.CompleteGoalTask)

	api.Get("/insights", handler.AuthRequired, handler.Insights)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
