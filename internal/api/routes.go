package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Post("/predict", handler.Predict)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Post("/change-password", handler.AuthRequired, handler.ChangePassword)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/profile", handler.GetCycleProfile)
	cycle.Put("/profile", handler.UpdateCycleProfile)
	cycle.Get("/prediction", handler.GetPrediction)
	cycle.Get("/calendar.ics", handler.GetCalendarFeed)

	reference := api.Group("/reference")
	reference.Get("/symptoms", handler.ListSymptoms)
	reference.Get("/symptoms/:id", handler.GetSymptom)
	reference.Get("/advice", handler.ListAdvice)
	reference.Get("/advice/:id", handler.GetAdvice)
	reference.Get("/clinics", handler.ListClinics)
	reference.Get("/clinics/:id", handler.GetClinic)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
