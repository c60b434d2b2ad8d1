package api

import "github.com/gofiber/fiber/v2"

const WellnessStreamPath = "/api/wellness/stream"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Post("/password", handler.AuthRequired, handler.ChangePassword)

	account := api.Group("/account", handler.AuthRequired)
	account.Patch("", handler.UpdateAccount)
	account.Delete("", handler.DeleteAccount)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Post("", handler.CreateProfile)
	profile.Put("", handler.SaveProfile)
	profile.Get("/completion", handler.GetProfileCompletion)
	profile.Post("/conditions", handler.AddMedicalCondition)
	profile.Delete("/conditions/:index", handler.RemoveMedicalCondition)
	profile.Post("/allergies", handler.AddAllergy)
	profile.Delete("/allergies/:index", handler.RemoveAllergy)

	contacts := api.Group("/emergency-contacts", handler.AuthRequired)
	contacts.Get("", handler.GetEmergencyContacts)
	contacts.Post("", handler.CreateEmergencyContact)
	contacts.Put("/:id", handler.UpdateEmergencyContact)
	contacts.Delete("/:id", handler.DeleteEmergencyContact)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.GetSymptoms)
	symptoms.Post("", handler.AddSymptom)
	symptoms.Delete("/:id", handler.RemoveSymptom)

	medications := api.Group("/medications", handler.AuthRequired)
	medications.Get("", handler.GetMedications)
	medications.Post("", handler.CreateMedication)
	medications.Get("/adherence", handler.GetAdherence)
	medications.Put("/:id", handler.UpdateMedication)
	medications.Delete("/:id", handler.DeleteMedication)
	medications.Post("/:id/toggle", handler.ToggleMedication)

	wellness := api.Group("/wellness", handler.AuthRequired)
	wellness.Get("", handler.GetWellness)
	wellness.Get("/stream", handler.StreamWellness)

	api.Get("/health-tip", handler.AuthRequired, handler.GetHealthTip)
	api.Get("/hospitals/nearby", handler.AuthRequired, handler.GetNearbyHospitals)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/json", handler.ExportJSON)
	export.Get("/xlsx", handler.ExportXLSX)
}
