package routes

import (
	"nextglide-backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func JobRoutes(router fiber.Router, ctrl *controllers.JobController) {
	jobs := router.Group("/jobs")
	jobs.Get("/", ctrl.GetJobs)
	jobs.Post("/", ctrl.CreateJob)
	jobs.Put("/:id", ctrl.UpdateJob)
	jobs.Delete("/:id", ctrl.DeleteJob)

	forms := router.Group("/forms")
	forms.Get("/:jobId", ctrl.GetForm)
	forms.Post("/", ctrl.SaveForm)
}

func ApplicationRoutes(router fiber.Router, ctrl *controllers.ApplicationController) {
	apps := router.Group("/applications")
	apps.Post("/", ctrl.SubmitApplication)
	apps.Post("/custom-email", ctrl.SendCustomEmail)
	apps.Post("/resend-email/:id", ctrl.ResendReceipt)
	apps.Get("/:jobId", ctrl.GetApplicationsByJob)
	apps.Delete("/:id", ctrl.DeleteApplication)
}
