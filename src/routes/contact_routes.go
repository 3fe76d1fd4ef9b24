package routes

import (
	"nextglide-backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func ContactRoutes(router fiber.Router, ctrl *controllers.ContactController) {
	contacts := router.Group("/contacts")
	contacts.Post("/", ctrl.CreateContact)
	contacts.Get("/", ctrl.GetContacts)
	contacts.Post("/custom-email", ctrl.SendCustomEmail)
	contacts.Post("/resend-welcome/:id", ctrl.ResendWelcome)
	contacts.Delete("/:id", ctrl.DeleteContact)
}
