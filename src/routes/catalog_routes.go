package routes

import (
	"nextglide-backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// CatalogRoutes mounts one catalog collection under prefix. The fixed
// inquiry paths are registered before /:slug so they are not taken for
// slugs.
func CatalogRoutes(router fiber.Router, prefix string, ctrl *controllers.CatalogController) {
	items := router.Group(prefix)

	// Inquiries
	items.Get("/inquiries/all", ctrl.ListInquiries)
	items.Post("/inquiry", ctrl.SubmitInquiry)
	items.Put("/inquiries/:id/status", ctrl.UpdateInquiryStatus)
	items.Post("/inquiries/:id/resend", ctrl.ResendInquiryReceipt)
	items.Delete("/inquiries/:id", ctrl.DeleteInquiry)

	// Entries
	items.Get("/", ctrl.ListItems)
	items.Post("/", ctrl.CreateItem)
	items.Get("/:slug", ctrl.GetItem)
	items.Put("/:id", ctrl.UpdateItem)
	items.Delete("/:id", ctrl.DeleteItem)
}
