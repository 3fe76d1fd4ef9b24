package routes

import (
	"nextglide-backend/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func CategoryRoutes(router fiber.Router, ctrl *controllers.CategoryController) {
	categories := router.Group("/categories")
	categories.Get("/", ctrl.GetCategories)
	categories.Post("/", ctrl.CreateCategory)
	categories.Delete("/:id", ctrl.DeleteCategory)
}

func SocialPostRoutes(router fiber.Router, ctrl *controllers.SocialPostController) {
	posts := router.Group("/social-posts")
	posts.Get("/", ctrl.GetFeed)
	posts.Post("/", ctrl.CreatePost)
	posts.Put("/:id", ctrl.UpdatePost)
	posts.Delete("/:id", ctrl.DeletePost)

	// Engagement
	posts.Put("/:id/toggle-visibility", ctrl.ToggleVisibility)
	posts.Post("/:id/like", ctrl.LikePost)
	posts.Post("/:id/share", ctrl.SharePost)
	posts.Post("/:id/comment", ctrl.CommentPost)
}
