package controllers

import (
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/categories"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryController struct {
	svc *categories.Service
	log *zap.Logger
}

func NewCategoryController(svc *categories.Service, log *zap.Logger) *CategoryController {
	return &CategoryController{svc: svc, log: log}
}

// GetCategories godoc
// @Summary      List post categories
// @Description  Sorted by name
// @Tags         categories
// @Produce      json
// @Success      200  {array}   models.Category
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/categories [get]
func (h *CategoryController) GetCategories(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(list)
}

// CreateCategory godoc
// @Summary      Create a post category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body body models.CategoryRequest true "Category"
// @Success      201  {object}  models.Category
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var request models.CategoryRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	cat, err := h.svc.Create(c.UserContext(), request.Name)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// DeleteCategory godoc
// @Summary      Delete a post category
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "Category ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Category deleted"})
}
