package controllers

import (
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/catalog"
	"nextglide-backend/src/services/inquiries"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogController serves one catalog collection, services or
// solutions, together with the inquiries submitted against it.
type CatalogController struct {
	items     *catalog.Service
	inquiries *inquiries.Service
	log       *zap.Logger
}

func NewCatalogController(items *catalog.Service, inq *inquiries.Service, log *zap.Logger) *CatalogController {
	return &CatalogController{items: items, inquiries: inq, log: log}
}

// ListItems godoc
// @Summary      List catalog entries
// @Description  Listing fields only: name, shortDescription, category, startingPrice, ctaText, slug
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   models.CatalogListing
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/services [get]
// @Router       /api/solutions [get]
func (h *CatalogController) ListItems(c *fiber.Ctx) error {
	list, err := h.items.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(list)
}

// GetItem godoc
// @Summary      Get a catalog entry
// @Description  Looks the entry up by slug, then by ID
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Slug or ID"
// @Success      200  {object}  models.CatalogItem
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/services/{slug} [get]
// @Router       /api/solutions/{slug} [get]
func (h *CatalogController) GetItem(c *fiber.Ctx) error {
	item, err := h.items.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(item)
}

// CreateItem godoc
// @Summary      Create a catalog entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body body models.CatalogItem true "Catalog entry"
// @Success      201  {object}  models.CatalogItem
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/services [post]
// @Router       /api/solutions [post]
func (h *CatalogController) CreateItem(c *fiber.Ctx) error {
	item, err := h.items.Create(c.UserContext(), c.Body())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem godoc
// @Summary      Update a catalog entry
// @Description  Top level keys of the body replace the stored ones
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Entry ID"
// @Param        body  body  models.CatalogItem  true  "Keys to replace"
// @Success      200  {object}  models.CatalogItem
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/services/{id} [put]
// @Router       /api/solutions/{id} [put]
func (h *CatalogController) UpdateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	item, err := h.items.Update(c.UserContext(), id, c.Body())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(item)
}

// DeleteItem godoc
// @Summary      Delete a catalog entry
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "Entry ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/services/{id} [delete]
// @Router       /api/solutions/{id} [delete]
func (h *CatalogController) DeleteItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.items.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{
		Success: true,
		Message: h.items.Kind().Name + " deleted successfully",
	})
}

// SubmitInquiry godoc
// @Summary      Submit an inquiry
// @Description  Stores the inquiry and emails a receipt to the applicant
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        body body models.Inquiry true "Inquiry"
// @Success      201  {object}  models.DataResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/services/inquiry [post]
// @Router       /api/solutions/inquiry [post]
func (h *CatalogController) SubmitInquiry(c *fiber.Ctx) error {
	inq, err := h.inquiries.Submit(c.UserContext(), c.Body())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.DataResponse{
		Success: true,
		Message: "Application submitted successfully",
		Data:    inq,
	})
}

// ListInquiries godoc
// @Summary      List inquiries
// @Description  Newest first
// @Tags         inquiries
// @Produce      json
// @Success      200  {array}   models.Inquiry
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/services/inquiries/all [get]
// @Router       /api/solutions/inquiries/all [get]
func (h *CatalogController) ListInquiries(c *fiber.Ctx) error {
	list, err := h.inquiries.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(list)
}

// UpdateInquiryStatus godoc
// @Summary      Change the status of an inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "Inquiry ID"
// @Param        body  body  models.InquiryStatusRequest  true  "New status"
// @Success      200  {object}  models.Inquiry
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/services/inquiries/{id}/status [put]
// @Router       /api/solutions/inquiries/{id}/status [put]
func (h *CatalogController) UpdateInquiryStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	var request models.InquiryStatusRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	inq, err := h.inquiries.UpdateStatus(c.UserContext(), id, request.Status)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(inq)
}

// DeleteInquiry godoc
// @Summary      Delete an inquiry
// @Tags         inquiries
// @Produce      json
// @Param        id   path  string  true  "Inquiry ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/services/inquiries/{id} [delete]
// @Router       /api/solutions/inquiries/{id} [delete]
func (h *CatalogController) DeleteInquiry(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.inquiries.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Inquiry deleted successfully"})
}

// ResendInquiryReceipt godoc
// @Summary      Resend the inquiry receipt
// @Tags         inquiries
// @Produce      json
// @Param        id   path  string  true  "Inquiry ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/services/inquiries/{id}/resend [post]
// @Router       /api/solutions/inquiries/{id}/resend [post]
func (h *CatalogController) ResendInquiryReceipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.inquiries.Resend(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Email resent successfully"})
}
