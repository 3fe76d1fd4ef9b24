package controllers

import (
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/contacts"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ContactController struct {
	svc *contacts.Service
	log *zap.Logger
}

func NewContactController(svc *contacts.Service, log *zap.Logger) *ContactController {
	return &ContactController{svc: svc, log: log}
}

// CreateContact godoc
// @Summary      Submit a contact message
// @Description  Store a contact form submission and send a welcome email
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body body models.Contact true "Contact object"
// @Success      201  {object}  models.DataResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactController) CreateContact(c *fiber.Ctx) error {
	var request models.Contact
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	contact, err := h.svc.Create(c.UserContext(), request)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.DataResponse{
		Success: true,
		Message: "Contact submitted successfully.",
		Data:    contact,
	})
}

// GetContacts godoc
// @Summary      List contact messages
// @Description  Newest first
// @Tags         contacts
// @Produce      json
// @Success      200  {array}   models.Contact
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/contacts [get]
func (h *ContactController) GetContacts(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(list)
}

// DeleteContact godoc
// @Summary      Delete a contact message
// @Tags         contacts
// @Produce      json
// @Param        id   path  string  true  "Contact ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/contacts/{id} [delete]
func (h *ContactController) DeleteContact(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Contact deleted successfully"})
}

// ResendWelcome godoc
// @Summary      Resend the welcome email
// @Tags         contacts
// @Produce      json
// @Param        id   path  string  true  "Contact ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/contacts/resend-welcome/{id} [post]
func (h *ContactController) ResendWelcome(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.ResendWelcome(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Welcome email resent successfully"})
}

// SendCustomEmail godoc
// @Summary      Send a free text email
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body body models.CustomEmailRequest true "Email"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/contacts/custom-email [post]
func (h *ContactController) SendCustomEmail(c *fiber.Ctx) error {
	var request models.CustomEmailRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.SendCustom(c.UserContext(), request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Custom email sent successfully"})
}
