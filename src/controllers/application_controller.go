package controllers

import (
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/applications"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ApplicationController struct {
	svc *applications.Service
	log *zap.Logger
}

func NewApplicationController(svc *applications.Service, log *zap.Logger) *ApplicationController {
	return &ApplicationController{svc: svc, log: log}
}

// SubmitApplication godoc
// @Summary      Submit a job application
// @Description  Stores the answers as sent and emails a receipt when an address is found among them
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body body models.ApplicationRequest true "Application"
// @Success      201  {object}  models.Application
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/applications [post]
func (h *ApplicationController) SubmitApplication(c *fiber.Ctx) error {
	var request models.ApplicationRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	app, err := h.svc.Submit(c.UserContext(), request)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetApplicationsByJob godoc
// @Summary      List the applications of a job
// @Description  Newest first
// @Tags         applications
// @Produce      json
// @Param        jobId  path  string  true  "Job ID"
// @Success      200  {array}   models.Application
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/applications/{jobId} [get]
func (h *ApplicationController) GetApplicationsByJob(c *fiber.Ctx) error {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	list, err := h.svc.ListByJob(c.UserContext(), jobID)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(list)
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "Application ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/applications/{id} [delete]
func (h *ApplicationController) DeleteApplication(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Application deleted"})
}

// ResendReceipt godoc
// @Summary      Resend the application receipt
// @Tags         applications
// @Produce      json
// @Param        id   path  string  true  "Application ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/applications/resend-email/{id} [post]
func (h *ApplicationController) ResendReceipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.ResendReceipt(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Email resent"})
}

// SendCustomEmail godoc
// @Summary      Send a free text email to an applicant
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body body models.CustomEmailRequest true "Email"
// @Success      200  {object}  models.MessageResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/applications/custom-email [post]
func (h *ApplicationController) SendCustomEmail(c *fiber.Ctx) error {
	var request models.CustomEmailRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.SendCustom(c.UserContext(), request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Custom email sent successfully"})
}
