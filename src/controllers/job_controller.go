package controllers

import (
	"nextglide-backend/src/models"
	"nextglide-backend/src/services/jobs"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// JobController serves job postings and their application forms.
type JobController struct {
	svc *jobs.Service
	log *zap.Logger
}

func NewJobController(svc *jobs.Service, log *zap.Logger) *JobController {
	return &JobController{svc: svc, log: log}
}

// GetJobs godoc
// @Summary      List job postings
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   models.Job
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/jobs [get]
func (h *JobController) GetJobs(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(list)
}

// CreateJob godoc
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body body models.Job true "Job object"
// @Success      201  {object}  models.Job
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobController) CreateJob(c *fiber.Ctx) error {
	var request models.Job
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	job, err := h.svc.Create(c.UserContext(), request)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Description  Only the keys present in the body are changed
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "Job ID"
// @Param        body  body  models.JobPatch  true  "Changed keys"
// @Success      200  {object}  models.Job
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobController) UpdateJob(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	var patch models.JobPatch
	if err := parseBody(c, &patch); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	job, err := h.svc.Update(c.UserContext(), id, patch)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(job)
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path  string  true  "Job ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobController) DeleteJob(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Job deleted"})
}

// GetForm godoc
// @Summary      Get the application form of a job
// @Description  A job without a form answers with an empty field list
// @Tags         forms
// @Produce      json
// @Param        jobId  path  string  true  "Job ID"
// @Success      200  {object}  models.JobForm
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/forms/{jobId} [get]
func (h *JobController) GetForm(c *fiber.Ctx) error {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	form, err := h.svc.GetForm(c.UserContext(), jobID)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(form)
}

// SaveForm godoc
// @Summary      Create or replace the application form of a job
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        body body models.JobFormRequest true "Form"
// @Success      201  {object}  models.JobForm
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/forms [post]
func (h *JobController) SaveForm(c *fiber.Ctx) error {
	var request models.JobFormRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	form, err := h.svc.SaveForm(c.UserContext(), request)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(form)
}
