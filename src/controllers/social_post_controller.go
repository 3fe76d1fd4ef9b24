package controllers

import (
	"bytes"
	"context"
	"io"
	"strings"

	"nextglide-backend/src/models"
	"nextglide-backend/src/services/socialposts"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type SocialPostController struct {
	svc *socialposts.Service
	log *zap.Logger
}

func NewSocialPostController(svc *socialposts.Service, log *zap.Logger) *SocialPostController {
	return &SocialPostController{svc: svc, log: log}
}

// readPost accepts a JSON body or a multipart form with an optional
// "image" file.
func readPost(c *fiber.Ctx) (models.PostPatch, *socialposts.Upload, error) {
	contentType := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return models.PostPatch{}, nil, nil
		}
		patch, err := socialposts.PatchFromJSON(body)
		return patch, nil, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return models.PostPatch{}, nil, utils.Validation("Invalid form: %v", err)
	}
	patch := socialposts.PatchFromForm(form.Value)
	files := form.File["image"]
	if len(files) == 0 {
		return patch, nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return patch, nil, utils.Validation("Invalid image: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return patch, nil, utils.Validation("Invalid image: %v", err)
	}
	return patch, &socialposts.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	}, nil
}

// GetFeed godoc
// @Summary      List social posts
// @Description  Public visitors see published, visible posts whose schedule has passed. view=admin lists everything.
// @Tags         social-posts
// @Produce      json
// @Param        view        query  string  false  "admin for the unfiltered list"
// @Param        categoryId  query  string  false  "Category ID"
// @Param        date        query  string  false  "Day, YYYY-MM-DD"
// @Param        sort        query  string  false  "trending or latest"
// @Success      200  {array}   models.SocialPostView
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/social-posts [get]
func (h *SocialPostController) GetFeed(c *fiber.Ctx) error {
	var q socialposts.FeedQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.RespondError(c, h.log, utils.Validation("Invalid query: %v", err))
	}
	posts, err := h.svc.Feed(c.UserContext(), q)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(posts)
}

// CreatePost godoc
// @Summary      Create a social post
// @Description  Accepts JSON or multipart/form-data with an optional image file
// @Tags         social-posts
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  false  "Image"
// @Success      201  {object}  models.DataResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/social-posts [post]
func (h *SocialPostController) CreatePost(c *fiber.Ctx) error {
	patch, img, err := readPost(c)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	post, err := h.svc.Create(c.UserContext(), patch, img)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.DataResponse{Success: true, Data: post})
}

// UpdatePost godoc
// @Summary      Update a social post
// @Description  Only the keys sent are changed. A new image replaces the old URL.
// @Tags         social-posts
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        id     path      string  true   "Post ID"
// @Param        image  formData  file    false  "Image"
// @Success      200  {object}  models.DataResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/social-posts/{id} [put]
func (h *SocialPostController) UpdatePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	patch, img, err := readPost(c)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	post, err := h.svc.Update(c.UserContext(), id, patch, img)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.DataResponse{Success: true, Data: post})
}

// DeletePost godoc
// @Summary      Delete a social post
// @Tags         social-posts
// @Produce      json
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/social-posts/{id} [delete]
func (h *SocialPostController) DeletePost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Success: true, Message: "Post deleted"})
}

// ToggleVisibility godoc
// @Summary      Hide or show a social post
// @Tags         social-posts
// @Produce      json
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  models.SocialPost
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/social-posts/{id}/toggle-visibility [put]
func (h *SocialPostController) ToggleVisibility(c *fiber.Ctx) error {
	return h.counter(c, h.svc.ToggleVisibility)
}

// LikePost godoc
// @Summary      Like a social post
// @Tags         social-posts
// @Produce      json
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  models.SocialPost
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/social-posts/{id}/like [post]
func (h *SocialPostController) LikePost(c *fiber.Ctx) error {
	return h.counter(c, h.svc.Like)
}

// SharePost godoc
// @Summary      Count a share of a social post
// @Tags         social-posts
// @Produce      json
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  models.SocialPost
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/social-posts/{id}/share [post]
func (h *SocialPostController) SharePost(c *fiber.Ctx) error {
	return h.counter(c, h.svc.Share)
}

// CommentPost godoc
// @Summary      Comment on a social post
// @Tags         social-posts
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Post ID"
// @Param        body  body  models.CommentRequest  true  "Comment"
// @Success      200  {object}  models.SocialPost
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/social-posts/{id}/comment [post]
func (h *SocialPostController) CommentPost(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	var request models.CommentRequest
	if err := parseBody(c, &request); err != nil {
		return utils.RespondError(c, h.log, err)
	}
	post, err := h.svc.Comment(c.UserContext(), id, request.Text)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(post)
}

func (h *SocialPostController) counter(c *fiber.Ctx, op func(ctx context.Context, id primitive.ObjectID) (*models.SocialPost, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	post, err := op(c.UserContext(), id)
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	return c.JSON(post)
}
