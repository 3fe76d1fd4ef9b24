package utils

import (
	"errors"
	"fmt"

	"nextglide-backend/src/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AppError carries the HTTP status a failure should be reported with.
// Err is logged but never sent to the client.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

// Conflict is reported as 400 to match what the site frontend expects.
func Conflict(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message, Err: err}
}

// StatusOf returns the status err maps to.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return fiber.StatusInternalServerError
}

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// RespondError writes err to the client. Anything that is not an
// AppError, and every 5xx, is logged and answered with a generic message.
func RespondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}
	if appErr.Status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return HandleError(c, appErr.Status, appErr.Message)
}
