package handlers

import (
	"errors"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
)

// statusFromError traduz a taxonomia de erros dos casos de uso para o
// status HTTP correspondente. Falhas não mapeadas viram 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecases.ErrAssessmentNotFound), errors.Is(err, usecases.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecases.ErrAlreadyCompleted), errors.Is(err, usecases.ErrAssessmentNotCompleted):
		return fiber.StatusConflict
	case errors.Is(err, usecases.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, usecases.ErrInvalidSubmission):
		return fiber.StatusBadRequest
	case errors.Is(err, usecases.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// errorJSON responde o erro já com o status mapeado
func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
