package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despacho-scan/internal/application/dto"
	"github.com/jhoicas/despacho-scan/internal/domain"
)

// errorStatus traduce errores de dominio a status HTTP y código de ErrorResponse.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNegativeScan):
		return fiber.StatusConflict, "NEGATIVE_SCAN"
	case errors.Is(err, domain.ErrNothingToUndo):
		return fiber.StatusConflict, "NOTHING_TO_UNDO"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrStageFailed):
		return fiber.StatusInternalServerError, "STAGE_FAILED"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, "STORAGE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	if code == "INTERNAL" || code == "STORAGE" {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
