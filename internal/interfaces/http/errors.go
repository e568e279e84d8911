package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

// writeError traduce un error del caso de uso a la respuesta HTTP.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var conflict *domain.AlreadyRegisteredError
	var fieldErr *domain.FieldError

	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    domain.CodeAlreadyRegistered,
			Message: domain.ErrAlreadyRegistered.Error(),
			Data:    dto.NewRegistrationResponse(conflict.Existing),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: domain.CodeNotFound, Message: "not found"})
	case errors.As(err, &fieldErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    domain.Code(err),
			Message: err.Error(),
			Fields:  fieldErr.Fields,
		})
	case domain.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: domain.Code(err), Message: err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("almacenamiento no disponible")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    domain.CodeStorageUnavailable,
			Message: domain.ErrStorageUnavailable.Error(),
		})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.CodeInternal, Message: "error interno"})
	}
}

// fieldMessage mensaje del primer campo de un FieldError, o el del error.
func fieldMessage(err error, field string) string {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		if msg, ok := fe.Fields[field]; ok {
			return msg
		}
	}
	return err.Error()
}
