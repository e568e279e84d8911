package http

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/application/usecase"
	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

// ValidationHandler fase 1: verificación del identificador.
type ValidationHandler struct {
	uc  *usecase.RegistrationUseCase
	log *logger.Logger
}

// NewValidationHandler construye el handler inyectando el caso de uso.
func NewValidationHandler(uc *usecase.RegistrationUseCase, log *logger.Logger) *ValidationHandler {
	return &ValidationHandler{uc: uc, log: log}
}

// Validate godoc
// @Summary      Verificar identificación
// @Tags         validation
// @Accept       json
// @Produce      json
// @Param        type  path  string                 true  "Tipo: nit, foreign, other"
// @Param        body  body  dto.ValidationRequest  true  "Identificación"
// @Success      200   {object}  dto.ValidationResponse
// @Failure      400   {object}  dto.ValidationResponse
// @Failure      409   {object}  dto.ValidationResponse
// @Router       /api/validation/{type} [post]
func (h *ValidationHandler) Validate(c *fiber.Ctx) error {
	raw := identifierFromBody(c)
	check, err := h.uc.CheckIdentifier(c.UserContext(), c.Params("type"), raw)
	if err != nil {
		return h.writeValidationError(c, err)
	}
	return c.JSON(dto.ValidationResponse{
		Valid:          true,
		Message:        check.Message,
		Identification: check.Raw,
		Normalized:     check.Normalized,
		CheckDigit:     check.CheckDigit,
	})
}

func (h *ValidationHandler) writeValidationError(c *fiber.Ctx, err error) error {
	var conflict *domain.AlreadyRegisteredError
	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ValidationResponse{
			Valid:   false,
			Reason:  domain.CodeAlreadyRegistered,
			Message: domain.ErrAlreadyRegistered.Error(),
			Data:    dto.NewRegistrationResponse(conflict.Existing),
		})
	case domain.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationResponse{
			Valid:   false,
			Reason:  domain.Code(err),
			Message: fieldMessage(err, "identification"),
		})
	default:
		h.log.Error().Err(err).Msg("validación de identificación")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ValidationResponse{
			Valid:   false,
			Reason:  domain.Code(err),
			Message: "no fue posible validar la identificación",
		})
	}
}

// identifierFromBody acepta {"identification": ...}, {"nit": ...}, un string JSON o texto plano.
func identifierFromBody(c *fiber.Ctx) string {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return c.Query("identification", c.Query("nit"))
	}
	var req dto.ValidationRequest
	if err := json.Unmarshal(body, &req); err == nil {
		return req.Value()
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	if body[0] == '{' || body[0] == '[' {
		return ""
	}
	return string(body)
}
