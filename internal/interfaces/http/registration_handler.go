package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/application/usecase"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

// RegistrationHandler maneja las peticiones HTTP del recurso de registros.
type RegistrationHandler struct {
	uc  *usecase.RegistrationUseCase
	log *logger.Logger
}

// NewRegistrationHandler construye el handler inyectando el caso de uso.
func NewRegistrationHandler(uc *usecase.RegistrationUseCase, log *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar empresa o persona
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Datos del registro"
// @Success      201   {object}  dto.RegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/registrations [post]
func (h *RegistrationHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	e, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewRegistrationResponse(e))
}

// GetByIdentifier godoc
// @Summary      Consultar registro por identificación
// @Tags         registrations
// @Produce      json
// @Param        identifier  path  string  true  "Identificación (se normaliza)"
// @Success      200  {object}  dto.RegistrationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registrations/{identifier} [get]
func (h *RegistrationHandler) GetByIdentifier(c *fiber.Ctx) error {
	e, err := h.uc.GetByIdentifier(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewRegistrationResponse(e))
}

// Certificate godoc
// @Summary      Constancia de registro en PDF
// @Tags         registrations
// @Produce      application/pdf
// @Param        identifier  path  string  true  "Identificación"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registrations/{identifier}/certificate [get]
func (h *RegistrationHandler) Certificate(c *fiber.Ctx) error {
	pdf, e, err := h.uc.Certificate(c.UserContext(), c.Params("identifier"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="constancia-%s.pdf"`, e.NormalizedIdentifier))
	return c.Send(pdf)
}

// List godoc
// @Summary      Listar registros (operadores)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RegistrationListResponse
// @Failure      401     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/admin/registrations [get]
func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Debug().Str("operator", GetSubject(c)).Int("total", out.Page.Total).Msg("listado de registros")
	return c.JSON(out)
}
