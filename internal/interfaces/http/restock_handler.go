package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/application/restock"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
)

// RestockHandler maneja el ciclo de vida de las solicitudes de reposición.
type RestockHandler struct {
	uc *restock.RestockUseCase
}

// NewRestockHandler construye el handler.
func NewRestockHandler(uc *restock.RestockUseCase) *RestockHandler {
	return &RestockHandler{uc: uc}
}

// ListOpen godoc
// @Summary      Solicitudes de reposición abiertas
// @Tags         restock
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  entity.RestockingRequest
// @Router       /api/restocking-requests [get]
func (h *RestockHandler) ListOpen(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.ListOpen(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// OpenForVariant godoc
// @Summary      Solicitud abierta de una variante
// @Tags         restock
// @Produce      json
// @Param        variant_id  path  string  true  "ID de la variante"
// @Success      200  {object}  entity.RestockingRequest
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restocking-requests/variant/{variant_id} [get]
func (h *RestockHandler) OpenForVariant(c *fiber.Ctx) error {
	req, err := h.uc.OpenForVariant(c.Context(), c.Params("variant_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin solicitud abierta para la variante"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(req)
}

// Acknowledge godoc
// @Summary      Reconocer una solicitud pendiente
// @Tags         restock
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/restocking-requests/{id}/acknowledge [post]
func (h *RestockHandler) Acknowledge(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Acknowledge, "solicitud reconocida")
}

// Fulfill godoc
// @Summary      Cerrar una solicitud como cumplida
// @Tags         restock
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/restocking-requests/{id}/fulfill [post]
func (h *RestockHandler) Fulfill(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Fulfill, "solicitud cumplida")
}

func (h *RestockHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) error, msg string) error {
	id := c.Params("id")
	if err := fn(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": msg, "id": id})
}
