package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// InventoryHandler maneja entradas de mercancía, ajustes manuales y consulta
// del log de auditoría.
type InventoryHandler struct {
	receive      *sales.ReceiveStockUseCase
	adjust       *sales.AdjustStockUseCase
	movementRepo repository.StockMovementRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(receive *sales.ReceiveStockUseCase, adjust *sales.AdjustStockUseCase, movementRepo repository.StockMovementRepository) *InventoryHandler {
	return &InventoryHandler{receive: receive, adjust: adjust, movementRepo: movementRepo}
}

// ReceiveStock godoc
// @Summary      Registrar entrada de mercancía
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "variant_id, quantity (piezas), reference, performed_by"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.receive.ReceiveFromRequest(c.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "entrada registrada"})
}

// AdjustStock godoc
// @Summary      Registrar ajuste manual de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "variant_id, delta (piezas, puede ser negativo), reason, performed_by"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.adjust.AdjustFromRequest(c.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ajuste registrado"})
}

// ListMovements godoc
// @Summary      Movimientos de stock de una variante
// @Tags         inventory
// @Produce      json
// @Param        variant_id  path   string  true   "ID de la variante"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Success      200  {array}  entity.StockMovement
// @Router       /api/inventory/movements/{variant_id} [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}

	list, err := h.movementRepo.ListByVariant(c.Params("variant_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
