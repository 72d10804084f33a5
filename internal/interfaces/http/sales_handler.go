package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// SalesHandler maneja las peticiones HTTP de liquidación y consulta de ventas.
type SalesHandler struct {
	settle       *sales.SettleSaleUseCase
	voidTx       *sales.VoidTransactionUseCase
	availability *sales.AvailabilityChecker
	txRepo       repository.TransactionRepository
	movementRepo repository.StockMovementRepository
}

// NewSalesHandler construye el handler. Las lecturas van directo a los repos.
func NewSalesHandler(
	settle *sales.SettleSaleUseCase,
	voidTx *sales.VoidTransactionUseCase,
	availability *sales.AvailabilityChecker,
	txRepo repository.TransactionRepository,
	movementRepo repository.StockMovementRepository,
) *SalesHandler {
	return &SalesHandler{
		settle:       settle,
		voidTx:       voidTx,
		availability: availability,
		txRepo:       txRepo,
		movementRepo: movementRepo,
	}
}

// Settle godoc
// @Summary      Liquidar una venta
// @Description  Descuenta stock, crea la transacción y dispara reposición, todo atómico.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SettleSaleRequest  true  "items, payment_method, amount_paid, cashier_id"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.settle.SettleSaleFromRequest(c.Context(), in)
	if err != nil {
		return mapSalesError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Void godoc
// @Summary      Anular una venta
// @Description  Restaura el stock descontado y marca la transacción como voided (idempotente).
// @Tags         sales
// @Produce      json
// @Param        id            path   string  true   "ID de la transacción"
// @Param        performed_by  query  string  false  "Usuario que anula"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/void [post]
func (h *SalesHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.voidTx.Void(c.Context(), id, c.Query("performed_by")); err != nil {
		return mapSalesError(c, err)
	}
	return c.JSON(fiber.Map{"message": "venta anulada", "transaction_id": id})
}

// CheckAvailability godoc
// @Summary      Chequeo previo de stock
// @Description  Consultivo: la liquidación re-valida bajo su propio lock.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "items"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales/availability [post]
func (h *SalesHandler) CheckAvailability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SaleItemInput{VariantID: it.VariantID, Quantity: it.Quantity, PerBundle: it.PerBundle})
	}
	result, err := h.availability.Check(c.Context(), items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// GetTransaction godoc
// @Summary      Consultar una venta
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  entity.Transaction
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SalesHandler) GetTransaction(c *fiber.Ctx) error {
	sale, err := h.txRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if sale == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
	}
	return c.JSON(sale)
}

// ListTransactions godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         sales
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial (RFC3339)"
// @Param        to      query  string  false  "Fecha final (RFC3339)"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  entity.Transaction
// @Router       /api/sales [get]
func (h *SalesHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	list, err := h.txRepo.List(from, to, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ListTransactionMovements godoc
// @Summary      Auditoría de stock de una venta
// @Description  Movimientos (descuentos y restauraciones) ligados a la transacción.
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {array}  entity.StockMovement
// @Router       /api/sales/{id}/movements [get]
func (h *SalesHandler) ListTransactionMovements(c *fiber.Ctx) error {
	list, err := h.movementRepo.ListByTransaction(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// parseDateRange lee from/to (RFC3339) de la query; nil cuando no vienen.
func parseDateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, errors.New("from inválido")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, nil, errors.New("to inválido")
		}
		to = &t
	}
	return from, to, nil
}

// mapSalesError traduce errores de dominio a códigos HTTP.
func mapSalesError(c *fiber.Ctx, err error) error {
	var shortage *domain.StockShortageError
	switch {
	case errors.As(err, &shortage):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":         "INSUFFICIENT_STOCK",
			"message":      shortage.Error(),
			"variant_id":   shortage.VariantID,
			"variant_name": shortage.VariantName,
			"available":    shortage.Available,
			"requested":    shortage.Requested,
			"shortage":     shortage.Shortage(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante o transacción no encontrada; refrescar catálogo"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyVoided):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_VOIDED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia; reintentar la operación"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
