package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/jhoicas/ferreteria-pos/internal/application/catalog"
	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
)

// CatalogHandler maneja las vistas de catálogo (productos mezclados y grupos).
type CatalogHandler struct {
	uc *appcatalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *appcatalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Registrar un producto maestro
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, category"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// CreateVariant godoc
// @Summary      Registrar una variante bajo un producto
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVariantRequest  true  "parent_product_id, variant_name, unit_price, quantity"
// @Success      201   {object}  entity.Variant
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/variants [post]
func (h *CatalogHandler) CreateVariant(c *fiber.Ctx) error {
	var in dto.CreateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.CreateVariant(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto padre no encontrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// GetMergedProduct godoc
// @Summary      Vista mezclada de un producto
// @Description  Producto + variantes resueltas + agregados. Se recalcula en cada lectura.
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  catalog.MergedProduct
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{id} [get]
func (h *CatalogHandler) GetMergedProduct(c *fiber.Ctx) error {
	merged, err := h.uc.GetMergedProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(merged)
}

// ListMergedProducts godoc
// @Summary      Listado de productos mezclados
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  catalog.MergedProduct
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) ListMergedProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	merged, err := h.uc.ListMergedProducts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(merged)
}

// ListGroups godoc
// @Summary      Inventario agrupado por producto
// @Description  Todo producto aparece aunque no tenga variantes. Filtros en orden
//
//	fijo: búsqueda → categoría → bodega → estado de stock.
//
// @Tags         catalog
// @Produce      json
// @Param        search        query  string  false  "Término de búsqueda"
// @Param        category      query  string  false  "Categoría"
// @Param        brand         query  string  false  "Marca"
// @Param        supplier      query  string  false  "Proveedor (nombre o id)"
// @Param        storage_room  query  string  false  "Bodega"
// @Param        status        query  string  false  "in-stock | low-stock | out-of-stock"
// @Success      200  {array}  catalog.ProductGroup
// @Router       /api/catalog/groups [get]
func (h *CatalogHandler) ListGroups(c *fiber.Ctx) error {
	var in dto.GroupFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	groups, err := h.uc.ListGroups(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(groups)
}
