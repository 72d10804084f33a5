package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	domaincatalog "github.com/jhoicas/ferreteria-pos/internal/domain/catalog"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// CatalogUseCase arma las vistas denormalizadas de catálogo: productos
// mezclados con sus variantes y listados agrupados con filtros.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, variantRepo: variantRepo}
}

// CreateProduct registra un producto maestro nuevo, sin variantes.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nombre de producto requerido: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Brand:       in.Brand,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateVariant registra una variante bajo un producto existente.
func (uc *CatalogUseCase) CreateVariant(ctx context.Context, in dto.CreateVariantRequest) (*entity.Variant, error) {
	if in.VariantName == "" {
		return nil, fmt.Errorf("nombre de variante requerido: %w", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() || in.Quantity < 0 {
		return nil, fmt.Errorf("precio o cantidad negativos: %w", domain.ErrInvalidInput)
	}
	if in.IsBundle && in.PiecesPerBundle <= 0 {
		return nil, fmt.Errorf("un bulto requiere pieces_per_bundle > 0: %w", domain.ErrInvalidInput)
	}
	parent, err := uc.productRepo.GetByID(in.ParentProductID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("producto padre %s: %w", in.ParentProductID, domain.ErrNotFound)
	}

	suppliers := make([]entity.SupplierSummary, 0, len(in.Suppliers))
	for _, s := range in.Suppliers {
		suppliers = append(suppliers, entity.SupplierSummary{ID: s.ID, Name: s.Name, PrimaryCode: s.PrimaryCode})
	}

	now := time.Now()
	v := &entity.Variant{
		ID:                  uuid.New().String(),
		ParentProductID:     in.ParentProductID,
		VariantName:         in.VariantName,
		Brand:               in.Brand,
		Image:               in.Image,
		Unit:                in.Unit,
		UnitPrice:           in.UnitPrice,
		OriginalPrice:       in.OriginalPrice,
		Quantity:            in.Quantity,
		IsBundle:            in.IsBundle,
		PiecesPerBundle:     in.PiecesPerBundle,
		BundlePackagingType: in.BundlePackagingType,
		StorageLocation:     in.StorageLocation,
		ShelfName:           in.ShelfName,
		RowName:             in.RowName,
		RestockLevel:        in.RestockLevel,
		MaximumStockLevel:   in.MaximumStockLevel,
		SafetyStock:         in.SafetyStock,
		LeadTimeDays:        in.LeadTimeDays,
		ReorderPoint:        in.ReorderPoint,
		EconomicOrderQty:    in.EconomicOrderQty,
		OrderCost:           in.OrderCost,
		HoldingCostPerUnit:  in.HoldingCostPerUnit,
		Suppliers:           suppliers,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.variantRepo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetMergedProduct recalcula la vista MergedProduct de un producto.
// La vista nunca se persiste: es proyección pura del estado actual.
func (uc *CatalogUseCase) GetMergedProduct(ctx context.Context, productID string) (*domaincatalog.MergedProduct, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	variants, err := uc.variantRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	merged := domaincatalog.MergeProduct(*product, deref(variants))
	return &merged, nil
}

// ListMergedProducts devuelve la vista mezclada de todos los productos.
func (uc *CatalogUseCase) ListMergedProducts(ctx context.Context, limit, offset int) ([]domaincatalog.MergedProduct, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	variants, err := uc.variantRepo.List()
	if err != nil {
		return nil, err
	}
	byProduct := map[string][]entity.Variant{}
	for _, v := range variants {
		byProduct[v.ParentProductID] = append(byProduct[v.ParentProductID], *v)
	}

	merged := make([]domaincatalog.MergedProduct, 0, len(products))
	for _, p := range products {
		merged = append(merged, domaincatalog.MergeProduct(*p, byProduct[p.ID]))
	}
	return merged, nil
}

// ListGroups devuelve los grupos por producto con los filtros aplicados en
// orden fijo (búsqueda → categoría → bodega → estado).
func (uc *CatalogUseCase) ListGroups(ctx context.Context, in dto.GroupFilterRequest) ([]domaincatalog.ProductGroup, error) {
	products, err := uc.productRepo.List(0, 0)
	if err != nil {
		return nil, err
	}
	variants, err := uc.variantRepo.List()
	if err != nil {
		return nil, err
	}

	groups := domaincatalog.GroupVariants(deref(products), deref(variants))
	filter := domaincatalog.GroupFilter{
		Search:      in.Search,
		Category:    in.Category,
		Brand:       in.Brand,
		Supplier:    in.Supplier,
		StorageRoom: in.StorageRoom,
		Status:      domaincatalog.StockStatus(in.Status),
	}
	return domaincatalog.ApplyFilters(groups, filter), nil
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, p := range in {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
