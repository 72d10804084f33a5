package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

// Defaults de resolución cuando ni la variante ni el producto aportan el campo.
const (
	DefaultBrand = "Generic"
	DefaultUnit  = "pcs"
)

// MergedVariant vista de variante con todos los fallbacks ya resueltos.
type MergedVariant struct {
	ID              string                  `json:"id"`
	VariantName     string                  `json:"variant_name"`
	Brand           string                  `json:"brand"`
	Image           string                  `json:"image"`
	Unit            string                  `json:"unit"`
	UnitPrice       decimal.Decimal         `json:"unit_price"`
	OriginalPrice   decimal.Decimal         `json:"original_price"`
	Quantity        int64                   `json:"quantity"`
	IsBundle        bool                    `json:"is_bundle"`
	PiecesPerBundle int64                   `json:"pieces_per_bundle,omitempty"`
	Location        string                  `json:"location,omitempty"`
	PrimarySupplier *entity.SupplierSummary `json:"primary_supplier,omitempty"`
}

// MergedProduct vista denormalizada de lectura: producto + variantes resueltas
// + agregados. Nunca se persiste; se recalcula en cada lectura como función
// pura del estado actual de las variantes.
type MergedProduct struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	Brand               string          `json:"brand"`
	Description         string          `json:"description"`
	Image               string          `json:"image"`
	Variants            []MergedVariant `json:"variants"`
	TotalStock          int64           `json:"total_stock"`
	TotalVariants       int             `json:"total_variants"`
	LowestPrice         decimal.Decimal `json:"lowest_price"`
	HighestPrice        decimal.Decimal `json:"highest_price"`
	HasMultipleVariants bool            `json:"has_multiple_variants"`
	IsInStock           bool            `json:"is_in_stock"`
	AllSuppliers        []string        `json:"all_suppliers"`
}

// MergeProduct combina un producto con sus variantes en una MergedProduct.
// Determinista e idempotente: mismas entradas, misma salida, sin efectos.
func MergeProduct(product entity.Product, variants []entity.Variant) MergedProduct {
	merged := MergedProduct{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Brand:       product.Brand,
		Description: product.Description,
		Image:       product.Image,
		Variants:    make([]MergedVariant, 0, len(variants)),
	}

	var totalStock int64
	lowest, highest := decimal.Zero, decimal.Zero
	supplierSeen := map[string]bool{}
	suppliers := []string{}

	for i := range variants {
		v := &variants[i]
		merged.Variants = append(merged.Variants, mergeVariant(product, v))
		totalStock += v.Quantity

		// Rango de precios solo sobre variantes con precio > 0
		if v.UnitPrice.GreaterThan(decimal.Zero) {
			if lowest.IsZero() || v.UnitPrice.LessThan(lowest) {
				lowest = v.UnitPrice
			}
			if v.UnitPrice.GreaterThan(highest) {
				highest = v.UnitPrice
			}
		}

		for _, s := range v.Suppliers {
			if s.Name != "" && !supplierSeen[s.Name] {
				supplierSeen[s.Name] = true
				suppliers = append(suppliers, s.Name)
			}
		}
	}

	merged.TotalStock = totalStock
	merged.TotalVariants = len(variants)
	merged.LowestPrice = lowest
	merged.HighestPrice = highest
	merged.HasMultipleVariants = len(variants) > 1
	merged.IsInStock = totalStock > 0
	merged.AllSuppliers = suppliers
	return merged
}

// mergeVariant resuelve los campos de una variante con fallback al producto.
func mergeVariant(product entity.Product, v *entity.Variant) MergedVariant {
	mv := MergedVariant{
		ID:              v.ID,
		VariantName:     resolveString("", v.VariantName, v.Name),
		Brand:           resolveString(DefaultBrand, v.Brand, product.Brand),
		Image:           resolveString("", v.Image, v.ImageURL, product.Image),
		Unit:            resolveString(DefaultUnit, v.Unit, v.BaseUnit),
		UnitPrice:       v.UnitPrice,
		OriginalPrice:   resolvePrice(v.OriginalPrice, v.UnitPrice),
		Quantity:        v.Quantity,
		IsBundle:        v.IsBundle,
		PiecesPerBundle: v.PiecesPerBundle,
		Location:        v.FullLocation(),
	}
	if len(v.Suppliers) > 0 {
		primary := v.Suppliers[0]
		mv.PrimarySupplier = &primary
	}
	return mv
}
