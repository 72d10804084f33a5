package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

// Estado de stock de un grupo de variantes.
type StockStatus string

const (
	StatusInStock    StockStatus = "in-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusOutOfStock StockStatus = "out-of-stock"
)

// ProductGroup agrupa las variantes de un producto para los listados.
type ProductGroup struct {
	ProductID        string                   `json:"product_id"`
	Name             string                   `json:"name"`
	Category         string                   `json:"category"`
	Brand            string                   `json:"brand"`
	Variants         []entity.Variant         `json:"variants"`
	TotalQuantity    int64                    `json:"total_quantity"`
	TotalSafetyStock int64                    `json:"total_safety_stock"`
	Status           StockStatus              `json:"status"`
	Locations        []string                 `json:"locations"`
	LowestPrice      decimal.Decimal          `json:"lowest_price"`
	HighestPrice     decimal.Decimal          `json:"highest_price"`
	Suppliers        []entity.SupplierSummary `json:"suppliers"`
}

// GroupVariants agrupa las variantes por producto padre. Todo producto aparece
// en la salida aunque no tenga variantes (grupo vacío, out-of-stock), para que
// los productos recién creados sin stock sigan siendo visibles.
// Regla canónica de low-stock: totalQuantity <= suma de safety stock.
func GroupVariants(products []entity.Product, variants []entity.Variant) []ProductGroup {
	byProduct := make(map[string][]entity.Variant, len(products))
	for _, v := range variants {
		byProduct[v.ParentProductID] = append(byProduct[v.ParentProductID], v)
	}

	groups := make([]ProductGroup, 0, len(products))
	for _, p := range products {
		g := ProductGroup{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Brand:     p.Brand,
			Variants:  byProduct[p.ID],
			Locations: []string{},
			Suppliers: []entity.SupplierSummary{},
		}

		locSeen := map[string]bool{}
		for i := range g.Variants {
			v := &g.Variants[i]
			g.TotalQuantity += v.Quantity
			g.TotalSafetyStock += v.SafetyStock

			if loc := v.FullLocation(); loc != "" && !locSeen[loc] {
				locSeen[loc] = true
				g.Locations = append(g.Locations, loc)
			}

			// Rango de precios incremental, solo precios > 0
			if v.UnitPrice.GreaterThan(decimal.Zero) {
				if g.LowestPrice.IsZero() || v.UnitPrice.LessThan(g.LowestPrice) {
					g.LowestPrice = v.UnitPrice
				}
				if v.UnitPrice.GreaterThan(g.HighestPrice) {
					g.HighestPrice = v.UnitPrice
				}
			}

			g.Suppliers = mergeSuppliers(g.Suppliers, v.Suppliers)
		}

		switch {
		case g.TotalQuantity <= 0:
			g.Status = StatusOutOfStock
		case g.TotalQuantity <= g.TotalSafetyStock:
			g.Status = StatusLowStock
		default:
			g.Status = StatusInStock
		}

		groups = append(groups, g)
	}
	return groups
}

// mergeSuppliers une resúmenes de proveedor con identidad por id O por nombre.
// Gana el primero visto: un duplicado con mismo nombre pero código distinto
// no reemplaza la entrada existente.
func mergeSuppliers(existing []entity.SupplierSummary, incoming []entity.SupplierSummary) []entity.SupplierSummary {
	for _, s := range incoming {
		dup := false
		for _, e := range existing {
			if (s.ID != "" && s.ID == e.ID) || (s.Name != "" && s.Name == e.Name) {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, s)
		}
	}
	return existing
}
