package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/catalog/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Brand       string `json:"brand,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// CreateVariantRequest body para POST /api/catalog/variants. Los precios
// llegan como strings decimales; la cantidad inicial en piezas base.
type CreateVariantRequest struct {
	ParentProductID string `json:"parent_product_id"`
	VariantName     string `json:"variant_name"`
	Brand           string `json:"brand,omitempty"`
	Image           string `json:"image,omitempty"`
	Unit            string `json:"unit,omitempty"`

	UnitPrice     decimal.Decimal `json:"unit_price"`
	OriginalPrice decimal.Decimal `json:"original_price,omitempty"`
	Quantity      int64           `json:"quantity"`

	IsBundle            bool   `json:"is_bundle,omitempty"`
	PiecesPerBundle     int64  `json:"pieces_per_bundle,omitempty"`
	BundlePackagingType string `json:"bundle_packaging_type,omitempty"`

	StorageLocation string `json:"storage_location,omitempty"`
	ShelfName       string `json:"shelf_name,omitempty"`
	RowName         string `json:"row_name,omitempty"`

	RestockLevel       int64   `json:"restock_level,omitempty"`
	MaximumStockLevel  int64   `json:"maximum_stock_level,omitempty"`
	SafetyStock        int64   `json:"safety_stock,omitempty"`
	LeadTimeDays       int     `json:"lead_time_days,omitempty"`
	ReorderPoint       int64   `json:"reorder_point,omitempty"`
	EconomicOrderQty   int64   `json:"economic_order_qty,omitempty"`
	OrderCost          float64 `json:"order_cost,omitempty"`
	HoldingCostPerUnit float64 `json:"holding_cost_per_unit,omitempty"`

	Suppliers []SupplierSummaryRequest `json:"suppliers,omitempty"`
}

// SupplierSummaryRequest resumen de proveedor a embeber en la variante.
type SupplierSummaryRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PrimaryCode string `json:"primary_code,omitempty"`
}

// GroupFilterRequest query params para GET /api/catalog/groups.
type GroupFilterRequest struct {
	Search      string `query:"search"`
	Category    string `query:"category"`
	Brand       string `query:"brand"`
	Supplier    string `query:"supplier"`
	StorageRoom string `query:"storage_room"`
	Status      string `query:"status"` // in-stock, low-stock, out-of-stock
}
