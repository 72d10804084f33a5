package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea del carrito. Quantity está en la unidad elegida:
// piezas, o bultos si PerBundle es true (la conversión a piezas la hace el
// motor de liquidación).
type SaleItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int64  `json:"quantity"`
	PerBundle bool   `json:"per_bundle,omitempty"`
}

// SettleSaleRequest body para POST /api/sales.
type SettleSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	CashierID     string            `json:"cashier_id"`
}

// AvailabilityRequest body para POST /api/sales/availability.
type AvailabilityRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// ItemAvailabilityDTO disponibilidad de una línea del carrito.
type ItemAvailabilityDTO struct {
	VariantID   string `json:"variant_id"`
	VariantName string `json:"variant_name,omitempty"`
	Found       bool   `json:"found"`
	Requested   int64  `json:"requested"` // en piezas base
	Available   int64  `json:"available"`
	IsAvailable bool   `json:"is_available"`
	Shortage    int64  `json:"shortage"`
}

// AvailabilityResponse resultado del chequeo previo de stock.
type AvailabilityResponse struct {
	AllAvailable bool                  `json:"all_available"`
	Items        []ItemAvailabilityDTO `json:"items"`
}

// ReceiveStockRequest body para POST /api/inventory/receipts.
type ReceiveStockRequest struct {
	VariantID   string `json:"variant_id"`
	Quantity    int64  `json:"quantity"` // piezas base
	Reference   string `json:"reference,omitempty"`
	PerformedBy string `json:"performed_by"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments.
type AdjustStockRequest struct {
	VariantID   string `json:"variant_id"`
	Delta       int64  `json:"delta"` // piezas base, positivo o negativo
	Reason      string `json:"reason,omitempty"`
	PerformedBy string `json:"performed_by"`
}
