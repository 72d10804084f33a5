package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción de venta.
const (
	TransactionStatusCompleted = "completed"
	TransactionStatusVoided    = "voided"
)

// Métodos de pago aceptados en caja.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// TransactionItem línea de venta. Quantity está en la unidad vendida (piezas
// o bultos); BasePieces es lo realmente descontado del stock, siempre en piezas.
type TransactionItem struct {
	VariantID   string          `json:"variant_id"`
	VariantName string          `json:"variant_name"`
	Quantity    int64           `json:"quantity"`
	BasePieces  int64           `json:"base_pieces"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	PerBundle   bool            `json:"per_bundle,omitempty"`
}

// Transaction registro de venta. Se crea exactamente una vez por liquidación;
// anularla crea una restauración compensatoria de stock pero el registro
// original se marca como voided, nunca se borra.
type Transaction struct {
	ID            string
	Items         []TransactionItem
	SubTotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	AmountPaid    decimal.Decimal
	Status        string // completed, voided
	CashierID     string
	CreatedAt     time.Time
	VoidedAt      *time.Time
}
