package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementTypeSale    = "sale"    // descuento por venta
	MovementTypeVoid    = "void"    // restauración por anulación
	MovementTypeReceive = "receive" // entrada por recepción
	MovementTypeAdjust  = "adjust"  // ajuste manual
)

// StockMovement fila de auditoría inmutable: un registro por variante tocada,
// con cantidades antes/después y la transacción que lo causó.
// Nunca se actualiza ni se borra.
type StockMovement struct {
	ID                     string
	VariantID              string
	Type                   string
	QuantityDelta          int64 // negativo en ventas, positivo en entradas
	PreviousQty            int64
	NewQty                 int64
	ReferenceTransactionID string
	PerformedBy            string
	Timestamp              time.Time
}
