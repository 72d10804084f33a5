package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock      = "low_stock"
	NotificationSaleCompleted = "sale_completed"
)

// Notification aviso efímero e informativo (fire-and-forget).
// No es requisito de corrección: si falla su escritura la venta no se revierte.
type Notification struct {
	ID        string
	Type      string
	VariantID string
	Message   string
	CreatedAt time.Time
}
