package sales

import (
	"context"

	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para la liquidación:
// o se aplican todas las escrituras o ninguna. La implementación debe
// envolver fallas de serialización/deadlock como domain.ErrConflict para
// que el caso de uso pueda reintentar desde cero.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		variantRepo repository.VariantRepository,
		txRepo repository.TransactionRepository,
		restockRepo repository.RestockingRequestRepository,
		movementRepo repository.StockMovementRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}

// Config parámetros del motor de ventas.
type Config struct {
	VATRate              float64 // IVA sobre el subtotal (0.12 = 12%)
	HistoryRetentionDays int     // retención del historial embebido de ventas
	MaxRetries           int     // reintentos ante conflicto de concurrencia
}

// DefaultConfig valores de producción: IVA 12%, historial 90 días, 3 reintentos.
func DefaultConfig() Config {
	return Config{
		VATRate:              0.12,
		HistoryRetentionDays: 90,
		MaxRetries:           3,
	}
}
