package repository

import (
	"time"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el log de
// auditoría de stock (DIP). Solo inserciones: las filas nunca se mutan.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByVariant(variantID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByTransaction(transactionID string) ([]*entity.StockMovement, error)
}
