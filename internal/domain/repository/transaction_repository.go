package repository

import (
	"time"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para ventas (DIP).
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la fila de la transacción (para anulación idempotente).
	GetForUpdate(id string) (*entity.Transaction, error)
	MarkVoided(id string, voidedAt time.Time) error
	List(from, to *time.Time, limit, offset int) ([]*entity.Transaction, error)
}
