package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Fallas de serialización o deadlock se devuelven envueltas en
// domain.ErrConflict para que el caso de uso reintente desde cero.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	variantRepo repository.VariantRepository,
	txRepo repository.TransactionRepository,
	restockRepo repository.RestockingRequestRepository,
	movementRepo repository.StockMovementRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	variantRepo := NewVariantRepository(tx)
	txRepo := NewTransactionRepository(tx)
	restockRepo := NewRestockingRequestRepository(tx)
	movementRepo := NewStockMovementRepository(tx)
	notifRepo := NewNotificationRepository(tx)

	if err := fn(variantRepo, txRepo, restockRepo, movementRepo, notifRepo); err != nil {
		if isRetryableTxError(err) {
			return fmt.Errorf("transacción reintentable: %v: %w", err, domain.ErrConflict)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isRetryableTxError(err) {
			return fmt.Errorf("commit reintentable: %v: %w", err, domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
