package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
	"github.com/jhoicas/ferreteria-pos/pkg/logger"
)

// VoidTransactionUseCase anula una venta confirmada: restaura el stock de
// cada variante afectada y marca la transacción como voided, todo en una sola
// transacción. Idempotente: anular una venta ya anulada devuelve
// ErrAlreadyVoided, nunca restaura dos veces.
type VoidTransactionUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	log          *logger.Logger
	maxRetries   int
}

// NewVoidTransactionUseCase construye el caso de uso.
func NewVoidTransactionUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	log *logger.Logger,
	cfg Config,
) *VoidTransactionUseCase {
	return &VoidTransactionUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		log:          log,
		maxRetries:   cfg.MaxRetries,
	}
}

// Void anula la transacción indicada y restaura el stock descontado.
func (uc *VoidTransactionUseCase) Void(ctx context.Context, transactionID, performedBy string) error {
	if transactionID == "" {
		return fmt.Errorf("transaction_id requerido: %w", domain.ErrInvalidInput)
	}

	var restored []deduction
	var err error
	for attempt := 0; ; attempt++ {
		restored, err = uc.tryVoid(ctx, transactionID)
		if err == nil || !errors.Is(err, domain.ErrConflict) || attempt >= uc.maxRetries {
			break
		}
		uc.log.Warn().
			Int("attempt", attempt+1).
			Str("transaction_id", transactionID).
			Msg("conflicto de concurrencia al anular, reintentando")
	}
	if err != nil {
		return err
	}

	uc.recordVoidMovements(transactionID, performedBy, restored)
	return nil
}

func (uc *VoidTransactionUseCase) tryVoid(ctx context.Context, transactionID string) ([]deduction, error) {
	var restored []deduction
	err := uc.txRunner.Run(ctx, func(
		variantRepo repository.VariantRepository,
		txRepo repository.TransactionRepository,
		_ repository.RestockingRequestRepository,
		_ repository.StockMovementRepository,
		_ repository.NotificationRepository,
	) error {
		restored = restored[:0]

		sale, err := txRepo.GetForUpdate(transactionID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("transacción %s: %w", transactionID, domain.ErrNotFound)
		}
		if sale.Status == entity.TransactionStatusVoided {
			return domain.ErrAlreadyVoided
		}

		now := time.Now()
		for _, item := range sale.Items {
			v, err := variantRepo.GetForUpdate(item.VariantID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("variante %s de la venta ya no existe: %w", item.VariantID, domain.ErrNotFound)
			}
			previous := v.Quantity
			v.Quantity += item.BasePieces
			v.UpdatedAt = now
			if err := variantRepo.UpdateStock(v); err != nil {
				return err
			}
			restored = append(restored, deduction{
				variantID:   v.ID,
				variantName: v.DisplayName(),
				pieces:      item.BasePieces,
				previousQty: previous,
				newQty:      v.Quantity,
			})
		}
		return txRepo.MarkVoided(sale.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return restored, nil
}

// recordVoidMovements auditoría post-commit de la restauración (best-effort).
func (uc *VoidTransactionUseCase) recordVoidMovements(transactionID, performedBy string, restored []deduction) {
	now := time.Now()
	for _, d := range restored {
		mov := &entity.StockMovement{
			ID:                     uuid.New().String(),
			VariantID:              d.variantID,
			Type:                   entity.MovementTypeVoid,
			QuantityDelta:          d.pieces,
			PreviousQty:            d.previousQty,
			NewQty:                 d.newQty,
			ReferenceTransactionID: transactionID,
			PerformedBy:            performedBy,
			Timestamp:              now,
		}
		if err := uc.movementRepo.Create(mov); err != nil {
			uc.log.Warn().Err(err).
				Str("variant_id", d.variantID).
				Str("transaction_id", transactionID).
				Msg("fallo al escribir auditoría de anulación (ya confirmada)")
		}
	}
}
