package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// AdjustStockUseCase registra un ajuste manual de inventario (conteo físico,
// merma, corrección). Acepta deltas positivos o negativos pero nunca deja la
// cantidad por debajo de cero; el ajuste y su fila de auditoría se escriben
// en la misma transacción.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustInput ajuste manual de stock, en piezas base.
type AdjustInput struct {
	VariantID   string
	Delta       int64 // positivo suma, negativo resta
	Reason      string
	PerformedBy string
}

// AdjustFromRequest adapta el request HTTP al caso de uso.
func (uc *AdjustStockUseCase) AdjustFromRequest(ctx context.Context, in dto.AdjustStockRequest) error {
	return uc.Adjust(ctx, AdjustInput{
		VariantID:   in.VariantID,
		Delta:       in.Delta,
		Reason:      in.Reason,
		PerformedBy: in.PerformedBy,
	})
}

// Adjust aplica el delta al stock de la variante.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustInput) error {
	if input.VariantID == "" || input.Delta == 0 {
		return fmt.Errorf("ajuste inválido: %w", domain.ErrInvalidInput)
	}

	return uc.txRunner.Run(ctx, func(
		variantRepo repository.VariantRepository,
		_ repository.TransactionRepository,
		_ repository.RestockingRequestRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.NotificationRepository,
	) error {
		v, err := variantRepo.GetForUpdate(input.VariantID)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("variante %s: %w", input.VariantID, domain.ErrNotFound)
		}
		if v.Quantity+input.Delta < 0 {
			return fmt.Errorf("ajuste de %d dejaría la variante %s en negativo (stock %d): %w",
				input.Delta, v.ID, v.Quantity, domain.ErrInvalidInput)
		}

		now := time.Now()
		previous := v.Quantity
		v.Quantity += input.Delta
		v.UpdatedAt = now
		if err := variantRepo.UpdateStock(v); err != nil {
			return err
		}

		return movementRepo.Create(&entity.StockMovement{
			ID:                     uuid.New().String(),
			VariantID:              v.ID,
			Type:                   entity.MovementTypeAdjust,
			QuantityDelta:          input.Delta,
			PreviousQty:            previous,
			NewQty:                 v.Quantity,
			ReferenceTransactionID: input.Reason,
			PerformedBy:            input.PerformedBy,
			Timestamp:              now,
		})
	})
}
