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

// ReceiveStockUseCase registra una entrada de mercancía: el único flujo (junto
// con el ajuste) que incrementa Variant.Quantity. La entrada y su fila de
// auditoría se escriben en la misma transacción.
type ReceiveStockUseCase struct {
	txRunner TxRunner
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(txRunner TxRunner) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{txRunner: txRunner}
}

// ReceiveInput entrada de recepción de mercancía, en piezas base.
type ReceiveInput struct {
	VariantID   string
	Quantity    int64
	Reference   string
	PerformedBy string
}

// ReceiveFromRequest adapta el request HTTP al caso de uso.
func (uc *ReceiveStockUseCase) ReceiveFromRequest(ctx context.Context, in dto.ReceiveStockRequest) error {
	return uc.Receive(ctx, ReceiveInput{
		VariantID:   in.VariantID,
		Quantity:    in.Quantity,
		Reference:   in.Reference,
		PerformedBy: in.PerformedBy,
	})
}

// Receive suma la cantidad recibida al stock de la variante.
func (uc *ReceiveStockUseCase) Receive(ctx context.Context, input ReceiveInput) error {
	if input.VariantID == "" || input.Quantity <= 0 {
		return fmt.Errorf("recepción inválida: %w", domain.ErrInvalidInput)
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

		now := time.Now()
		previous := v.Quantity
		v.Quantity += input.Quantity
		v.UpdatedAt = now
		if err := variantRepo.UpdateStock(v); err != nil {
			return err
		}

		return movementRepo.Create(&entity.StockMovement{
			ID:                     uuid.New().String(),
			VariantID:              v.ID,
			Type:                   entity.MovementTypeReceive,
			QuantityDelta:          input.Quantity,
			PreviousQty:            previous,
			NewQty:                 v.Quantity,
			ReferenceTransactionID: input.Reference,
			PerformedBy:            input.PerformedBy,
			Timestamp:              now,
		})
	})
}
