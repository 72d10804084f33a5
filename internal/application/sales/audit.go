package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

// recordStockMovements escribe una fila de auditoría por variante descontada.
// Corre después del Commit: una falla se registra como warning, la venta no
// se revierte.
func (uc *SettleSaleUseCase) recordStockMovements(sale *entity.Transaction, deductions []deduction) {
	now := time.Now()
	for _, d := range deductions {
		mov := &entity.StockMovement{
			ID:                     uuid.New().String(),
			VariantID:              d.variantID,
			Type:                   entity.MovementTypeSale,
			QuantityDelta:          -d.pieces,
			PreviousQty:            d.previousQty,
			NewQty:                 d.newQty,
			ReferenceTransactionID: sale.ID,
			PerformedBy:            sale.CashierID,
			Timestamp:              now,
		}
		if err := uc.movementRepo.Create(mov); err != nil {
			uc.log.Warn().Err(err).
				Str("variant_id", d.variantID).
				Str("transaction_id", sale.ID).
				Msg("fallo al escribir auditoría de stock (venta ya confirmada)")
		}
	}
}

// notifySaleCompleted crea la notificación informativa de venta completada.
func (uc *SettleSaleUseCase) notifySaleCompleted(sale *entity.Transaction) {
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Type:      entity.NotificationSaleCompleted,
		Message:   fmt.Sprintf("venta %s completada por %s", sale.ID, sale.Total.StringFixed(2)),
		CreatedAt: time.Now(),
	}
	if err := uc.notifRepo.Create(n); err != nil {
		uc.log.Warn().Err(err).
			Str("transaction_id", sale.ID).
			Msg("fallo al crear notificación de venta")
	}
}
