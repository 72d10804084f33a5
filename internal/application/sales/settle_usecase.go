package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/inventory"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
	"github.com/jhoicas/ferreteria-pos/pkg/logger"
)

// SettleSaleUseCase liquida una venta contra el stock compartido de forma
// atómica: bloquea cada variante (SELECT FOR UPDATE), re-verifica cantidades,
// descuenta, crea la transacción y deja staged las solicitudes de reposición,
// todo en un solo Commit. La auditoría y las notificaciones post-venta son
// best-effort fuera de la transacción.
type SettleSaleUseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	notifRepo    repository.NotificationRepository
	log          *logger.Logger
	cfg          Config
}

// NewSettleSaleUseCase construye el caso de uso. movementRepo y notifRepo
// van atados al pool (no a la tx): se usan después del Commit.
func NewSettleSaleUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	notifRepo repository.NotificationRepository,
	log *logger.Logger,
	cfg Config,
) *SettleSaleUseCase {
	return &SettleSaleUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		notifRepo:    notifRepo,
		log:          log,
		cfg:          cfg,
	}
}

// SaleItemInput línea del carrito. Quantity en piezas, o en bultos si PerBundle.
type SaleItemInput struct {
	VariantID string
	Quantity  int64
	PerBundle bool
}

// SettleSaleInput entrada para liquidar una venta.
type SettleSaleInput struct {
	Items         []SaleItemInput
	PaymentMethod string
	AmountPaid    decimal.Decimal
	CashierID     string
}

// deduction descuento aplicado a una variante, para la auditoría post-commit.
type deduction struct {
	variantID   string
	variantName string
	pieces      int64
	previousQty int64
	newQty      int64
}

// SettleSaleFromRequest adapta el request HTTP al caso de uso.
func (uc *SettleSaleUseCase) SettleSaleFromRequest(ctx context.Context, in dto.SettleSaleRequest) (*entity.Transaction, error) {
	items := make([]SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, SaleItemInput{VariantID: it.VariantID, Quantity: it.Quantity, PerBundle: it.PerBundle})
	}
	return uc.SettleSale(ctx, SettleSaleInput{
		Items:         items,
		PaymentMethod: in.PaymentMethod,
		AmountPaid:    in.AmountPaid,
		CashierID:     in.CashierID,
	})
}

// SettleSale valida el comando, ejecuta la liquidación atómica con reintentos
// acotados ante conflicto de concurrencia y dispara los efectos post-commit.
func (uc *SettleSaleUseCase) SettleSale(ctx context.Context, input SettleSaleInput) (*entity.Transaction, error) {
	if err := validateSettleInput(input); err != nil {
		return nil, err
	}

	var (
		sale       *entity.Transaction
		deductions []deduction
		err        error
	)
	for attempt := 0; ; attempt++ {
		sale, deductions, err = uc.trySettle(ctx, input)
		if err == nil || !errors.Is(err, domain.ErrConflict) || attempt >= uc.cfg.MaxRetries {
			break
		}
		uc.log.Warn().
			Int("attempt", attempt+1).
			Msg("conflicto de concurrencia en liquidación, reintentando desde cero")
	}
	if err != nil {
		return nil, err
	}

	// Efectos post-commit: la venta ya está confirmada, una falla aquí se
	// registra como warning pero nunca la revierte.
	uc.recordStockMovements(sale, deductions)
	uc.notifySaleCompleted(sale)
	return sale, nil
}

// trySettle un intento completo de liquidación: todas las lecturas y
// escrituras dentro de una sola transacción.
func (uc *SettleSaleUseCase) trySettle(ctx context.Context, input SettleSaleInput) (*entity.Transaction, []deduction, error) {
	now := time.Now()
	txID := uuid.New().String()

	var sale *entity.Transaction
	var deductions []deduction

	err := uc.txRunner.Run(ctx, func(
		variantRepo repository.VariantRepository,
		txRepo repository.TransactionRepository,
		restockRepo repository.RestockingRequestRepository,
		_ repository.StockMovementRepository,
		notifRepo repository.NotificationRepository,
	) error {
		deductions = deductions[:0]
		items := make([]entity.TransactionItem, 0, len(input.Items))
		subTotal := decimal.Zero

		for _, it := range input.Items {
			// Bloquea la fila de la variante y re-verifica bajo el lock:
			// el chequeo previo de disponibilidad es solo consultivo.
			v, err := variantRepo.GetForUpdate(it.VariantID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("variante %s: %w", it.VariantID, domain.ErrNotFound)
			}

			pieces, unitPrice, err := resolveSaleUnit(v, it)
			if err != nil {
				return err
			}

			newQty := v.Quantity - pieces
			if newQty < 0 {
				// Otra venta ganó la carrera: abortar sin descuento parcial.
				return &domain.StockShortageError{
					VariantID:   v.ID,
					VariantName: v.DisplayName(),
					Available:   v.Quantity,
					Requested:   pieces,
				}
			}

			lineTotal := unitPrice.Mul(decimal.NewFromInt(it.Quantity))
			previous := v.Quantity
			v.Quantity = newQty
			v.AppendSale(entity.SaleRecord{
				TransactionID: txID,
				Quantity:      pieces,
				UnitPrice:     unitPrice,
				Timestamp:     now,
			}, uc.retention())
			v.UpdatedAt = now
			if err := variantRepo.UpdateStock(v); err != nil {
				return err
			}

			items = append(items, entity.TransactionItem{
				VariantID:   v.ID,
				VariantName: v.DisplayName(),
				Quantity:    it.Quantity,
				BasePieces:  pieces,
				UnitPrice:   unitPrice,
				LineTotal:   lineTotal,
				PerBundle:   it.PerBundle,
			})
			subTotal = subTotal.Add(lineTotal)
			deductions = append(deductions, deduction{
				variantID:   v.ID,
				variantName: v.DisplayName(),
				pieces:      pieces,
				previousQty: previous,
				newQty:      newQty,
			})

			// Política de reposición dentro de la misma transacción
			if newQty <= v.RestockLevel {
				if err := uc.stageRestock(restockRepo, notifRepo, v, now); err != nil {
					return err
				}
			}
		}

		tax := subTotal.Mul(decimal.NewFromFloat(uc.cfg.VATRate)).Round(2)
		total := subTotal.Add(tax)
		if input.AmountPaid.LessThan(total) {
			return fmt.Errorf("monto pagado %s menor al total %s: %w",
				input.AmountPaid.StringFixed(2), total.StringFixed(2), domain.ErrInvalidInput)
		}

		sale = &entity.Transaction{
			ID:            txID,
			Items:         items,
			SubTotal:      subTotal,
			Tax:           tax,
			Total:         total,
			PaymentMethod: input.PaymentMethod,
			AmountPaid:    input.AmountPaid,
			Status:        entity.TransactionStatusCompleted,
			CashierID:     input.CashierID,
			CreatedAt:     now,
		}
		return txRepo.Create(sale)
	})
	if err != nil {
		return nil, nil, err
	}
	return sale, deductions, nil
}

// resolveSaleUnit aplica la regla de bultos: vendido por bulto se descuenta
// piezas = cantidad × piezasPorBulto al precio crudo del bulto; vendido por
// pieza el precio unitario es precioBulto / piezasPorBulto. El descuento de
// stock siempre queda expresado en piezas base.
func resolveSaleUnit(v *entity.Variant, it SaleItemInput) (pieces int64, unitPrice decimal.Decimal, err error) {
	if it.PerBundle {
		if !v.IsBundle || v.PiecesPerBundle <= 0 {
			return 0, decimal.Zero, fmt.Errorf("la variante %s no se vende por bulto: %w", v.ID, domain.ErrInvalidInput)
		}
		return it.Quantity * v.PiecesPerBundle, v.UnitPrice, nil
	}
	return it.Quantity, v.PiecePrice(), nil
}

// stageRestock evalúa la política de reorden y deja staged (misma tx) la
// solicitud de reposición y su notificación. La deduplicación la garantiza
// el índice único parcial: a lo sumo una solicitud abierta por variante.
func (uc *SettleSaleUseCase) stageRestock(
	restockRepo repository.RestockingRequestRepository,
	notifRepo repository.NotificationRepository,
	v *entity.Variant,
	now time.Time,
) error {
	eval := inventory.Evaluate(inventory.PolicyInput{
		CurrentQty:         v.Quantity,
		SafetyStock:        v.SafetyStock,
		LeadTimeDays:       v.LeadTimeDays,
		DailyDemand:        v.DailyDemand(now, uc.cfg.HistoryRetentionDays),
		ReorderPointField:  v.ExplicitReorderPoint(),
		EOQField:           v.EconomicOrderQty,
		OrderCost:          v.OrderCost,
		HoldingCostPerUnit: v.HoldingCostPerUnit,
	})
	if eval.Priority == inventory.PriorityNone {
		return nil
	}

	req := &entity.RestockingRequest{
		ID:           uuid.New().String(),
		VariantID:    v.ID,
		VariantName:  v.DisplayName(),
		CurrentQty:   v.Quantity,
		ReorderPoint: eval.ReorderPoint,
		SuggestedQty: eval.SuggestedQty,
		Priority:     string(eval.Priority),
		Status:       entity.RestockStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := restockRepo.CreateIfNoneOpen(req)
	if err != nil {
		return err
	}
	if !created {
		// Ya hay una solicitud abierta para la variante: no duplicar.
		return nil
	}
	return notifRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		Type:      entity.NotificationLowStock,
		VariantID: v.ID,
		Message:   fmt.Sprintf("stock bajo en %q: quedan %d piezas (prioridad %s)", v.DisplayName(), v.Quantity, req.Priority),
		CreatedAt: now,
	})
}

func (uc *SettleSaleUseCase) retention() time.Duration {
	return time.Duration(uc.cfg.HistoryRetentionDays) * 24 * time.Hour
}

func validateSettleInput(input SettleSaleInput) error {
	if len(input.Items) == 0 {
		return fmt.Errorf("carrito vacío: %w", domain.ErrInvalidInput)
	}
	for _, it := range input.Items {
		if it.VariantID == "" || it.Quantity <= 0 {
			return fmt.Errorf("línea de venta inválida: %w", domain.ErrInvalidInput)
		}
	}
	switch input.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodTransfer:
	default:
		return fmt.Errorf("método de pago %q: %w", input.PaymentMethod, domain.ErrInvalidInput)
	}
	if input.CashierID == "" {
		return fmt.Errorf("cashier_id requerido: %w", domain.ErrInvalidInput)
	}
	if input.AmountPaid.IsNegative() {
		return fmt.Errorf("monto pagado negativo: %w", domain.ErrInvalidInput)
	}
	return nil
}
