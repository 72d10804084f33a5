package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del log de auditoría sobre PostgreSQL
// (usable con pool o tx). Solo inserta: las filas nunca se mutan ni se borran.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, variant_id, type, quantity_delta, previous_qty, new_qty, reference_transaction_id, performed_by, created_at`

// Create persiste una fila de auditoría de stock.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	performedBy := (*string)(nil)
	if m.PerformedBy != "" {
		performedBy = &m.PerformedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.VariantID, m.Type, m.QuantityDelta, m.PreviousQty, m.NewQty,
		m.ReferenceTransactionID, performedBy, m.Timestamp)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByVariant lista movimientos de una variante en un rango de fechas.
func (r *StockMovementRepo) ListByVariant(variantID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE variant_id = $1`
	args := []any{variantID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by variant: %w", err)
	}
	return r.scanMany(rows)
}

// ListByTransaction lista los movimientos causados por una transacción.
func (r *StockMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE reference_transaction_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list movements by transaction: %w", err)
	}
	return r.scanMany(rows)
}

func (r *StockMovementRepo) scanMany(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var performedBy *string
		if err := rows.Scan(&m.ID, &m.VariantID, &m.Type, &m.QuantityDelta, &m.PreviousQty,
			&m.NewQty, &m.ReferenceTransactionID, &performedBy, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if performedBy != nil {
			m.PerformedBy = *performedBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
