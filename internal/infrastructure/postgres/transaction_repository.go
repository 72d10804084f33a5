package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas de venta van embebidas como JSONB.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, items, sub_total, tax, total, payment_method, amount_paid, status, cashier_id, created_at, voided_at`

// Create persiste la venta. El timestamp lo asigna el servidor de BD.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, items, sub_total, tax, total, payment_method, amount_paid, status, cashier_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Items, t.SubTotal, t.Tax, t.Total, t.PaymentMethod, t.AmountPaid, t.Status, t.CashierID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create transaction: %w", errDuplicate(err))
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get transaction")
}

// GetForUpdate obtiene la venta y bloquea la fila, para anulación idempotente.
func (r *TransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get transaction for update")
}

// MarkVoided marca la venta como anulada. El registro nunca se borra.
func (r *TransactionRepo) MarkVoided(id string, voidedAt time.Time) error {
	query := `UPDATE transactions SET status = $2, voided_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, entity.TransactionStatusVoided, voidedAt)
	if err != nil {
		return fmt.Errorf("mark transaction voided: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark transaction voided: transacción %s no existe", id)
	}
	return nil
}

// List lista ventas en un rango de fechas, más recientes primero.
func (r *TransactionRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []any{}
	pos := 1
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
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Items, &t.SubTotal, &t.Tax, &t.Total,
			&t.PaymentMethod, &t.AmountPaid, &t.Status, &t.CashierID, &t.CreatedAt, &t.VoidedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TransactionRepo) scanOne(row pgx.Row, op string) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.Items, &t.SubTotal, &t.Tax, &t.Total,
		&t.PaymentMethod, &t.AmountPaid, &t.Status, &t.CashierID, &t.CreatedAt, &t.VoidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &t, nil
}
