package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

var _ repository.RestockingRequestRepository = (*RestockingRequestRepo)(nil)

// RestockingRequestRepo implementación sobre PostgreSQL (usable con pool o tx).
// La invariante "a lo sumo una solicitud abierta por variante" la garantiza
// el índice único parcial uq_restocking_requests_open, no lógica de aplicación.
type RestockingRequestRepo struct {
	q Querier
}

// NewRestockingRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestockingRequestRepository(q Querier) *RestockingRequestRepo {
	return &RestockingRequestRepo{q: q}
}

const restockColumns = `id, variant_id, variant_name, current_qty, reorder_point, suggested_qty, priority, status, created_at, updated_at`

// CreateIfNoneOpen inserta la solicitud salvo que la variante ya tenga una
// abierta. El ON CONFLICT contra el índice único parcial hace el
// check-and-create libre de carreras. Devuelve false si no se insertó.
func (r *RestockingRequestRepo) CreateIfNoneOpen(req *entity.RestockingRequest) (bool, error) {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	query := `
		INSERT INTO restocking_requests (` + restockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (variant_id) WHERE status IN ('pending', 'acknowledged')
		DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		req.ID, req.VariantID, req.VariantName, req.CurrentQty,
		req.ReorderPoint, req.SuggestedQty, req.Priority, req.Status)
	if err != nil {
		return false, fmt.Errorf("create restocking request: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID obtiene una solicitud por ID. Devuelve (nil, nil) si no existe.
func (r *RestockingRequestRepo) GetByID(id string) (*entity.RestockingRequest, error) {
	query := `SELECT ` + restockColumns + ` FROM restocking_requests WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get restocking request")
}

// GetOpenByVariant obtiene la solicitud abierta de una variante, si existe.
func (r *RestockingRequestRepo) GetOpenByVariant(variantID string) (*entity.RestockingRequest, error) {
	query := `
		SELECT ` + restockColumns + ` FROM restocking_requests
		WHERE variant_id = $1 AND status IN ('pending', 'acknowledged')`
	return r.scanOne(r.q.QueryRow(context.Background(), query, variantID), "get open restocking request")
}

// ListOpen lista solicitudes abiertas, críticas primero, luego más antiguas.
func (r *RestockingRequestRepo) ListOpen(limit, offset int) ([]*entity.RestockingRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + restockColumns + ` FROM restocking_requests
		WHERE status IN ('pending', 'acknowledged')
		ORDER BY (priority = 'critical') DESC, created_at
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list open restocking requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.RestockingRequest
	for rows.Next() {
		var req entity.RestockingRequest
		if err := rows.Scan(&req.ID, &req.VariantID, &req.VariantName, &req.CurrentQty,
			&req.ReorderPoint, &req.SuggestedQty, &req.Priority, &req.Status,
			&req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan restocking request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de una solicitud.
func (r *RestockingRequestRepo) UpdateStatus(id, status string) error {
	query := `UPDATE restocking_requests SET status = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update restocking request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update restocking request status: solicitud %s no existe", id)
	}
	return nil
}

func (r *RestockingRequestRepo) scanOne(row pgx.Row, op string) (*entity.RestockingRequest, error) {
	var req entity.RestockingRequest
	err := row.Scan(&req.ID, &req.VariantID, &req.VariantName, &req.CurrentQty,
		&req.ReorderPoint, &req.SuggestedQty, &req.Priority, &req.Status,
		&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &req, nil
}
