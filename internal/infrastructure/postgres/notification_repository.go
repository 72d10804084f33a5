package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación sobre PostgreSQL (usable con pool o tx).
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	variantID := (*string)(nil)
	if n.VariantID != "" {
		variantID = &n.VariantID
	}
	query := `
		INSERT INTO notifications (id, type, variant_id, message, created_at)
		VALUES ($1, $2, $3, $4, now())`
	_, err := r.q.Exec(context.Background(), query, n.ID, n.Type, variantID, n.Message)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListRecent lista las notificaciones más recientes.
func (r *NotificationRepo) ListRecent(limit int) ([]*entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, type, variant_id, message, created_at
		FROM notifications ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var variantID *string
		if err := rows.Scan(&n.ID, &n.Type, &variantID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if variantID != nil {
			n.VariantID = *variantID
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
