package repository

import "github.com/jhoicas/ferreteria-pos/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para notificaciones (DIP).
// Son informativas: una falla de escritura nunca revierte la operación que la originó.
type NotificationRepository interface {
	Create(n *entity.Notification) error
	ListRecent(limit int) ([]*entity.Notification, error)
}
