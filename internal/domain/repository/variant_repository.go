package repository

import "github.com/jhoicas/ferreteria-pos/internal/domain/entity"

// VariantRepository define el puerto de persistencia para Variant (DIP).
// Usado dentro de transacciones para garantizar consistencia de stock.
type VariantRepository interface {
	Create(variant *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	ListByProduct(productID string) ([]*entity.Variant, error)
	List() ([]*entity.Variant, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Variant, error)
	// UpdateStock escribe cantidad + historial de ventas recortado en una sola pasada.
	UpdateStock(variant *entity.Variant) error
}
