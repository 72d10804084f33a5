package repository

import "github.com/jhoicas/ferreteria-pos/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByPrimaryCode(code string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}
