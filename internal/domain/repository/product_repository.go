package repository

import "github.com/jhoicas/ferreteria-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
