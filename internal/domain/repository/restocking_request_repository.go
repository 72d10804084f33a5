package repository

import "github.com/jhoicas/ferreteria-pos/internal/domain/entity"

// RestockingRequestRepository define el puerto de persistencia para
// solicitudes de reposición (DIP).
type RestockingRequestRepository interface {
	// CreateIfNoneOpen inserta la solicitud solo si la variante no tiene ya una
	// abierta (pending/acknowledged). Devuelve false si ya existía. La condición
	// se apoya en un índice único parcial, no en un check de aplicación.
	CreateIfNoneOpen(req *entity.RestockingRequest) (bool, error)
	GetByID(id string) (*entity.RestockingRequest, error)
	GetOpenByVariant(variantID string) (*entity.RestockingRequest, error)
	ListOpen(limit, offset int) ([]*entity.RestockingRequest, error)
	UpdateStatus(id, status string) error
}
