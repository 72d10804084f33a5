package restock

import (
	"context"
	"fmt"

	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// RestockUseCase ciclo de vida de las solicitudes de reposición creadas por
// el motor de ventas: pending → acknowledged → fulfilled.
type RestockUseCase struct {
	restockRepo repository.RestockingRequestRepository
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(restockRepo repository.RestockingRequestRepository) *RestockUseCase {
	return &RestockUseCase{restockRepo: restockRepo}
}

// ListOpen lista las solicitudes abiertas (pending/acknowledged).
func (uc *RestockUseCase) ListOpen(ctx context.Context, limit, offset int) ([]*entity.RestockingRequest, error) {
	return uc.restockRepo.ListOpen(limit, offset)
}

// OpenForVariant devuelve la solicitud abierta de una variante, si la hay.
func (uc *RestockUseCase) OpenForVariant(ctx context.Context, variantID string) (*entity.RestockingRequest, error) {
	req, err := uc.restockRepo.GetOpenByVariant(variantID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("sin solicitud abierta para la variante %s: %w", variantID, domain.ErrNotFound)
	}
	return req, nil
}

// Acknowledge marca una solicitud pendiente como reconocida.
func (uc *RestockUseCase) Acknowledge(ctx context.Context, id string) error {
	return uc.transition(id, entity.RestockStatusAcknowledged, entity.RestockStatusPending)
}

// Fulfill marca una solicitud abierta como cumplida, cerrándola. Con la
// solicitud cerrada la variante vuelve a ser elegible para una nueva.
func (uc *RestockUseCase) Fulfill(ctx context.Context, id string) error {
	return uc.transition(id, entity.RestockStatusFulfilled,
		entity.RestockStatusPending, entity.RestockStatusAcknowledged)
}

// transition valida el estado actual contra los permitidos y actualiza.
func (uc *RestockUseCase) transition(id, target string, allowedFrom ...string) error {
	req, err := uc.restockRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("solicitud %s: %w", id, domain.ErrNotFound)
	}
	for _, from := range allowedFrom {
		if req.Status == from {
			return uc.restockRepo.UpdateStatus(id, target)
		}
	}
	return fmt.Errorf("solicitud %s en estado %s no puede pasar a %s: %w",
		id, req.Status, target, domain.ErrConflict)
}
