package sales

import (
	"context"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// AvailabilityChecker chequeo previo de stock para feedback rápido en caja.
// Es consultivo: el commit re-valida bajo su propio control de concurrencia,
// porque el stock puede cambiar entre el chequeo y la liquidación.
type AvailabilityChecker struct {
	variantRepo repository.VariantRepository
}

// NewAvailabilityChecker construye el checker con el repositorio atado al pool.
func NewAvailabilityChecker(variantRepo repository.VariantRepository) *AvailabilityChecker {
	return &AvailabilityChecker{variantRepo: variantRepo}
}

// Check devuelve la disponibilidad por línea. Distingue "variante no
// encontrada" (falla dura: el catálogo del cliente está desactualizado) de
// "cantidad insuficiente" (falla blanda: se resuelve pidiendo menos).
func (c *AvailabilityChecker) Check(ctx context.Context, items []SaleItemInput) (*dto.AvailabilityResponse, error) {
	resp := &dto.AvailabilityResponse{
		AllAvailable: true,
		Items:        make([]dto.ItemAvailabilityDTO, 0, len(items)),
	}
	for _, it := range items {
		v, err := c.variantRepo.GetByID(it.VariantID)
		if err != nil {
			return nil, err
		}
		item := dto.ItemAvailabilityDTO{VariantID: it.VariantID, Requested: it.Quantity}
		if v == nil {
			item.Found = false
			resp.AllAvailable = false
			resp.Items = append(resp.Items, item)
			continue
		}
		requested := it.Quantity
		if it.PerBundle && v.PiecesPerBundle > 0 {
			requested = it.Quantity * v.PiecesPerBundle
		}
		item.Found = true
		item.VariantName = v.DisplayName()
		item.Requested = requested
		item.Available = v.Quantity
		item.IsAvailable = v.Quantity >= requested
		if !item.IsAvailable {
			item.Shortage = requested - v.Quantity
			resp.AllAvailable = false
		}
		resp.Items = append(resp.Items, item)
	}
	return resp, nil
}
