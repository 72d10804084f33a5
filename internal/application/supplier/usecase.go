package supplier

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ferreteria-pos/internal/application/dto"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// primaryCodePattern: alfanumérico y guiones, sin espacios.
var primaryCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// SupplierUseCase altas y consultas de proveedores. El código primario es
// único: la tabla lo garantiza, aquí solo se valida el formato y se da un
// error temprano más claro.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// Create registra un proveedor nuevo.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("nombre de proveedor requerido: %w", domain.ErrInvalidInput)
	}
	if in.PrimaryCode == "" || !primaryCodePattern.MatchString(in.PrimaryCode) {
		return nil, fmt.Errorf("código primario %q inválido: %w", in.PrimaryCode, domain.ErrInvalidInput)
	}

	existing, err := uc.supplierRepo.GetByPrimaryCode(in.PrimaryCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("código primario %q ya registrado: %w", in.PrimaryCode, domain.ErrDuplicate)
	}

	now := time.Now()
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		PrimaryCode:   in.PrimaryCode,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Status:        entity.SupplierStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID busca un proveedor por id.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("proveedor %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

// List lista proveedores paginados.
func (uc *SupplierUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(limit, offset)
}
