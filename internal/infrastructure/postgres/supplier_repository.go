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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, primary_code, contact_person, phone, email, address, status, created_at, updated_at`

// Create persiste un proveedor. primary_code es único.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Status == "" {
		s.Status = entity.SupplierStatusActive
	}
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.PrimaryCode, s.ContactPerson, s.Phone, s.Email, s.Address, s.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create supplier: %w", errDuplicate(err))
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get supplier")
}

// GetByPrimaryCode obtiene un proveedor por su código primario único.
func (r *SupplierRepo) GetByPrimaryCode(code string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE primary_code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get supplier by code")
}

// List lista proveedores ordenados por nombre.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	if limit <= 0 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.PrimaryCode, &s.ContactPerson, &s.Phone,
			&s.Email, &s.Address, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) scanOne(row pgx.Row, op string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.PrimaryCode, &s.ContactPerson, &s.Phone,
		&s.Email, &s.Address, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}
