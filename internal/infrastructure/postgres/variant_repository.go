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

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
// El historial de ventas y los resúmenes de proveedor van embebidos como JSONB.
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `
	id, parent_product_id, variant_name, name, brand, image, image_url,
	unit_price, original_price, quantity, unit, base_unit,
	is_bundle, pieces_per_bundle, bundle_packaging_type,
	measurement_type, length, width, thickness, unit_weight_kg, unit_volume_liters,
	storage_location, shelf_name, row_name,
	restock_level, maximum_stock_level, safety_stock, lead_time_days,
	reorder_point, economic_order_qty, order_cost, holding_cost_per_unit,
	sales_history, suppliers, created_at, updated_at`

// Create persiste una variante nueva.
func (r *VariantRepo) Create(v *entity.Variant) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.SalesHistory == nil {
		v.SalesHistory = []entity.SaleRecord{}
	}
	if v.Suppliers == nil {
		v.Suppliers = []entity.SupplierSummary{}
	}
	query := `
		INSERT INTO variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		        $29, $30, $31, $32, $33, $34, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.ParentProductID, v.VariantName, v.Name, v.Brand, v.Image, v.ImageURL,
		v.UnitPrice, v.OriginalPrice, v.Quantity, v.Unit, v.BaseUnit,
		v.IsBundle, v.PiecesPerBundle, v.BundlePackagingType,
		v.MeasurementType, v.Length, v.Width, v.Thickness, v.UnitWeightKg, v.UnitVolumeLiters,
		v.StorageLocation, v.ShelfName, v.RowName,
		v.RestockLevel, v.MaximumStockLevel, v.SafetyStock, v.LeadTimeDays,
		v.ReorderPoint, v.EconomicOrderQty, v.OrderCost, v.HoldingCostPerUnit,
		v.SalesHistory, v.Suppliers,
	)
	if err != nil {
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID. Devuelve (nil, nil) si no existe.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get variant")
}

// GetForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
// Devuelve (nil, nil) si no existe.
func (r *VariantRepo) GetForUpdate(id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get variant for update")
}

// UpdateStock escribe cantidad, historial recortado y updated_at en una pasada.
// La columna quantity tiene CHECK (quantity >= 0) como última línea de defensa.
func (r *VariantRepo) UpdateStock(v *entity.Variant) error {
	query := `
		UPDATE variants
		SET quantity = $2, sales_history = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, v.ID, v.Quantity, v.SalesHistory)
	if err != nil {
		return fmt.Errorf("update variant stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update variant stock: variante %s no existe", v.ID)
	}
	return nil
}

// ListByProduct lista las variantes de un producto padre.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE parent_product_id = $1 ORDER BY variant_name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants by product: %w", err)
	}
	return r.scanMany(rows)
}

// List lista todas las variantes (para agrupación y vistas de inventario).
func (r *VariantRepo) List() ([]*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants ORDER BY parent_product_id, variant_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	return r.scanMany(rows)
}

func (r *VariantRepo) scanOne(row pgx.Row, op string) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(
		&v.ID, &v.ParentProductID, &v.VariantName, &v.Name, &v.Brand, &v.Image, &v.ImageURL,
		&v.UnitPrice, &v.OriginalPrice, &v.Quantity, &v.Unit, &v.BaseUnit,
		&v.IsBundle, &v.PiecesPerBundle, &v.BundlePackagingType,
		&v.MeasurementType, &v.Length, &v.Width, &v.Thickness, &v.UnitWeightKg, &v.UnitVolumeLiters,
		&v.StorageLocation, &v.ShelfName, &v.RowName,
		&v.RestockLevel, &v.MaximumStockLevel, &v.SafetyStock, &v.LeadTimeDays,
		&v.ReorderPoint, &v.EconomicOrderQty, &v.OrderCost, &v.HoldingCostPerUnit,
		&v.SalesHistory, &v.Suppliers, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

func (r *VariantRepo) scanMany(rows pgx.Rows) ([]*entity.Variant, error) {
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(
			&v.ID, &v.ParentProductID, &v.VariantName, &v.Name, &v.Brand, &v.Image, &v.ImageURL,
			&v.UnitPrice, &v.OriginalPrice, &v.Quantity, &v.Unit, &v.BaseUnit,
			&v.IsBundle, &v.PiecesPerBundle, &v.BundlePackagingType,
			&v.MeasurementType, &v.Length, &v.Width, &v.Thickness, &v.UnitWeightKg, &v.UnitVolumeLiters,
			&v.StorageLocation, &v.ShelfName, &v.RowName,
			&v.RestockLevel, &v.MaximumStockLevel, &v.SafetyStock, &v.LeadTimeDays,
			&v.ReorderPoint, &v.EconomicOrderQty, &v.OrderCost, &v.HoldingCostPerUnit,
			&v.SalesHistory, &v.Suppliers, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
