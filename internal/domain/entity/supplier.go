package entity

import "time"

// Estados de proveedor.
const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
)

// Supplier proveedor de la ferretería. Se referencia por id/nombre desde las
// variantes pero nunca es dueño del ciclo de vida de una variante.
type Supplier struct {
	ID            string
	Name          string
	PrimaryCode   string // único por proveedor, alfanumérico + guiones
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	Status        string // active, inactive
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
