package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SupplierSummary resumen de proveedor embebido en la variante al momento de escritura.
type SupplierSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PrimaryCode string `json:"primary_code,omitempty"`
}

// SaleRecord entrada del historial de ventas embebido en la variante.
// El historial es un log acotado: se recorta a 90 días en cada liquidación.
type SaleRecord struct {
	TransactionID string          `json:"transaction_id"`
	Quantity      int64           `json:"quantity"` // piezas base
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Variant es el SKU vendible de un producto: precio, stock y ubicación propios.
// Invariante: Quantity >= 0 siempre; solo la liquidación de venta la decrementa
// y solo recepción/ajuste la incrementan.
type Variant struct {
	ID              string
	ParentProductID string
	VariantName     string
	Name            string // nombre heredado, fallback de VariantName
	Brand           string
	Image           string
	ImageURL        string

	UnitPrice     decimal.Decimal
	OriginalPrice decimal.Decimal
	Quantity      int64 // siempre en piezas base
	Unit          string
	BaseUnit      string

	// Empaque por bulto (ej. caja de 12 piezas)
	IsBundle            bool
	PiecesPerBundle     int64
	BundlePackagingType string

	// Campos dimensionales (madera, varilla, lámina, etc.)
	MeasurementType  string
	Length           float64
	Width            float64
	Thickness        float64
	UnitWeightKg     float64
	UnitVolumeLiters float64

	// Ubicación física en bodega
	StorageLocation string
	ShelfName       string
	RowName         string

	// Política de reposición
	RestockLevel       int64
	MaximumStockLevel  int64
	SafetyStock        int64
	LeadTimeDays       int
	ReorderPoint       int64 // ROP explícito; 0 = usar RestockLevel o calcular con demanda diaria
	EconomicOrderQty   int64 // EOQ explícito; 0 = calcular con fórmula clásica
	OrderCost          float64
	HoldingCostPerUnit float64

	SalesHistory []SaleRecord
	Suppliers    []SupplierSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName devuelve el nombre a mostrar: VariantName y si no, Name.
func (v *Variant) DisplayName() string {
	if v.VariantName != "" {
		return v.VariantName
	}
	return v.Name
}

// FullLocation concatena bodega/estante/fila omitiendo los vacíos.
func (v *Variant) FullLocation() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.StorageLocation, v.ShelfName, v.RowName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " / ")
}

// ExplicitReorderPoint devuelve el ROP configurado de la variante:
// ReorderPoint si fue fijado; si no, RestockLevel actúa como ROP explícito
// (es el umbral que el operador configuró para disparar la reposición).
func (v *Variant) ExplicitReorderPoint() int64 {
	if v.ReorderPoint > 0 {
		return v.ReorderPoint
	}
	return v.RestockLevel
}

// PiecePrice devuelve el precio por pieza base. Para bultos divide el precio
// del bulto entre las piezas que contiene; para el resto es el precio unitario.
func (v *Variant) PiecePrice() decimal.Decimal {
	if v.IsBundle && v.PiecesPerBundle > 0 {
		return v.UnitPrice.Div(decimal.NewFromInt(v.PiecesPerBundle))
	}
	return v.UnitPrice
}

// AppendSale agrega una venta al historial y recorta entradas más viejas que retention.
func (v *Variant) AppendSale(rec SaleRecord, retention time.Duration) {
	v.SalesHistory = append(v.SalesHistory, rec)
	cutoff := rec.Timestamp.Add(-retention)
	kept := v.SalesHistory[:0]
	for _, r := range v.SalesHistory {
		if !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	v.SalesHistory = kept
}

// DailyDemand estima la demanda diaria promedio con el historial de los
// últimos windowDays días. Sin historial devuelve 0.
func (v *Variant) DailyDemand(now time.Time, windowDays int) float64 {
	if windowDays <= 0 || len(v.SalesHistory) == 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -windowDays)
	var total int64
	for _, r := range v.SalesHistory {
		if !r.Timestamp.Before(cutoff) {
			total += r.Quantity
		}
	}
	return float64(total) / float64(windowDays)
}
