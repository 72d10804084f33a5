package inventory

import "math"

// Prioridades de reposición.
type Priority string

const (
	PriorityNone     Priority = ""
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
)

// PolicyInput datos de una variante tras la venta, para evaluar la política de reorden.
type PolicyInput struct {
	CurrentQty         int64   // cantidad después del descuento
	SafetyStock        int64
	LeadTimeDays       int
	DailyDemand        float64 // promedio de piezas/día (historial 90 días)
	ReorderPointField  int64   // ROP explícito de la variante; 0 = calcular
	EOQField           int64   // EOQ explícito de la variante; 0 = calcular
	OrderCost          float64 // costo fijo de ordenar
	HoldingCostPerUnit float64 // costo anual de mantener una unidad
}

// Evaluation resultado de la política para una variante.
type Evaluation struct {
	ReorderPoint int64
	EOQ          int64
	Priority     Priority
	SuggestedQty int64
}

// ReorderPoint devuelve el ROP explícito si es > 0; si no,
// ceil(DemandaDiaria * LeadTime + SafetyStock).
func ReorderPoint(in PolicyInput) int64 {
	if in.ReorderPointField > 0 {
		return in.ReorderPointField
	}
	return int64(math.Ceil(in.DailyDemand*float64(in.LeadTimeDays) + float64(in.SafetyStock)))
}

// EconomicOrderQty devuelve el EOQ explícito si es > 0; si no, la fórmula
// clásica sqrt(2*DemandaAnual*CostoOrden / CostoMantencion) cuando las tres
// entradas son positivas, y 0 en caso contrario (sin señal de EOQ).
func EconomicOrderQty(in PolicyInput) int64 {
	if in.EOQField > 0 {
		return in.EOQField
	}
	annualDemand := in.DailyDemand * 365
	if annualDemand <= 0 || in.OrderCost <= 0 || in.HoldingCostPerUnit <= 0 {
		return 0
	}
	return int64(math.Round(math.Sqrt(2 * annualDemand * in.OrderCost / in.HoldingCostPerUnit)))
}

// Classify clasifica la urgencia dada la cantidad post-venta q y el ROP:
// critical si q <= 0 o q <= floor(ROP/2); urgent si 0 < q <= ROP;
// si q > ROP no se crea solicitud.
func Classify(q, rop int64) Priority {
	switch {
	case q <= 0 || q <= rop/2:
		return PriorityCritical
	case q <= rop:
		return PriorityUrgent
	default:
		return PriorityNone
	}
}

// SuggestedQty cantidad sugerida de pedido: EOQ si existe y es positivo,
// si no max(ROP + SafetyStock - CantidadActual, 1).
func SuggestedQty(in PolicyInput, rop, eoq int64) int64 {
	if eoq > 0 {
		return eoq
	}
	suggested := rop + in.SafetyStock - in.CurrentQty
	if suggested < 1 {
		suggested = 1
	}
	return suggested
}

// Evaluate aplica la política completa. Priority == PriorityNone significa
// que no debe crearse solicitud de reposición.
func Evaluate(in PolicyInput) Evaluation {
	rop := ReorderPoint(in)
	eoq := EconomicOrderQty(in)
	return Evaluation{
		ReorderPoint: rop,
		EOQ:          eoq,
		Priority:     Classify(in.CurrentQty, rop),
		SuggestedQty: SuggestedQty(in, rop, eoq),
	}
}
