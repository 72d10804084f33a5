package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ferreteria-pos/internal/domain/inventory"
)

func TestReorderPoint_ExplicitoGana(t *testing.T) {
	rop := inventory.ReorderPoint(inventory.PolicyInput{
		ReorderPointField: 42,
		DailyDemand:       100, // se ignora si hay ROP explícito
		LeadTimeDays:      30,
	})
	assert.Equal(t, int64(42), rop)
}

func TestReorderPoint_Calculado(t *testing.T) {
	// demanda 2.5/día, lead time 4 días, safety 3 → ceil(10 + 3) = 13
	rop := inventory.ReorderPoint(inventory.PolicyInput{
		DailyDemand:  2.5,
		LeadTimeDays: 4,
		SafetyStock:  3,
	})
	assert.Equal(t, int64(13), rop)

	// ceil redondea hacia arriba las fracciones
	rop = inventory.ReorderPoint(inventory.PolicyInput{
		DailyDemand:  1.1,
		LeadTimeDays: 3,
		SafetyStock:  0,
	})
	assert.Equal(t, int64(4), rop, "ceil(3.3) = 4")
}

func TestEconomicOrderQty_Formula(t *testing.T) {
	// EOQ = sqrt(2 * D * S / H), con D = demanda anual
	// demanda 2/día → D = 730; S = 50; H = 2 → sqrt(36500) ≈ 191
	eoq := inventory.EconomicOrderQty(inventory.PolicyInput{
		DailyDemand:        2,
		OrderCost:          50,
		HoldingCostPerUnit: 2,
	})
	assert.Equal(t, int64(191), eoq)
}

func TestEconomicOrderQty_SinSenalDevuelveCero(t *testing.T) {
	// Sin costo de mantención no hay EOQ calculable
	eoq := inventory.EconomicOrderQty(inventory.PolicyInput{
		DailyDemand: 2,
		OrderCost:   50,
	})
	assert.Zero(t, eoq)

	// Sin demanda tampoco
	eoq = inventory.EconomicOrderQty(inventory.PolicyInput{
		OrderCost:          50,
		HoldingCostPerUnit: 2,
	})
	assert.Zero(t, eoq)
}

func TestEconomicOrderQty_ExplicitoGana(t *testing.T) {
	eoq := inventory.EconomicOrderQty(inventory.PolicyInput{
		EOQField:           24,
		DailyDemand:        2,
		OrderCost:          50,
		HoldingCostPerUnit: 2,
	})
	assert.Equal(t, int64(24), eoq)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		q    int64
		rop  int64
		want inventory.Priority
	}{
		{"agotado es critical", 0, 5, inventory.PriorityCritical},
		{"mitad del ROP es critical", 2, 5, inventory.PriorityCritical},
		{"bajo el ROP es urgent", 4, 5, inventory.PriorityUrgent},
		{"exactamente en el ROP es urgent", 5, 5, inventory.PriorityUrgent},
		{"sobre el ROP no genera solicitud", 6, 5, inventory.PriorityNone},
		{"negativo defensivo es critical", -1, 5, inventory.PriorityCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Classify(tc.q, tc.rop))
		})
	}
}

func TestSuggestedQty(t *testing.T) {
	// Con EOQ disponible, la sugerencia es el EOQ
	got := inventory.SuggestedQty(inventory.PolicyInput{CurrentQty: 3, SafetyStock: 5}, 10, 40)
	assert.Equal(t, int64(40), got)

	// Sin EOQ: ROP + safety - actual
	got = inventory.SuggestedQty(inventory.PolicyInput{CurrentQty: 3, SafetyStock: 5}, 10, 0)
	assert.Equal(t, int64(12), got)

	// Nunca sugiere menos de 1
	got = inventory.SuggestedQty(inventory.PolicyInput{CurrentQty: 100, SafetyStock: 0}, 2, 0)
	assert.Equal(t, int64(1), got)
}

func TestEvaluate_Completo(t *testing.T) {
	// Venta deja 4 piezas; ROP explícito 5 → urgent con sugerencia ROP+safety-q
	eval := inventory.Evaluate(inventory.PolicyInput{
		CurrentQty:        4,
		SafetyStock:       3,
		ReorderPointField: 5,
	})
	assert.Equal(t, int64(5), eval.ReorderPoint)
	assert.Equal(t, inventory.PriorityUrgent, eval.Priority)
	assert.Equal(t, int64(4), eval.SuggestedQty, "5 + 3 - 4")

	// Con stock holgado no hay solicitud
	eval = inventory.Evaluate(inventory.PolicyInput{
		CurrentQty:        50,
		ReorderPointField: 5,
	})
	assert.Equal(t, inventory.PriorityNone, eval.Priority)
}
