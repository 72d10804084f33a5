package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-pos/internal/domain/catalog"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

func groupFixture() ([]entity.Product, []entity.Variant) {
	products := []entity.Product{
		{ID: "p1", Name: "Clavo de acero", Category: "Fijaciones", Brand: "Generic"},
		{ID: "p2", Name: "Taladro percutor", Category: "Herramientas eléctricas", Brand: "Bosch"},
		{ID: "p3", Name: "Producto nuevo sin variantes", Category: "Varios"},
	}
	variants := []entity.Variant{
		{
			ID: "v1", ParentProductID: "p1", VariantName: "Clavo 2in",
			UnitPrice: decimal.NewFromFloat(0.10), Quantity: 500, SafetyStock: 100,
			StorageLocation: "Bodega A", ShelfName: "Estante 3",
			Suppliers: []entity.SupplierSummary{{ID: "s1", Name: "Aceros SA"}},
		},
		{
			ID: "v2", ParentProductID: "p1", VariantName: "Clavo 3in",
			UnitPrice: decimal.NewFromFloat(0.15), Quantity: 200, SafetyStock: 100,
			StorageLocation: "Bodega A", ShelfName: "Estante 3", // misma ubicación: dedupe
			Suppliers: []entity.SupplierSummary{{ID: "s9", Name: "Aceros SA"}},
		},
		{
			ID: "v3", ParentProductID: "p2", VariantName: "Taladro 650W",
			UnitPrice: decimal.NewFromFloat(89.99), Quantity: 0, SafetyStock: 2,
			StorageLocation: "Bodega B",
		},
	}
	return products, variants
}

func TestGroupVariants_TodoProductoApareceAunqueVacio(t *testing.T) {
	products, variants := groupFixture()

	groups := catalog.GroupVariants(products, variants)
	require.Len(t, groups, 3, "todo producto emite un grupo, con o sin variantes")

	// p3 no tiene variantes: grupo vacío y fuera de stock
	empty := groups[2]
	assert.Equal(t, "p3", empty.ProductID)
	assert.Empty(t, empty.Variants)
	assert.Equal(t, catalog.StatusOutOfStock, empty.Status)
}

func TestGroupVariants_EstadosDeStock(t *testing.T) {
	products, variants := groupFixture()

	groups := catalog.GroupVariants(products, variants)

	// p1: 700 piezas contra safety total 200 → in-stock
	assert.Equal(t, catalog.StatusInStock, groups[0].Status)
	assert.Equal(t, int64(700), groups[0].TotalQuantity)

	// p2: 0 piezas → out-of-stock (gana sobre low-stock)
	assert.Equal(t, catalog.StatusOutOfStock, groups[1].Status)
}

// La regla canónica de low-stock compara contra la SUMA de safety stock de
// las variantes del grupo, no contra el safety de cada variante por separado.
func TestGroupVariants_LowStockContraSafetyTotal(t *testing.T) {
	products := []entity.Product{{ID: "p1", Name: "Tornillo"}}
	variants := []entity.Variant{
		{ID: "v1", ParentProductID: "p1", Quantity: 30, SafetyStock: 25},
		{ID: "v2", ParentProductID: "p1", Quantity: 10, SafetyStock: 25},
	}

	groups := catalog.GroupVariants(products, variants)
	require.Len(t, groups, 1)
	// 40 <= 50 → low-stock aunque v1 esté por encima de su propio safety
	assert.Equal(t, catalog.StatusLowStock, groups[0].Status)
}

func TestGroupVariants_UbicacionesDeduplicadas(t *testing.T) {
	products, variants := groupFixture()

	groups := catalog.GroupVariants(products, variants)
	assert.Equal(t, []string{"Bodega A / Estante 3"}, groups[0].Locations,
		"dos variantes en la misma ubicación producen una sola entrada")
}

func TestGroupVariants_ProveedoresPrimeroVistoGana(t *testing.T) {
	products, variants := groupFixture()

	groups := catalog.GroupVariants(products, variants)
	require.Len(t, groups[0].Suppliers, 1,
		"mismo nombre con código distinto es duplicado")
	assert.Equal(t, "s1", groups[0].Suppliers[0].ID,
		"ante duplicado gana la entrada vista primero")
}

func TestGroupVariants_RangoDePrecios(t *testing.T) {
	products, variants := groupFixture()

	groups := catalog.GroupVariants(products, variants)
	assert.True(t, groups[0].LowestPrice.Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, groups[0].HighestPrice.Equal(decimal.NewFromFloat(0.15)))
}
