package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-pos/internal/domain/catalog"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func baseProduct() entity.Product {
	return entity.Product{
		ID:       "prod-1",
		Name:     "Martillo carpintero",
		Category: "Herramientas",
		Brand:    "Stanley",
		Image:    "producto.jpg",
	}
}

func priceVariant(id string, price float64, qty int64) entity.Variant {
	return entity.Variant{
		ID:              id,
		ParentProductID: "prod-1",
		VariantName:     "Variante " + id,
		UnitPrice:       decimal.NewFromFloat(price),
		Quantity:        qty,
	}
}

func TestMergeProduct_FallbacksDeCampos(t *testing.T) {
	product := baseProduct()
	// Variante sin marca, sin imagen, sin unidad: debe heredar del producto
	// o caer a los defaults.
	v := entity.Variant{
		ID:              "var-1",
		ParentProductID: "prod-1",
		Name:            "Nombre heredado",
		UnitPrice:       decimal.NewFromFloat(25.50),
		Quantity:        10,
	}

	merged := catalog.MergeProduct(product, []entity.Variant{v})
	require.Len(t, merged.Variants, 1)

	mv := merged.Variants[0]
	assert.Equal(t, "Nombre heredado", mv.VariantName, "sin VariantName debe usar Name")
	assert.Equal(t, "Stanley", mv.Brand, "la marca cae al producto antes que al default")
	assert.Equal(t, "producto.jpg", mv.Image, "la imagen cae a la del producto")
	assert.Equal(t, catalog.DefaultUnit, mv.Unit, "sin unidad debe usar el default")
	assert.True(t, mv.OriginalPrice.Equal(decimal.NewFromFloat(25.50)),
		"sin precio original debe usarse el precio unitario")
}

func TestMergeProduct_DefaultBrandSinProducto(t *testing.T) {
	product := baseProduct()
	product.Brand = ""

	merged := catalog.MergeProduct(product, []entity.Variant{
		{ID: "var-1", ParentProductID: "prod-1", VariantName: "X", Quantity: 1},
	})
	assert.Equal(t, catalog.DefaultBrand, merged.Variants[0].Brand)
}

func TestMergeProduct_PrioridadDeCamposDeVariante(t *testing.T) {
	product := baseProduct()
	v := entity.Variant{
		ID:              "var-1",
		ParentProductID: "prod-1",
		VariantName:     "Propio",
		Name:            "Heredado",
		Brand:           "Truper",
		Image:           "variante.jpg",
		ImageURL:        "url.jpg",
		Unit:            "caja",
		BaseUnit:        "pieza",
		UnitPrice:       decimal.NewFromInt(100),
		OriginalPrice:   decimal.NewFromInt(120),
	}

	merged := catalog.MergeProduct(product, []entity.Variant{v})
	mv := merged.Variants[0]
	assert.Equal(t, "Propio", mv.VariantName)
	assert.Equal(t, "Truper", mv.Brand, "la marca de la variante gana sobre la del producto")
	assert.Equal(t, "variante.jpg", mv.Image, "Image gana sobre ImageURL")
	assert.Equal(t, "caja", mv.Unit)
	assert.True(t, mv.OriginalPrice.Equal(decimal.NewFromInt(120)))
}

func TestMergeProduct_RangoDePreciosIgnoraCeros(t *testing.T) {
	product := baseProduct()
	variants := []entity.Variant{
		priceVariant("a", 15, 2),
		priceVariant("b", 0, 5), // gratis/sin precio: no cuenta para el rango
		priceVariant("c", 40, 1),
	}

	merged := catalog.MergeProduct(product, variants)
	assert.True(t, merged.LowestPrice.Equal(decimal.NewFromInt(15)),
		"el precio 0 no debe bajar el mínimo")
	assert.True(t, merged.HighestPrice.Equal(decimal.NewFromInt(40)))
}

func TestMergeProduct_Agregados(t *testing.T) {
	product := baseProduct()
	variants := []entity.Variant{
		priceVariant("a", 10, 3),
		priceVariant("b", 20, 0),
	}

	merged := catalog.MergeProduct(product, variants)
	assert.Equal(t, int64(3), merged.TotalStock)
	assert.Equal(t, 2, merged.TotalVariants)
	assert.True(t, merged.HasMultipleVariants)
	assert.True(t, merged.IsInStock)
}

func TestMergeProduct_SinVariantes(t *testing.T) {
	merged := catalog.MergeProduct(baseProduct(), nil)
	assert.Empty(t, merged.Variants)
	assert.Zero(t, merged.TotalStock)
	assert.False(t, merged.IsInStock)
	assert.False(t, merged.HasMultipleVariants)
	assert.True(t, merged.LowestPrice.IsZero())
}

func TestMergeProduct_ProveedoresDeduplicadosEnOrden(t *testing.T) {
	product := baseProduct()
	v1 := priceVariant("a", 10, 1)
	v1.Suppliers = []entity.SupplierSummary{
		{ID: "s1", Name: "Aceros SA"},
		{ID: "s2", Name: "Ferremax"},
	}
	v2 := priceVariant("b", 20, 1)
	v2.Suppliers = []entity.SupplierSummary{
		{ID: "s3", Name: "Aceros SA"}, // mismo nombre, código distinto: duplicado
		{ID: "s4", Name: "Tornillos del Norte"},
	}

	merged := catalog.MergeProduct(product, []entity.Variant{v1, v2})
	assert.Equal(t, []string{"Aceros SA", "Ferremax", "Tornillos del Norte"}, merged.AllSuppliers,
		"dedupe por nombre preservando orden de primera aparición")

	// El proveedor primario de cada variante es el primero de su lista
	require.NotNil(t, merged.Variants[0].PrimarySupplier)
	assert.Equal(t, "Aceros SA", merged.Variants[0].PrimarySupplier.Name)
}

// TestMergeProduct_Idempotente: la mezcla es función pura del estado; dos
// corridas con la misma entrada producen exactamente la misma vista.
func TestMergeProduct_Idempotente(t *testing.T) {
	product := baseProduct()
	variants := []entity.Variant{priceVariant("a", 10, 3), priceVariant("b", 20, 0)}

	m1 := catalog.MergeProduct(product, variants)
	m2 := catalog.MergeProduct(product, variants)
	assert.Equal(t, m1, m2)
}
