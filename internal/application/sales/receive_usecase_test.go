package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
)

func TestReceive_SumaStockYAudita(t *testing.T) {
	s := newMemStore()
	s.addVariant(pieceVariant("v1", 10, 5))
	uc := sales.NewReceiveStockUseCase(&fakeTxRunner{s: s})

	err := uc.Receive(context.Background(), sales.ReceiveInput{
		VariantID:   "v1",
		Quantity:    20,
		Reference:   "OC-2026-001",
		PerformedBy: "bodeguero-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25), s.variants["v1"].Quantity)
	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, entity.MovementTypeReceive, m.Type)
	assert.Equal(t, int64(20), m.QuantityDelta)
	assert.Equal(t, int64(5), m.PreviousQty)
	assert.Equal(t, int64(25), m.NewQty)
	assert.Equal(t, "OC-2026-001", m.ReferenceTransactionID)
}

func TestReceive_VarianteInexistente(t *testing.T) {
	s := newMemStore()
	uc := sales.NewReceiveStockUseCase(&fakeTxRunner{s: s})

	err := uc.Receive(context.Background(), sales.ReceiveInput{VariantID: "fantasma", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.movements, "sin entrada no hay auditoría")
}

func TestReceive_EntradaInvalida(t *testing.T) {
	s := newMemStore()
	uc := sales.NewReceiveStockUseCase(&fakeTxRunner{s: s})
	ctx := context.Background()

	err := uc.Receive(ctx, sales.ReceiveInput{VariantID: "v1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Receive(ctx, sales.ReceiveInput{VariantID: "v1", Quantity: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "las entradas negativas no son ajustes")

	err = uc.Receive(ctx, sales.ReceiveInput{Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
