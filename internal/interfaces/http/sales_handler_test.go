package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/domain"
	"github.com/jhoicas/ferreteria-pos/internal/domain/entity"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
	apphttp "github.com/jhoicas/ferreteria-pos/internal/interfaces/http"
	"github.com/jhoicas/ferreteria-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos: aquí se prueba el contrato HTTP (códigos y cuerpos), no la
// lógica de negocio; esa vive en los tests del caso de uso.
// ──────────────────────────────────────────────────────────────────────────────

// stubTxRunner devuelve un error fijo sin ejecutar la función de transacción.
type stubTxRunner struct{ err error }

func (r *stubTxRunner) Run(_ context.Context, _ func(
	repository.VariantRepository,
	repository.TransactionRepository,
	repository.RestockingRequestRepository,
	repository.StockMovementRepository,
	repository.NotificationRepository,
) error) error {
	return r.err
}

var _ sales.TxRunner = (*stubTxRunner)(nil)

// stubVariantRepo repo de variantes con una sola variante fija.
type stubVariantRepo struct{ v *entity.Variant }

func (r *stubVariantRepo) Create(*entity.Variant) error { return nil }
func (r *stubVariantRepo) GetByID(id string) (*entity.Variant, error) {
	if r.v != nil && r.v.ID == id {
		return r.v, nil
	}
	return nil, nil
}
func (r *stubVariantRepo) GetForUpdate(id string) (*entity.Variant, error) { return r.GetByID(id) }
func (r *stubVariantRepo) ListByProduct(string) ([]*entity.Variant, error) { return nil, nil }
func (r *stubVariantRepo) List() ([]*entity.Variant, error)                { return nil, nil }
func (r *stubVariantRepo) UpdateStock(*entity.Variant) error               { return nil }

var _ repository.VariantRepository = (*stubVariantRepo)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

// salesAppWithError arma la app con casos de uso cuyo TxRunner falla con err.
func salesAppWithError(err error) *fiber.App {
	runner := &stubTxRunner{err: err}
	cfg := sales.Config{VATRate: 0.12, HistoryRetentionDays: 90} // sin reintentos para tests de conflicto
	settle := sales.NewSettleSaleUseCase(runner, nil, nil, testLogger(), cfg)
	void := sales.NewVoidTransactionUseCase(runner, nil, testLogger(), cfg)
	return buildSalesApp(nil, settle, void)
}

func buildSalesApp(checker *sales.AvailabilityChecker, settle *sales.SettleSaleUseCase, void *sales.VoidTransactionUseCase) *fiber.App {
	app := fiber.New()
	h := apphttp.NewSalesHandler(settle, void, checker, nil, nil)
	app.Post("/api/sales", h.Settle)
	app.Post("/api/sales/availability", h.CheckAvailability)
	app.Post("/api/sales/:id/void", h.Void)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func validSaleBody() fiber.Map {
	return fiber.Map{
		"items":          []fiber.Map{{"variant_id": "v1", "quantity": 5}},
		"payment_method": "cash",
		"amount_paid":    "100.00",
		"cashier_id":     "cajero-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAvailability_OK(t *testing.T) {
	v := &entity.Variant{ID: "v1", VariantName: "Clavo 2in", UnitPrice: decimal.NewFromFloat(0.10), Quantity: 30}
	checker := sales.NewAvailabilityChecker(&stubVariantRepo{v: v})
	app := buildSalesApp(checker, nil, nil)

	resp := postJSON(t, app, "/api/sales/availability", fiber.Map{
		"items": []fiber.Map{{"variant_id": "v1", "quantity": 5}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["all_available"])
}

func TestCheckAvailability_Faltante(t *testing.T) {
	v := &entity.Variant{ID: "v1", VariantName: "Clavo 2in", Quantity: 2}
	checker := sales.NewAvailabilityChecker(&stubVariantRepo{v: v})
	app := buildSalesApp(checker, nil, nil)

	resp := postJSON(t, app, "/api/sales/availability", fiber.Map{
		"items": []fiber.Map{{"variant_id": "v1", "quantity": 5}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "el faltante no es un error HTTP")
	assert.Equal(t, false, decodeBody(t, resp)["all_available"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Liquidación: mapeo de errores a códigos
// ──────────────────────────────────────────────────────────────────────────────

func TestSettle_BodyInvalido(t *testing.T) {
	app := salesAppWithError(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// La validación de entrada corre antes de tocar la transacción, así que un
// carrito vacío se mapea a 400 sin llegar al TxRunner.
func TestSettle_CarritoVacioEs400(t *testing.T) {
	app := salesAppWithError(nil)

	body := validSaleBody()
	body["items"] = []fiber.Map{}
	resp := postJSON(t, app, "/api/sales", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
}

func TestSettle_FaltanteDeStockEs409ConDetalle(t *testing.T) {
	app := salesAppWithError(&domain.StockShortageError{
		VariantID: "v1", VariantName: "Clavo 2in", Available: 2, Requested: 5,
	})

	resp := postJSON(t, app, "/api/sales", validSaleBody())
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "v1", body["variant_id"])
	assert.Equal(t, float64(3), body["shortage"])
}

func TestSettle_MapeoDeErrores(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"variante inexistente", domain.ErrNotFound, http.StatusNotFound},
		{"conflicto agotado", domain.ErrConflict, http.StatusConflict},
		{"entrada inválida en la tx", domain.ErrInvalidInput, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := salesAppWithError(tc.err)
			resp := postJSON(t, app, "/api/sales", validSaleBody())
			assert.Equal(t, tc.wantCode, resp.StatusCode)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_NoEncontradaEs404(t *testing.T) {
	app := salesAppWithError(domain.ErrNotFound)
	resp := postJSON(t, app, "/api/sales/tx-1/void", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoid_YaAnuladaEs409(t *testing.T) {
	app := salesAppWithError(domain.ErrAlreadyVoided)
	resp := postJSON(t, app, "/api/sales/tx-1/void", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_VOIDED", decodeBody(t, resp)["code"])
}

func TestVoid_OK(t *testing.T) {
	app := salesAppWithError(nil)
	resp := postJSON(t, app, "/api/sales/tx-1/void", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "tx-1", decodeBody(t, resp)["transaction_id"])
}
