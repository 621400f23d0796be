package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
	"github.com/jhoicas/linea-stock-api/internal/application/reports"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/linea-stock-api/internal/domain/inventory"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/cache"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/excel"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/memory"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/linea-stock-api/internal/interfaces/http"
	"github.com/jhoicas/linea-stock-api/pkg/logger"
)

// ─── helpers ─────────────────────────────────────────────────────────────────

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	ledger := domaininv.NewLedger("V1", "V9", domaininv.DefaultLowStockThreshold)
	log := logger.Nop()

	return apphttp.NewApp(apphttp.AppConfig{Name: "test", Logger: log, Pinger: store}, apphttp.RouterDeps{
		Stock:          inventory.NewStockUseCase(store, store.StockRecordRepository(), excel.NewMovementExporter(), ledger, log),
		Reconcile:      inventory.NewReconcileReportUseCase(store, ledger, log),
		Reports:        reports.NewReportUseCase(store.ReportRepository(), pdf.NewReportPDFGenerator()),
		Idempotency:    cache.NewInMemoryIdempotencyStore(),
		IdempotencyTTL: time.Minute,
	})
}

func do(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func putStock(t *testing.T, app *fiber.App, v1, v9 int) {
	t.Helper()
	resp := do(t, app, http.MethodPut, "/api/stock", map[string]any{
		"items": map[string]any{
			"v1": map[string]any{"quantity": v1},
			"v9": map[string]any{"quantity": v9},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// ─── stock ───────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	resp := do(t, newTestApp(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetStock_SiembraDocumento(t *testing.T) {
	resp := do(t, newTestApp(t), http.MethodGet, "/api/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rec := decode[entity.StockRecord](t, resp)
	assert.Equal(t, entity.StockRecordID, rec.ID)
	assert.Len(t, rec.Items, 2)
}

func TestAddMovement_SinStockEs404(t *testing.T) {
	resp := do(t, newTestApp(t), http.MethodPost, "/api/stock/movements", dto.AddMovementRequest{Model: "V1", Type: "entry", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAddMovement_InsuficienteEs400(t *testing.T) {
	app := newTestApp(t)
	putStock(t, app, 1, 0)

	resp := do(t, app, http.MethodPost, "/api/stock/movements", dto.AddMovementRequest{Model: "V1", Type: "exit", Quantity: 2})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAddMovement_CuerpoInvalido(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/stock/movements", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovimiento_AltaListadoYBorrado(t *testing.T) {
	app := newTestApp(t)
	putStock(t, app, 10, 5)

	resp := do(t, app, http.MethodPost, "/api/stock/movements", dto.AddMovementRequest{Model: "V9", Type: "entry", Quantity: 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rec := decode[entity.StockRecord](t, resp)
	assert.Equal(t, 8, rec.Items["v9"].Quantity)

	resp = do(t, app, http.MethodGet, "/api/stock/movements", nil)
	movs := decode[[]entity.Movement](t, resp)
	require.Len(t, movs, 1)

	path := "/api/stock/movements/" + url.PathEscape(movs[0].Date.Format(time.RFC3339Nano))
	resp = do(t, app, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DeleteMovementResponse](t, resp)
	assert.Equal(t, 5, out.UpdatedStock.Items["v9"].Quantity)

	resp = do(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddMovement_IdempotencyKey(t *testing.T) {
	app := newTestApp(t)
	putStock(t, app, 0, 0)
	body := dto.AddMovementRequest{Model: "V1", Type: "entry", Quantity: 2}

	resp := do(t, app, http.MethodPost, "/api/stock/movements", body, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/stock/movements", body, apphttp.HeaderIdempotencyKey, "k-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_REQUEST", decode[dto.ErrorResponse](t, resp).Code)

	rec := decode[entity.StockRecord](t, do(t, app, http.MethodGet, "/api/stock", nil))
	assert.Equal(t, 2, rec.Items["v1"].Quantity)
}

func TestAddMovement_IdempotencyKeyLiberadaTrasError(t *testing.T) {
	app := newTestApp(t)
	putStock(t, app, 0, 0)

	resp := do(t, app, http.MethodPost, "/api/stock/movements", dto.AddMovementRequest{Model: "V1", Type: "exit", Quantity: 1}, apphttp.HeaderIdempotencyKey, "k-2")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/stock/movements", dto.AddMovementRequest{Model: "V1", Type: "entry", Quantity: 1}, apphttp.HeaderIdempotencyKey, "k-2")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestExportMovements_XLSX(t *testing.T) {
	app := newTestApp(t)
	putStock(t, app, 0, 0)

	resp := do(t, app, http.MethodGet, "/api/stock/movements/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
}

// ─── reportes ────────────────────────────────────────────────────────────────

func reportBody(date string) dto.ReportRequest {
	return dto.ReportRequest{
		Header:  dto.ReportHeaderInput{Date: date, Supervisor: "Laura", Unit: "Línea 1", Shift: "morning"},
		Morning: []dto.OperatorEntryInput{{Name: "Ana", Tested: 3, Approved: 3, V9: 1}},
		Afternoon: []dto.OperatorEntryInput{
			{Name: "Luis", Tested: 1, Approved: 1, V9: 1},
		},
	}
}

func TestReport_CrudYConciliacion(t *testing.T) {
	app := newTestApp(t)
	putStock(t, app, 10, 5)

	resp := do(t, app, http.MethodPost, "/api/reports", reportBody("2026-03-01"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/api/reports", reportBody("2026-03-01"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/reports?shift=morning", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]entity.Report](t, resp), 1)

	resp = do(t, app, http.MethodGet, "/api/reports/2026-03-01/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.ReportSummaryResponse](t, resp)
	assert.Equal(t, 4, summary.StockImpact["v1"])

	resp = do(t, app, http.MethodGet, "/api/reports/2026-03-01/pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = do(t, app, http.MethodDelete, "/api/reports/2026-03-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DeleteReportResponse](t, resp)
	assert.Equal(t, 6, out.UpdatedStock.Items["v1"].Quantity)
	assert.Equal(t, 3, out.UpdatedStock.Items["v9"].Quantity)
	assert.Len(t, out.CompensatingMovements, 2)

	resp = do(t, app, http.MethodGet, "/api/reports/2026-03-01", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/api/reports/2026-03-01", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReport_UpdateFechaDistintaEs400(t *testing.T) {
	resp := do(t, newTestApp(t), http.MethodPut, "/api/reports/2026-03-01", reportBody("2026-03-02"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestReport_UpdateSinFechaEnCuerpoConservaClave(t *testing.T) {
	app := newTestApp(t)
	body := reportBody("")

	resp := do(t, app, http.MethodPut, "/api/reports/2026-03-01", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for i := 0; i < 10; i++ {
		do(t, app, http.MethodGet, "/api/reports/2026-12-3"+string(rune('0'+i%2)), nil)
		do(t, app, http.MethodGet, "/api/stock/movements", nil)
	}

	resp = do(t, app, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]entity.Report](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "2026-03-01", list[0].Header.Date)

	resp = do(t, app, http.MethodGet, "/api/reports/2026-03-01", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
