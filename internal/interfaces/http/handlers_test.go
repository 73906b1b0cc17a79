package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	"github.com/jhoicas/stock-almacenes/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-almacenes/internal/interfaces/http"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la app completa sobre el store en memoria con los almacenes por defecto.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	log := logger.Nop()

	warehouseUC := usecase.NewWarehouseUseCase(s.Warehouses())
	_, err := warehouseUC.Seed(context.Background(), usecase.DefaultWarehouses)
	require.NoError(t, err)

	app := apphttp.NewApp(apphttp.AppOptions{Name: "test", BodyLimit: 1024 * 1024}, apphttp.RouterDeps{
		WarehouseUC:     warehouseUC,
		ProductUC:       usecase.NewProductUseCase(s.Products(), nil),
		IngestUC:        inventory.NewIngestUseCase(s.TxRunner(), s.Warehouses(), nil, log),
		StockQueryUC:    inventory.NewStockQueryUseCase(s.StockQuery(), s.Warehouses(), s.Inventory(), nil, log),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(s.StockQuery(), nil),
		Log:             log,
	})
	return app, s
}

// uploadRequest construye un multipart con el archivo y los campos dados.
func uploadRequest(t *testing.T, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if content != "" {
		fw, err := w.CreateFormFile("file", "conteo.csv")
		require.NoError(t, err)
		_, err = io.WriteString(fw, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/stock/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

const plainCSV = "sku,descripcion,stock\nA-1,Tornillo,10\nA-2,Tuerca,5\n"

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestWarehouses_List(t *testing.T) {
	app, _ := buildTestApp(t)
	var out []dto.WarehouseResponse
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/warehouses", nil), &out)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, out, len(usecase.DefaultWarehouses))
	assert.Equal(t, "0001-AGV", out[0].Codigo)
}

func TestUpload_OK(t *testing.T) {
	app, _ := buildTestApp(t)
	var out dto.IngestResult
	resp := do(t, app, uploadRequest(t, plainCSV, map[string]string{"almacenId": "1"}), &out)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)
	assert.Equal(t, 2, out.UpdatedProducts)
	assert.Equal(t, 2, out.UpdatedInventory)
	assert.Equal(t, "0001-AGV", out.Codigo)
}

func TestUpload_PorCodigo(t *testing.T) {
	app, _ := buildTestApp(t)
	var out dto.IngestResult
	resp := do(t, app, uploadRequest(t, plainCSV, map[string]string{"codigo": "0008-AMON"}), &out)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(8), out.AlmacenID)
}

func TestUpload_SinArchivo(t *testing.T) {
	app, _ := buildTestApp(t)
	var out dto.ErrorResponse
	resp := do(t, app, uploadRequest(t, "", map[string]string{"almacenId": "1"}), &out)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Archivo y almacén son requeridos", out.Error)
}

func TestUpload_AlmacenInexistente(t *testing.T) {
	app, s := buildTestApp(t)
	var out dto.ErrorResponse
	resp := do(t, app, uploadRequest(t, plainCSV, map[string]string{"almacenId": "999"}), &out)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_WAREHOUSE", out.Code)
	assert.Contains(t, out.Error, "El almacén 999 no existe")
	assert.Contains(t, out.Error, "0020-PRES - Préstamos")

	p, err := s.Products().GetBySKU(context.Background(), "A-1")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpload_AlmacenIdInvalido(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := do(t, app, uploadRequest(t, plainCSV, map[string]string{"almacenId": "abc"}), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpload_ArchivoBinario(t *testing.T) {
	app, _ := buildTestApp(t)
	var out dto.ErrorResponse
	resp := do(t, app, uploadRequest(t, "PK\x03\x04\x00\x00binario", map[string]string{"almacenId": "1"}), &out)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNPARSABLE_FORMAT", out.Code)
}

func TestStock_PageYPaginacionPorPagina(t *testing.T) {
	app, _ := buildTestApp(t)
	do(t, app, uploadRequest(t, plainCSV, map[string]string{"almacenId": "1"}), nil)
	do(t, app, uploadRequest(t, "sku,d,s\nA-1,,3\n", map[string]string{"almacenId": "2"}), nil)

	var page dto.StockPageResponse
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/stock?limit=1&page=1", nil), &page)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, page.HasMore)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 13, page.Items[0].Total)
	assert.Len(t, page.Items[0].Almacenes, len(usecase.DefaultWarehouses))

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/stock?limit=1&page=2", nil), &page)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, page.HasMore)
	assert.Equal(t, "A-2", page.Items[0].SKU)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/stock?search=tuer", nil), &page)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, page.Total)
}

func TestProducts_ActualizarLimites(t *testing.T) {
	app, _ := buildTestApp(t)
	do(t, app, uploadRequest(t, plainCSV, map[string]string{"almacenId": "1"}), nil)

	var out dto.ProductResponse
	resp := do(t, app, jsonRequest(http.MethodPut, "/api/products/1/limits", `{"stockMinimo":20,"stockMaximo":"40","tiempoDeResurtido":5}`), &out)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 20, out.StockMinimo)
	assert.Equal(t, 40, out.StockMaximo)

	var list []dto.ReplenishmentSuggestionDTO
	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/stock/replenishment", nil), &list)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, list, 1)
	assert.Equal(t, "A-1", list[0].SKU)
	assert.Equal(t, 30, list[0].Sugerido)
}

func TestProducts_RutaHeredadaValidaciones(t *testing.T) {
	app, _ := buildTestApp(t)
	do(t, app, uploadRequest(t, plainCSV, map[string]string{"almacenId": "1"}), nil)

	var e dto.ErrorResponse
	resp := do(t, app, jsonRequest(http.MethodPost, "/api/update-stock-limits", `{"id":1,"stockMinimo":10,"stockMaximo":10}`), &e)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "El stock máximo debe ser mayor que el mínimo", e.Error)

	resp = do(t, app, jsonRequest(http.MethodPost, "/api/update-stock-limits", `{"stockMinimo":1,"stockMaximo":10}`), &e)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Todos los campos son requeridos", e.Error)

	resp = do(t, app, jsonRequest(http.MethodPost, "/api/update-stock-limits", `{"id":77,"stockMinimo":1,"stockMaximo":10}`), &e)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out dto.ProductResponse
	resp = do(t, app, jsonRequest(http.MethodPost, "/api/update-stock-limits", `{"id":"2","stockMinimo":"1","stockMaximo":"10"}`), &out)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "A-2", out.SKU)
}

func TestProducts_CrearYObtener(t *testing.T) {
	app, _ := buildTestApp(t)
	var created dto.ProductResponse
	resp := do(t, app, jsonRequest(http.MethodPost, "/api/products", `{"sku":"N-1","descripcion":"Nuevo"}`), &created)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, jsonRequest(http.MethodPost, "/api/products", `{"sku":"N-1"}`), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var got dto.ProductResponse
	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/1", nil), &got)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Nuevo", got.Descripcion)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/9", nil), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = do(t, app, httptest.NewRequest(http.MethodGet, "/api/products/abc", nil), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReplenishmentPDF_SinGenerador(t *testing.T) {
	app, _ := buildTestApp(t)
	var e dto.ErrorResponse
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/stock/replenishment.pdf", nil), &e)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", e.Code)
}

func TestRutaInexistente(t *testing.T) {
	app, _ := buildTestApp(t)
	var e dto.ErrorResponse
	resp := do(t, app, httptest.NewRequest(http.MethodGet, "/api/nada", nil), &e)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", e.Code)
}
