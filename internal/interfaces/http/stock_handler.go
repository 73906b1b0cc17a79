package http

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// StockHandler carga de archivos de conteo y consulta de stock.
type StockHandler struct {
	ingest        *inventory.IngestUseCase
	query         *inventory.StockQueryUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(
	ingest *inventory.IngestUseCase,
	query *inventory.StockQueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{ingest: ingest, query: query, replenishment: replenishment, log: log}
}

// Upload godoc
// @Summary      Cargar archivo de stock
// @Description  CSV simple (sku,descripcion,stock) o reporte de valuación. Si no se indica almacén
// @Description  se toma el código del encabezado del reporte de valuación.
// @Tags         stock
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Archivo CSV"
// @Param        almacenId  formData  int     false  "ID del almacén"
// @Param        codigo     formData  string  false  "Código del almacén (ej. 0001-AGV)"
// @Success      200  {object}  dto.IngestResult
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/upload [post]
func (h *StockHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Archivo y almacén son requeridos")
	}

	var warehouseID int64
	if raw := strings.TrimSpace(c.FormValue("almacenId")); raw != "" {
		warehouseID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || warehouseID <= 0 {
			return badRequest(c, "almacenId debe ser un número válido")
		}
	}

	f, err := fh.Open()
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, h.log, err)
	}

	res, err := h.ingest.Ingest(c.UserContext(), inventory.IngestInput{
		WarehouseID:   warehouseID,
		WarehouseCode: c.FormValue("codigo"),
		FileName:      fh.Filename,
		Content:       content,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(res)
}

// Page godoc
// @Summary      Stock por almacén
// @Description  Una fila por producto con la cantidad en cada almacén, total y alerta.
// @Tags         stock
// @Produce      json
// @Param        offset  query  int     false  "Offset"  default(0)
// @Param        page    query  int     false  "Página (desde 1); alternativa a offset"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        search  query  string  false  "Busca en SKU y descripción"
// @Success      200  {object}  dto.StockPageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Page(c *fiber.Ctx) error {
	var req dto.StockPageRequest
	req.Limit = c.QueryInt("limit", 0)
	req.Offset = c.QueryInt("offset", 0)
	req.Search = c.Query("search")
	req.DefaultPage()
	if page := c.QueryInt("page", 0); page > 0 {
		req.Offset = (page - 1) * req.Limit
	}

	out, err := h.query.Page(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de resurtido
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *StockHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReplenishmentPDF godoc
// @Summary      Lista de resurtido en PDF
// @Tags         stock
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment.pdf [get]
func (h *StockHandler) ReplenishmentPDF(c *fiber.Ctx) error {
	out, err := h.replenishment.Report(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="resurtido.pdf"`)
	return c.Send(out)
}
