package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/usecase"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return badRequest(c, "id inválido")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateLimits godoc
// @Summary      Actualizar límites de stock
// @Description  stockMinimo y stockMaximo son requeridos; stockMaximo debe ser mayor que stockMinimo.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateLimitsRequest  true  "Límites"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/limits [put]
func (h *ProductHandler) UpdateLimits(c *fiber.Ctx) error {
	var in dto.UpdateLimitsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	in.ID = dto.FlexNumber{Present: true, Raw: c.Params("id")}
	return h.updateLimits(c, in)
}

// UpdateLimitsLegacy godoc
// @Summary      Actualizar límites de stock (id en el cuerpo)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateLimitsRequest  true  "id + límites"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/update-stock-limits [post]
func (h *ProductHandler) UpdateLimitsLegacy(c *fiber.Ctx) error {
	var in dto.UpdateLimitsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	return h.updateLimits(c, in)
}

func (h *ProductHandler) updateLimits(c *fiber.Ctx, in dto.UpdateLimitsRequest) error {
	out, err := h.uc.UpdateLimits(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().
		Int64("producto_id", out.ID).
		Int("stock_minimo", out.StockMinimo).
		Int("stock_maximo", out.StockMaximo).
		Msg("límites actualizados")
	return c.JSON(out)
}
