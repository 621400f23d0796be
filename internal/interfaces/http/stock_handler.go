package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
)

// StockHandler maneja las peticiones HTTP del documento de stock y sus movimientos.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener stock actual (se crea en cero si no existe)
// @Tags         stock
// @Produce      json
// @Success      200  {object}  entity.StockRecord
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	rec, err := h.uc.Get(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rec)
}

// Replace godoc
// @Summary      Reemplazar cantidades por variante
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplaceStockRequest  true  "items por variante (v1, v9)"
// @Success      200   {object}  entity.StockRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock [put]
func (h *StockHandler) Replace(c *fiber.Ctx) error {
	var in dto.ReplaceStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := h.uc.Replace(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rec)
}

// ListMovements godoc
// @Summary      Listar movimientos (fecha descendente)
// @Tags         stock
// @Produce      json
// @Success      200  {array}   entity.Movement
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	movs, err := h.uc.ListMovements(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movs)
}

// ExportMovements godoc
// @Summary      Descargar movimientos en XLSX
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/export [get]
func (h *StockHandler) ExportMovements(c *fiber.Ctx) error {
	out, err := h.uc.ExportMovements(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.xlsx"`)
	return c.Send(out)
}

// AddMovement godoc
// @Summary      Registrar entrada o salida
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "clave para no repetir el movimiento en reintentos"
// @Param        body             body    dto.AddMovementRequest  true   "model, type (entry|exit), quantity"
// @Success      201  {object}  entity.StockRecord
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.AddMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rec, err := h.uc.AddMovement(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento y revertir su efecto
// @Tags         stock
// @Produce      json
// @Param        date  path  string  true  "fecha RFC 3339 del movimiento (o su id)"
// @Success      200  {object}  dto.DeleteMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{date} [delete]
func (h *StockHandler) DeleteMovement(c *fiber.Ctx) error {
	key, err := url.PathUnescape(utils.CopyString(c.Params("date")))
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.DeleteMovement(c.Context(), key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
