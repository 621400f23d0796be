package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
	"github.com/jhoicas/linea-stock-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes de turno.
type ReportHandler struct {
	uc        *reports.ReportUseCase
	reconcile *inventory.ReconcileReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase, reconcile *inventory.ReconcileReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, reconcile: reconcile}
}

// dateParam copia el parámetro: Fiber reutiliza el buffer de la ruta al terminar la petición
// y la fecha puede quedar guardada como clave del reporte.
func dateParam(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("date"))
}

// List godoc
// @Summary      Listar reportes (fecha descendente)
// @Tags         reports
// @Produce      json
// @Param        from   query  string  false  "desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "hasta (YYYY-MM-DD)"
// @Param        shift  query  string  false  "morning | afternoon"
// @Param        unit   query  string  false  "unidad"
// @Success      200  {array}   entity.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	var q dto.ReportListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Obtener reporte por fecha
// @Tags         reports
// @Produce      json
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  entity.Report
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{date} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	rep, err := h.uc.Get(c.Context(), dateParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// Summary godoc
// @Summary      Totales y tasas del reporte
// @Tags         reports
// @Produce      json
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.ReportSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{date}/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), dateParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar reporte en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{date}/pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DownloadPDF(c.Context(), dateParam(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Create godoc
// @Summary      Crear reporte (una fecha = un reporte)
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "reporte"
// @Success      201  {object}  entity.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rep)
}

// Update godoc
// @Summary      Reemplazar reporte (upsert)
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        date  path  string             true  "YYYY-MM-DD"
// @Param        body  body  dto.ReportRequest  true  "reporte completo"
// @Success      200  {object}  entity.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{date} [put]
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	rep, err := h.uc.Update(c.Context(), dateParam(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// Delete godoc
// @Summary      Eliminar reporte y descontar su contribución del stock
// @Tags         reports
// @Produce      json
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.DeleteReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/{date} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	out, err := h.reconcile.DeleteReport(c.Context(), dateParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
