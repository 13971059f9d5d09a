package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmreyes/repuestos-api/internal/application/dto"
	"github.com/dmreyes/repuestos-api/internal/application/reports"
)

// ReportHandler maneja los reportes PDF y de rotación (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF (incluye inactivos)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.InventoryPDF(c.UserContext())
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_inventario.pdf"`)
	return c.Send(pdfBytes)
}

// SalesPDF godoc
// @Summary      Reporte de ventas de los últimos 7 días en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.SalesPDF(c.UserContext())
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_ventas.pdf"`)
	return c.Send(pdfBytes)
}

// NoRotation godoc
// @Summary      Productos activos sin movimientos en el período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días sin movimiento"  default(60)
// @Success      200   {array}  dto.NoRotationProductDTO
// @Router       /api/reports/no-rotation [get]
func (h *ReportHandler) NoRotation(c *fiber.Ctx) error {
	days := c.QueryInt("days", 0)
	out, err := h.uc.NoRotation(days)
	if err != nil {
		return mapDomainError(c, err)
	}
	if out == nil {
		out = []dto.NoRotationProductDTO{}
	}
	return c.JSON(out)
}
