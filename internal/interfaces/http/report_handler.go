package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/detailing-stock-api/internal/application/reports"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler maneja dashboard, reportes, exportaciones y respaldos (protegido).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen para la pantalla principal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Description  Cada producto con su valor y acumulados históricos por tipo de movimiento.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Expenses godoc
// @Summary      Reporte de gastos por mes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Cantidad de meses hacia atrás (por defecto 12)"
// @Success      200  {object}  dto.ExpensesReportResponse
// @Router       /api/reports/expenses [get]
func (h *ReportHandler) Expenses(c *fiber.Ctx) error {
	months := c.QueryInt("months", 0)
	out, err := h.uc.ExpensesReport(c.Context(), months)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportExcel godoc
// @Summary      Exportar inventario y movimientos a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/reports/export [get]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	filename, content, err := h.uc.ExportInventory(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(content)
}

// ExportPDF godoc
// @Summary      Exportar reporte de inventario a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/export-pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	filename, content, err := h.uc.ExportInventoryPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(content)
}

// CreateBackup godoc
// @Summary      Crear respaldo XLSX del sistema
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupResponse
// @Router       /api/backups [post]
func (h *ReportHandler) CreateBackup(c *fiber.Ctx) error {
	out, err := h.uc.CreateBackup(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBackups godoc
// @Summary      Listar respaldos existentes
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BackupFileDTO
// @Router       /api/backups [get]
func (h *ReportHandler) ListBackups(c *fiber.Ctx) error {
	out, err := h.uc.ListBackups()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
