package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/analytics"
	"github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/domain"
)

// ReportHandler painel, planilhas e reconciliação dos contadores.
type ReportHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *report.ReportUseCase
	engine    *inventory.Engine
}

// NewReportHandler constrói o handler.
func NewReportHandler(dashboard *analytics.DashboardUseCase, reports *report.ReportUseCase, engine *inventory.Engine) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: reports, engine: engine}
}

// DashboardStats godoc
// @Summary      Estatísticas do painel
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *ReportHandler) DashboardStats(c *fiber.Ctx) error {
	out, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Workbook godoc
// @Summary      Relatório em Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind       path   string  true   "inventario | entradas | saidas | devolucoes | estoque_baixo"
// @Param        startDate  query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{kind}.xlsx [get]
func (h *ReportHandler) Workbook(c *fiber.Ctx) error {
	kind := c.Params("kind")
	if !report.IsValidKind(kind) {
		return domain.Invalid("relatório desconhecido: %q", kind)
	}
	period, err := parsePeriod(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return err
	}
	f, err := h.reports.Workbook(c.UserContext(), kind, period)
	if err != nil {
		return err
	}
	return sendFile(c, f, "attachment")
}

// ReconcileAll godoc
// @Summary      Conferir os contadores de todos os itens contra o histórico
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReconcileResponse
// @Router       /api/inventory/reconcile [get]
func (h *ReportHandler) ReconcileAll(c *fiber.Ctx) error {
	out, err := h.engine.ReconcileAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ReconcileItem godoc
// @Summary      Conferir os contadores de um item
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do item"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/reconcile [get]
func (h *ReportHandler) ReconcileItem(c *fiber.Ctx) error {
	out, err := h.engine.Reconcile(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RepairItem godoc
// @Summary      Regravar os contadores de um item a partir do histórico
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do item"
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/items/{id}/reconcile/repair [post]
func (h *ReportHandler) RepairItem(c *fiber.Ctx) error {
	out, err := h.engine.Repair(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
