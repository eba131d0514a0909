package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// ExitHandler saídas de estoque e o comprovante em PDF.
type ExitHandler struct {
	engine  *inventory.Engine
	reports *report.ReportUseCase
}

// NewExitHandler constrói o handler.
func NewExitHandler(engine *inventory.Engine, reports *report.ReportUseCase) *ExitHandler {
	return &ExitHandler{engine: engine, reports: reports}
}

// List godoc
// @Summary      Listar saídas
// @Tags         exits
// @Security     Bearer
// @Produce      json
// @Param        itemId     query  string  false  "Filtrar por item"
// @Param        status     query  string  false  "em_uso | devolvido | baixado"
// @Param        startDate  query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {array}  dto.ExitResponse
// @Router       /api/exits [get]
func (h *ExitHandler) List(c *fiber.Ctx) error {
	var q dto.ExitListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	period, err := parsePeriod(q.StartDate, q.EndDate)
	if err != nil {
		return err
	}
	out, err := h.engine.ListExits(c.UserContext(), repository.ExitFilter{ItemID: q.ItemID, Status: q.Status, Period: period})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter saída com a devolução
// @Tags         exits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da saída"
// @Success      200  {object}  dto.ExitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exits/{id} [get]
func (h *ExitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.engine.GetExit(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar saída (move unidades de disponível para em uso)
// @Tags         exits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExitRequest  true  "Dados da saída"
// @Success      201   {object}  dto.ExitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/exits [post]
func (h *ExitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExitRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.engine.RecordExit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar campos descritivos da saída
// @Tags         exits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID da saída"
// @Param        body  body  dto.UpdateExitRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ExitResponse
// @Router       /api/exits/{id} [put]
func (h *ExitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExitRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.engine.UpdateExit(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir saída sem devolução e devolver as unidades ao disponível
// @Tags         exits
// @Security     Bearer
// @Param        id   path  string  true  "ID da saída"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/exits/{id} [delete]
func (h *ExitHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.DeleteExit(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Comprovante de saída em PDF
// @Tags         exits
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da saída"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exits/{id}/receipt.pdf [get]
func (h *ExitHandler) Receipt(c *fiber.Ctx) error {
	f, err := h.reports.ExitReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, f, "inline")
}

// sendFile escreve um relatório gerado com o Content-Disposition indicado.
func sendFile(c *fiber.Ctx, f *report.File, disposition string) error {
	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, f.Name))
	return c.Send(f.Data)
}
