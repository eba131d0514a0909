package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// EntryHandler entradas de estoque.
type EntryHandler struct {
	engine *inventory.Engine
}

// NewEntryHandler constrói o handler.
func NewEntryHandler(engine *inventory.Engine) *EntryHandler {
	return &EntryHandler{engine: engine}
}

// List godoc
// @Summary      Listar entradas
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        itemId     query  string  false  "Filtrar por item"
// @Param        startDate  query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {array}  dto.EntryResponse
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	var q dto.EntryListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	period, err := parsePeriod(q.StartDate, q.EndDate)
	if err != nil {
		return err
	}
	out, err := h.engine.ListEntries(c.UserContext(), repository.EntryFilter{ItemID: q.ItemID, Period: period})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter entrada
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da entrada"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [get]
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.engine.GetEntry(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar entrada (aumenta total e disponível)
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Dados da entrada"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.engine.RecordEntry(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar campos descritivos da entrada
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID da entrada"
// @Param        body  body  dto.UpdateEntryRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [put]
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEntryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.engine.UpdateEntry(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir entrada e desfazer seu efeito nos contadores
// @Tags         entries
// @Security     Bearer
// @Param        id   path  string  true  "ID da entrada"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.DeleteEntry(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
