package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/ports"
	"github.com/jhoicas/inventario-ti/internal/application/usecase"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// itemNumericFields campos do formulário multipart que chegam como número.
var itemNumericFields = []string{"estoqueMinimo", "valorUnitario"}

// ItemHandler itens: consulta, cadastro e foto. Os contadores não são editáveis por aqui.
type ItemHandler struct {
	uc          *usecase.ItemUseCase
	attachments ports.AttachmentStore
	log         *logger.Logger
}

// NewItemHandler constrói o handler.
func NewItemHandler(uc *usecase.ItemUseCase, attachments ports.AttachmentStore, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, attachments: attachments, log: log.Component("items")}
}

// List godoc
// @Summary      Listar itens
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        categoriaId  query  string  false  "Filtrar por categoria"
// @Param        search       query  string  false  "Nome, descrição, código de barras ou número de série"
// @Param        status       query  string  false  "disponivel | esgotado | estoque_baixo"
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ItemListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter item com histórico de entradas e saídas
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do item"
// @Success      200  {object}  dto.ItemDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByQRCode godoc
// @Summary      Buscar item pelo QR code
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        qrCode  path  string  true  "Conteúdo do QR code"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/qrcode/{qrCode} [get]
func (h *ItemHandler) GetByQRCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByQRCode(c.UserContext(), c.Params("qrCode"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Cadastrar item (contadores começam em zero)
// @Description  Aceita JSON ou multipart/form-data com os mesmos campos e uma foto opcional no campo foto.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body  body      dto.CreateItemRequest  false  "Dados do item (JSON)"
// @Param        foto  formData  file                   false  "Foto do item"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	ctx := c.UserContext()
	if isMultipart(c) {
		if err := parseFormAsJSON(c, &in, itemNumericFields...); err != nil {
			return err
		}
		foto, err := h.savePhoto(ctx, c)
		if err != nil {
			return err
		}
		in.FotoURL = foto
	} else if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(ctx, in)
	if err != nil {
		h.discard(ctx, in.FotoURL)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar campos descritivos do item
// @Description  Aceita JSON ou multipart/form-data; uma foto no campo foto substitui a atual.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string                 true   "ID do item"
// @Param        body  body      dto.UpdateItemRequest  false  "Campos a alterar (JSON)"
// @Param        foto  formData  file                   false  "Nova foto do item"
// @Success      200   {object}  dto.ItemResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	ctx := c.UserContext()
	if isMultipart(c) {
		if err := parseFormAsJSON(c, &in, itemNumericFields...); err != nil {
			return err
		}
		foto, err := h.savePhoto(ctx, c)
		if err != nil {
			return err
		}
		in.FotoURL = foto
	} else if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(ctx, c.Params("id"), in)
	if err != nil {
		h.discard(ctx, in.FotoURL)
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir item sem movimentações
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID do item"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadPhoto godoc
// @Summary      Enviar foto do item
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID do item"
// @Param        foto  formData  file    true  "Imagem JPEG, PNG ou GIF"
// @Success      200   {object}  dto.ItemResponse
// @Router       /api/items/{id}/foto [post]
func (h *ItemHandler) UploadPhoto(c *fiber.Ctx) error {
	fh, err := c.FormFile("foto")
	if err != nil {
		return domain.Invalid("arquivo 'foto' é obrigatório")
	}
	f, err := fh.Open()
	if err != nil {
		return domain.Invalid("não foi possível ler o arquivo enviado")
	}
	defer f.Close()

	out, err := h.uc.UploadPhoto(c.UserContext(), c.Params("id"), fh.Filename, f)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// savePhoto grava o arquivo do campo "foto", se houver. Sem arquivo devolve "".
func (h *ItemHandler) savePhoto(ctx context.Context, c *fiber.Ctx) (string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", domain.Invalid("formulário multipart inválido")
	}
	files := form.File["foto"]
	switch {
	case len(files) == 0:
		return "", nil
	case len(files) > 1:
		return "", domain.Invalid("envie apenas uma foto por item")
	}
	f, err := files[0].Open()
	if err != nil {
		return "", domain.Invalid("não foi possível ler o arquivo %s", files[0].Filename)
	}
	defer f.Close()
	return h.attachments.Save(ctx, "item", files[0].Filename, f)
}

func (h *ItemHandler) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := h.attachments.Delete(ctx, ref); err != nil {
		h.log.Warn().Err(err).Str("ref", ref).Msg("falha ao remover foto do item")
	}
}
