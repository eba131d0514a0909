package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/application/ports"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// MaxDefectPhotos limite de fotos de defeito por devolução.
const MaxDefectPhotos = 10

// ReturnHandler devoluções. O registro aceita JSON ou multipart com as fotos de defeito no campo "fotos".
type ReturnHandler struct {
	engine      *inventory.Engine
	attachments ports.AttachmentStore
	log         *logger.Logger
}

// NewReturnHandler constrói o handler.
func NewReturnHandler(engine *inventory.Engine, attachments ports.AttachmentStore, log *logger.Logger) *ReturnHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ReturnHandler{engine: engine, attachments: attachments, log: log.Component("returns")}
}

// List godoc
// @Summary      Listar devoluções
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        condicao   query  string  false  "perfeito | defeito | danificado"
// @Param        startDate  query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Data final (YYYY-MM-DD)"
// @Success      200  {array}  dto.ReturnResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	var q dto.ReturnListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	period, err := parsePeriod(q.StartDate, q.EndDate)
	if err != nil {
		return err
	}
	out, err := h.engine.ListReturns(c.UserContext(), repository.ReturnFilter{Condicao: q.Condicao, Period: period})
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter devolução com a saída
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da devolução"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.engine.GetReturn(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar devolução de uma saída em uso
// @Description  perfeito e defeito devolvem as unidades ao disponível; danificado baixa as unidades do total.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body   body      dto.CreateReturnRequest  false  "Dados da devolução (JSON)"
// @Param        fotos  formData  file                     false  "Fotos do defeito (até 10)"
// @Success      201    {object}  dto.ReturnResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var (
		in    dto.CreateReturnRequest
		fotos []string
		err   error
	)
	ctx := c.UserContext()
	if isMultipart(c) {
		if err := h.parseMultipart(c, &in); err != nil {
			return err
		}
		if err := validateStruct(&in); err != nil {
			return err
		}
		if fotos, err = h.savePhotos(ctx, c); err != nil {
			return err
		}
	} else if err := parseBody(c, &in); err != nil {
		return err
	}

	out, err := h.engine.RecordReturn(ctx, GetUserID(c), in, fotos)
	if err != nil {
		h.discard(ctx, fotos)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar campos descritivos da devolução
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID da devolução"
// @Param        body  body  dto.UpdateReturnRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.ReturnResponse
// @Router       /api/returns/{id} [put]
func (h *ReturnHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReturnRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.engine.UpdateReturn(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir devolução e desfazer seu efeito (a saída volta a em uso)
// @Tags         returns
// @Security     Bearer
// @Param        id   path  string  true  "ID da devolução"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [delete]
func (h *ReturnHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	fotos, err := h.engine.DeleteReturn(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	h.discard(ctx, fotos)
	return c.SendStatus(fiber.StatusNoContent)
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// parseMultipart lê os campos de texto do formulário; dataDevolucao é convertida à parte.
func (h *ReturnHandler) parseMultipart(c *fiber.Ctx, in *dto.CreateReturnRequest) error {
	if err := c.BodyParser(in); err != nil {
		return domain.Invalid("formulário inválido: %v", err)
	}
	if raw := strings.TrimSpace(c.FormValue("dataDevolucao")); raw != "" {
		t, err := dto.ParseDate(raw)
		if err != nil {
			return domain.Invalid("dataDevolucao inválida: %s", raw)
		}
		in.DataDevolucao = &dto.Date{Time: t}
	}
	return nil
}

// savePhotos grava as fotos do campo "fotos". Em caso de falha as já gravadas são removidas.
func (h *ReturnHandler) savePhotos(ctx context.Context, c *fiber.Ctx) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.Invalid("formulário multipart inválido")
	}
	files := form.File["fotos"]
	if len(files) > MaxDefectPhotos {
		return nil, domain.Invalid("no máximo %d fotos por devolução", MaxDefectPhotos)
	}
	refs := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.discard(ctx, refs)
			return nil, domain.Invalid("não foi possível ler o arquivo %s", fh.Filename)
		}
		ref, err := h.attachments.Save(ctx, "defeito", fh.Filename, f)
		f.Close()
		if err != nil {
			h.discard(ctx, refs)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// discard remove arquivos que não pertencem mais a nenhuma devolução. Falhas só vão para o log.
func (h *ReturnHandler) discard(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := h.attachments.Delete(ctx, ref); err != nil {
			h.log.Warn().Err(err).Str("ref", ref).Msg("falha ao remover foto de defeito")
		}
	}
}
