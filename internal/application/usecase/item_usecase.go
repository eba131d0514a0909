package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/ports"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// ItemHistory fornece o histórico de movimentações de um item (implementado pelo motor de inventário).
type ItemHistory interface {
	ItemHistory(ctx context.Context, itemID string) ([]dto.EntryResponse, []dto.ExitResponse, error)
}

// ItemUseCase casos de uso de itens. Os contadores só mudam via movimentações.
type ItemUseCase struct {
	repo        repository.ItemRepository
	categories  repository.CategoryRepository
	history     ItemHistory
	attachments ports.AttachmentStore
	log         *logger.Logger
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	categories repository.CategoryRepository,
	history ItemHistory,
	attachments ports.AttachmentStore,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, categories: categories, history: history, attachments: attachments, log: logger.Nop()}
}

// WithLogger define o logger usado para falhas ao remover fotos.
func (uc *ItemUseCase) WithLogger(log *logger.Logger) *ItemUseCase {
	uc.log = log.Component("items")
	return uc
}

// discardPhoto remove uma foto que não pertence mais a nenhum item. A falha não desfaz a operação.
func (uc *ItemUseCase) discardPhoto(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := uc.attachments.Delete(ctx, ref); err != nil {
		uc.log.Warn().Err(err).Str("ref", ref).Msg("falha ao remover foto do item")
	}
}

func itemConflict(err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Conflict("código de barras ou número de série já cadastrado")
	}
	return domain.StorageFailure("item", err)
}

func (uc *ItemUseCase) requireCategory(ctx context.Context, id string) (*entity.Category, error) {
	cat, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get category", err)
	}
	if cat == nil {
		return nil, domain.NotFound("categoria %s não encontrada", id)
	}
	return cat, nil
}

// Create cria um item com contadores zerados e um qrCode novo.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.Invalid("nome é obrigatório")
	}
	if in.EstoqueMinimo < 0 {
		return nil, domain.Invalid("estoqueMinimo não pode ser negativo")
	}
	if in.ValorUnitario != nil && in.ValorUnitario.IsNegative() {
		return nil, domain.Invalid("valorUnitario não pode ser negativo")
	}
	cat, err := uc.requireCategory(ctx, in.CategoriaID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Nome:          nome,
		Descricao:     in.Descricao,
		CategoriaID:   cat.ID,
		CodigoBarras:  strings.TrimSpace(in.CodigoBarras),
		NumeroSerie:   strings.TrimSpace(in.NumeroSerie),
		Localizacao:   in.Localizacao,
		ValorUnitario: in.ValorUnitario,
		Fornecedor:    in.Fornecedor,
		Observacoes:   in.Observacoes,
		FotoURL:       in.FotoURL,
		QRCode:        uuid.New().String(),
		EstoqueMinimo: in.EstoqueMinimo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, itemConflict(err)
	}
	return dto.NewItemResponse(item, cat), nil
}

// GetByID devolve o item com o histórico de entradas e saídas.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemDetailResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get item", err)
	}
	if item == nil {
		return nil, domain.NotFound("item %s não encontrado", id)
	}
	cat, err := uc.categories.GetByID(ctx, item.CategoriaID)
	if err != nil {
		return nil, domain.StorageFailure("get category", err)
	}
	entries, exits, err := uc.history.ItemHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ItemDetailResponse{ItemResponse: *dto.NewItemResponse(item, cat), Entradas: entries, Saidas: exits}, nil
}

// GetByQRCode busca um item pelo código QR.
func (uc *ItemUseCase) GetByQRCode(ctx context.Context, qrCode string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByQRCode(ctx, qrCode)
	if err != nil {
		return nil, domain.StorageFailure("get item by qr", err)
	}
	if item == nil {
		return nil, domain.NotFound("nenhum item com o QR code %s", qrCode)
	}
	cat, err := uc.categories.GetByID(ctx, item.CategoriaID)
	if err != nil {
		return nil, domain.StorageFailure("get category", err)
	}
	return dto.NewItemResponse(item, cat), nil
}

// List lista itens com filtros de categoria, busca textual e status derivado.
func (uc *ItemUseCase) List(ctx context.Context, q dto.ItemListQuery) ([]dto.ItemResponse, error) {
	if q.Status != "" && !entity.IsValidItemStatus(q.Status) {
		return nil, domain.Invalid("status inválido: %q", q.Status)
	}
	list, err := uc.repo.List(ctx, repository.ItemFilter{
		CategoriaID: q.CategoriaID,
		Search:      strings.TrimSpace(q.Search),
		Status:      q.Status,
	})
	if err != nil {
		return nil, domain.StorageFailure("list items", err)
	}
	cats := make(map[string]*entity.Category)
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		cat, ok := cats[it.CategoriaID]
		if !ok {
			if cat, err = uc.categories.GetByID(ctx, it.CategoriaID); err != nil {
				return nil, domain.StorageFailure("get category", err)
			}
			cats[it.CategoriaID] = cat
		}
		out = append(out, *dto.NewItemResponse(it, cat))
	}
	return out, nil
}

// Update atualiza campos descritivos e, se in.FotoURL vier preenchida, troca a foto. Contadores e qrCode não mudam por aqui.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get item", err)
	}
	if item == nil {
		return nil, domain.NotFound("item %s não encontrado", id)
	}
	if in.Nome != nil {
		if item.Nome = strings.TrimSpace(*in.Nome); item.Nome == "" {
			return nil, domain.Invalid("nome é obrigatório")
		}
	}
	if in.Descricao != nil {
		item.Descricao = *in.Descricao
	}
	if in.CategoriaID != nil {
		item.CategoriaID = *in.CategoriaID
	}
	if in.CodigoBarras != nil {
		item.CodigoBarras = strings.TrimSpace(*in.CodigoBarras)
	}
	if in.NumeroSerie != nil {
		item.NumeroSerie = strings.TrimSpace(*in.NumeroSerie)
	}
	if in.Localizacao != nil {
		item.Localizacao = *in.Localizacao
	}
	if in.ValorUnitario != nil {
		if in.ValorUnitario.IsNegative() {
			return nil, domain.Invalid("valorUnitario não pode ser negativo")
		}
		item.ValorUnitario = in.ValorUnitario
	}
	if in.Fornecedor != nil {
		item.Fornecedor = *in.Fornecedor
	}
	if in.Observacoes != nil {
		item.Observacoes = *in.Observacoes
	}
	if in.EstoqueMinimo != nil {
		if *in.EstoqueMinimo < 0 {
			return nil, domain.Invalid("estoqueMinimo não pode ser negativo")
		}
		item.EstoqueMinimo = *in.EstoqueMinimo
	}
	cat, err := uc.requireCategory(ctx, item.CategoriaID)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, itemConflict(err)
	}
	if in.FotoURL != "" {
		if err := uc.repo.UpdatePhoto(ctx, id, in.FotoURL); err != nil {
			return nil, domain.StorageFailure("update item photo", err)
		}
		uc.discardPhoto(ctx, item.FotoURL)
		item.FotoURL = in.FotoURL
	}
	return dto.NewItemResponse(item, cat), nil
}

// Delete exclui um item sem movimentações.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.StorageFailure("get item", err)
	}
	if item == nil {
		return domain.NotFound("item %s não encontrado", id)
	}
	has, err := uc.repo.HasMovements(ctx, id)
	if err != nil {
		return domain.StorageFailure("item movements", err)
	}
	if has {
		return domain.Conflict("o item possui movimentações registradas e não pode ser excluído")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.StorageFailure("delete item", err)
	}
	uc.discardPhoto(ctx, item.FotoURL)
	return nil
}

// UploadPhoto grava a foto do item e substitui a anterior.
func (uc *ItemUseCase) UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get item", err)
	}
	if item == nil {
		return nil, domain.NotFound("item %s não encontrado", id)
	}
	ref, err := uc.attachments.Save(ctx, "item", filename, r)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePhoto(ctx, id, ref); err != nil {
		uc.discardPhoto(ctx, ref)
		return nil, domain.StorageFailure("update item photo", err)
	}
	uc.discardPhoto(ctx, item.FotoURL)
	item.FotoURL = ref
	cat, err := uc.categories.GetByID(ctx, item.CategoriaID)
	if err != nil {
		return nil, domain.StorageFailure("get category", err)
	}
	return dto.NewItemResponse(item, cat), nil
}
