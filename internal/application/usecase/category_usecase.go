package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD de categorias.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase constrói o caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func categoryConflict(err error, nome string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.Conflict("já existe uma categoria chamada %q", nome)
	}
	return domain.StorageFailure("category", err)
}

// Create cria uma categoria com nome único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	if nome == "" {
		return nil, domain.Invalid("nome é obrigatório")
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		Nome:      nome,
		Descricao: in.Descricao,
		Icone:     in.Icone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, categoryConflict(err, nome)
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// GetByID obtém uma categoria por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get category", err)
	}
	if c == nil {
		return nil, domain.NotFound("categoria %s não encontrada", id)
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// List lista as categorias por nome com a contagem de itens.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.StorageFailure("list categories", err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCategoryResponse(c))
	}
	return out, nil
}

// Update atualiza uma categoria.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get category", err)
	}
	if c == nil {
		return nil, domain.NotFound("categoria %s não encontrada", id)
	}
	if in.Nome != nil {
		if c.Nome = strings.TrimSpace(*in.Nome); c.Nome == "" {
			return nil, domain.Invalid("nome é obrigatório")
		}
	}
	if in.Descricao != nil {
		c.Descricao = *in.Descricao
	}
	if in.Icone != nil {
		c.Icone = *in.Icone
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, categoryConflict(err, c.Nome)
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// Delete exclui uma categoria sem itens.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.StorageFailure("get category", err)
	}
	if c == nil {
		return domain.NotFound("categoria %s não encontrada", id)
	}
	n, err := uc.repo.CountItems(ctx, id)
	if err != nil {
		return domain.StorageFailure("count category items", err)
	}
	if n > 0 {
		return domain.Conflict("a categoria possui %d item(ns) e não pode ser excluída", n)
	}
	return domain.StorageFailure("delete category", uc.repo.Delete(ctx, id))
}
