package repository

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/domain/entity"
)

// CategoryRepository define a porta de persistência para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, nome string) (*entity.Category, error)
	// List devolve as categorias ordenadas por nome, com TotalItens preenchido.
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	CountItems(ctx context.Context, id string) (int, error)
}
