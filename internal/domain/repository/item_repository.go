package repository

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/inventory"
)

// ItemFilter filtros da listagem de itens. Campos vazios não filtram.
type ItemFilter struct {
	CategoriaID string
	Search      string // nome, descrição, código de barras ou número de série (sem diferenciar maiúsculas)
	Status      string // disponivel | esgotado | estoque_baixo
}

// ItemRepository define a porta de persistência para Item.
// GetByID e similares devolvem (nil, nil) quando o item não existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate lê o item e bloqueia a linha até o fim da transação.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	GetByQRCode(ctx context.Context, qrCode string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	// Update grava apenas os campos descritivos; os contadores nunca são alterados por aqui.
	Update(ctx context.Context, item *entity.Item) error
	// UpdateCounters grava os três contadores (uso exclusivo do motor de movimentações).
	UpdateCounters(ctx context.Context, id string, c inventory.Counters) error
	UpdatePhoto(ctx context.Context, id, fotoURL string) error
	Delete(ctx context.Context, id string) error
	HasMovements(ctx context.Context, id string) (bool, error)
}
