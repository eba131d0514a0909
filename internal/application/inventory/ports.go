package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// Repos agrupa os repositórios usados pelo motor. Dentro de TxRunner.Run todos estão atados à mesma transação.
type Repos struct {
	Items      repository.ItemRepository
	Categories repository.CategoryRepository
	Users      repository.UserRepository
	Entries    repository.EntryRepository
	Exits      repository.ExitRepository
	Returns    repository.ReturnRepository
}

// TxRunner executa fn dentro de uma transação, com Commit se fn devolver nil e Rollback caso contrário.
// Garante a atomicidade entre o registro da movimentação e a atualização dos contadores do item.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Observer recebe eventos do motor; usado para métricas.
type Observer interface {
	MovementApplied(kind, action string)
	MovementRejected(kind, reason string)
}

type nopObserver struct{}

func (nopObserver) MovementApplied(string, string)  {}
func (nopObserver) MovementRejected(string, string) {}
