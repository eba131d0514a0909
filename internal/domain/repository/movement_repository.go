package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ti/internal/domain/entity"
)

// DateRange intervalo fechado opcional; ponteiros nil não limitam.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains indica se t está dentro do intervalo.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// EntryFilter filtros da listagem de entradas.
type EntryFilter struct {
	ItemID string
	Period DateRange
}

// ExitFilter filtros da listagem de saídas.
type ExitFilter struct {
	ItemID string
	Status string
	Period DateRange
}

// ReturnFilter filtros da listagem de devoluções.
type ReturnFilter struct {
	Condicao string
	Period   DateRange
}

// EntryRepository persistência de entradas. Listas ordenadas por data de entrada desc.
type EntryRepository interface {
	Create(ctx context.Context, e *entity.Entry) error
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	List(ctx context.Context, filter EntryFilter) ([]*entity.Entry, error)
	Update(ctx context.Context, e *entity.Entry) error
	Delete(ctx context.Context, id string) error
}

// ExitRepository persistência de saídas. Listas ordenadas por data de saída desc.
type ExitRepository interface {
	Create(ctx context.Context, e *entity.Exit) error
	GetByID(ctx context.Context, id string) (*entity.Exit, error)
	List(ctx context.Context, filter ExitFilter) ([]*entity.Exit, error)
	Update(ctx context.Context, e *entity.Exit) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// ReturnRepository persistência de devoluções. No máximo uma por saída.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.Return) error
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	GetByExitID(ctx context.Context, exitID string) (*entity.Return, error)
	// ListByExitIDs devolve as devoluções das saídas informadas indexadas por ExitID.
	ListByExitIDs(ctx context.Context, exitIDs []string) (map[string]*entity.Return, error)
	List(ctx context.Context, filter ReturnFilter) ([]*entity.Return, error)
	Update(ctx context.Context, r *entity.Return) error
	Delete(ctx context.Context, id string) error
}
