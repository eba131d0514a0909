package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var (
	_ repository.EntryRepository  = (*EntryRepo)(nil)
	_ repository.ExitRepository   = (*ExitRepo)(nil)
	_ repository.ReturnRepository = (*ReturnRepo)(nil)
)

// EntryRepo implementação em memória de EntryRepository.
type EntryRepo struct{ sc scope }

func (r *EntryRepo) Create(_ context.Context, e *entity.Entry) error {
	defer r.sc.lock()()
	if _, ok := r.sc.s.d.entries[e.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.sc.s.d.items[e.ItemID]; !ok {
		return domain.NotFound("item %s não encontrado", e.ItemID)
	}
	r.sc.s.d.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) GetByID(_ context.Context, id string) (*entity.Entry, error) {
	defer r.sc.lock()()
	e, ok := r.sc.s.d.entries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *EntryRepo) List(_ context.Context, f repository.EntryFilter) ([]*entity.Entry, error) {
	defer r.sc.lock()()
	list := make([]*entity.Entry, 0)
	for _, e := range r.sc.s.d.entries {
		e := e
		if f.ItemID != "" && e.ItemID != f.ItemID {
			continue
		}
		if !f.Period.Contains(e.DataEntrada) {
			continue
		}
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DataEntrada.Equal(list[j].DataEntrada) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].DataEntrada.After(list[j].DataEntrada)
	})
	return list, nil
}

func (r *EntryRepo) Update(_ context.Context, e *entity.Entry) error {
	defer r.sc.lock()()
	cur, ok := r.sc.s.d.entries[e.ID]
	if !ok {
		return domain.NotFound("entrada %s não encontrada", e.ID)
	}
	next := *e
	next.ItemID, next.Quantidade, next.CreatedAt = cur.ItemID, cur.Quantidade, cur.CreatedAt
	r.sc.s.d.entries[e.ID] = next
	return nil
}

func (r *EntryRepo) Delete(_ context.Context, id string) error {
	defer r.sc.lock()()
	delete(r.sc.s.d.entries, id)
	return nil
}

// ExitRepo implementação em memória de ExitRepository.
type ExitRepo struct{ sc scope }

func (r *ExitRepo) Create(_ context.Context, e *entity.Exit) error {
	defer r.sc.lock()()
	if _, ok := r.sc.s.d.exits[e.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.sc.s.d.items[e.ItemID]; !ok {
		return domain.NotFound("item %s não encontrado", e.ItemID)
	}
	stored := *e
	stored.Item, stored.Categoria, stored.Return = nil, nil, nil
	r.sc.s.d.exits[e.ID] = stored
	return nil
}

func (r *ExitRepo) GetByID(_ context.Context, id string) (*entity.Exit, error) {
	defer r.sc.lock()()
	e, ok := r.sc.s.d.exits[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *ExitRepo) List(_ context.Context, f repository.ExitFilter) ([]*entity.Exit, error) {
	defer r.sc.lock()()
	list := make([]*entity.Exit, 0)
	for _, e := range r.sc.s.d.exits {
		e := e
		if f.ItemID != "" && e.ItemID != f.ItemID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if !f.Period.Contains(e.DataSaida) {
			continue
		}
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DataSaida.Equal(list[j].DataSaida) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].DataSaida.After(list[j].DataSaida)
	})
	return list, nil
}

func (r *ExitRepo) Update(_ context.Context, e *entity.Exit) error {
	defer r.sc.lock()()
	cur, ok := r.sc.s.d.exits[e.ID]
	if !ok {
		return domain.NotFound("saída %s não encontrada", e.ID)
	}
	next := *e
	next.ItemID, next.Quantidade, next.Status, next.CreatedAt = cur.ItemID, cur.Quantidade, cur.Status, cur.CreatedAt
	next.Item, next.Categoria, next.Return = nil, nil, nil
	r.sc.s.d.exits[e.ID] = next
	return nil
}

func (r *ExitRepo) UpdateStatus(_ context.Context, id, status string) error {
	defer r.sc.lock()()
	e, ok := r.sc.s.d.exits[id]
	if !ok {
		return domain.NotFound("saída %s não encontrada", id)
	}
	e.Status = status
	r.sc.s.d.exits[id] = e
	return nil
}

func (r *ExitRepo) Delete(_ context.Context, id string) error {
	defer r.sc.lock()()
	for _, rt := range r.sc.s.d.returns {
		if rt.ExitID == id {
			return domain.Conflict("Não é possível excluir uma saída que já possui devolução")
		}
	}
	delete(r.sc.s.d.exits, id)
	return nil
}

// ReturnRepo implementação em memória de ReturnRepository.
type ReturnRepo struct{ sc scope }

func copyReturn(rt entity.Return) *entity.Return {
	rt.FotosDefeito = append([]string(nil), rt.FotosDefeito...)
	rt.Exit = nil
	return &rt
}

func (r *ReturnRepo) Create(_ context.Context, rt *entity.Return) error {
	defer r.sc.lock()()
	if _, ok := r.sc.s.d.exits[rt.ExitID]; !ok {
		return domain.NotFound("saída %s não encontrada", rt.ExitID)
	}
	for id, other := range r.sc.s.d.returns {
		if id == rt.ID || other.ExitID == rt.ExitID {
			return domain.ErrDuplicate
		}
	}
	r.sc.s.d.returns[rt.ID] = *copyReturn(*rt)
	return nil
}

func (r *ReturnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	defer r.sc.lock()()
	rt, ok := r.sc.s.d.returns[id]
	if !ok {
		return nil, nil
	}
	return copyReturn(rt), nil
}

func (r *ReturnRepo) GetByExitID(_ context.Context, exitID string) (*entity.Return, error) {
	defer r.sc.lock()()
	for _, rt := range r.sc.s.d.returns {
		if rt.ExitID == exitID {
			return copyReturn(rt), nil
		}
	}
	return nil, nil
}

func (r *ReturnRepo) ListByExitIDs(_ context.Context, exitIDs []string) (map[string]*entity.Return, error) {
	defer r.sc.lock()()
	wanted := make(map[string]struct{}, len(exitIDs))
	for _, id := range exitIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string]*entity.Return)
	for _, rt := range r.sc.s.d.returns {
		if _, ok := wanted[rt.ExitID]; ok {
			out[rt.ExitID] = copyReturn(rt)
		}
	}
	return out, nil
}

func (r *ReturnRepo) List(_ context.Context, f repository.ReturnFilter) ([]*entity.Return, error) {
	defer r.sc.lock()()
	list := make([]*entity.Return, 0)
	for _, rt := range r.sc.s.d.returns {
		if f.Condicao != "" && rt.Condicao != f.Condicao {
			continue
		}
		if !f.Period.Contains(rt.DataDevolucao) {
			continue
		}
		list = append(list, copyReturn(rt))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DataDevolucao.Equal(list[j].DataDevolucao) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].DataDevolucao.After(list[j].DataDevolucao)
	})
	return list, nil
}

func (r *ReturnRepo) Update(_ context.Context, rt *entity.Return) error {
	defer r.sc.lock()()
	cur, ok := r.sc.s.d.returns[rt.ID]
	if !ok {
		return domain.NotFound("devolução %s não encontrada", rt.ID)
	}
	next := *copyReturn(*rt)
	next.ExitID, next.Condicao, next.CreatedAt = cur.ExitID, cur.Condicao, cur.CreatedAt
	r.sc.s.d.returns[rt.ID] = next
	return nil
}

func (r *ReturnRepo) Delete(_ context.Context, id string) error {
	defer r.sc.lock()()
	delete(r.sc.s.d.returns, id)
	return nil
}
