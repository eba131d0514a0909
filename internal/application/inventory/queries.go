package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// ListEntries lista entradas (mais recentes primeiro) com item e responsável.
func (e *Engine) ListEntries(ctx context.Context, f repository.EntryFilter) ([]dto.EntryResponse, error) {
	list, err := e.repos.Entries.List(ctx, f)
	if err != nil {
		return nil, domain.StorageFailure("list entries", err)
	}
	p := newProjector(ctx, e.repos)
	out := make([]dto.EntryResponse, 0, len(list))
	for _, en := range list {
		r, err := p.entry(en)
		if err != nil {
			return nil, domain.StorageFailure("project entry", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// GetEntry obtém uma entrada por ID.
func (e *Engine) GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error) {
	en, err := e.repos.Entries.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get entry", err)
	}
	if en == nil {
		return nil, domain.NotFound("entrada %s não encontrada", id)
	}
	r, err := newProjector(ctx, e.repos).entry(en)
	if err != nil {
		return nil, domain.StorageFailure("project entry", err)
	}
	return &r, nil
}

// ListExits lista saídas (mais recentes primeiro) com item, usuários e devolução.
func (e *Engine) ListExits(ctx context.Context, f repository.ExitFilter) ([]dto.ExitResponse, error) {
	list, err := e.repos.Exits.List(ctx, f)
	if err != nil {
		return nil, domain.StorageFailure("list exits", err)
	}
	return e.projectExits(ctx, newProjector(ctx, e.repos), list)
}

func (e *Engine) projectExits(ctx context.Context, p *projector, list []*entity.Exit) ([]dto.ExitResponse, error) {
	ids := make([]string, 0, len(list))
	for _, ex := range list {
		ids = append(ids, ex.ID)
	}
	rets, err := e.repos.Returns.ListByExitIDs(ctx, ids)
	if err != nil {
		return nil, domain.StorageFailure("list returns by exit", err)
	}
	out := make([]dto.ExitResponse, 0, len(list))
	for _, ex := range list {
		r, err := p.exit(ex, rets[ex.ID])
		if err != nil {
			return nil, domain.StorageFailure("project exit", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// GetExit obtém uma saída por ID, com a devolução se houver.
func (e *Engine) GetExit(ctx context.Context, id string) (*dto.ExitResponse, error) {
	ex, err := e.repos.Exits.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get exit", err)
	}
	if ex == nil {
		return nil, domain.NotFound("saída %s não encontrada", id)
	}
	ret, err := e.repos.Returns.GetByExitID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get return by exit", err)
	}
	r, err := newProjector(ctx, e.repos).exit(ex, ret)
	if err != nil {
		return nil, domain.StorageFailure("project exit", err)
	}
	return &r, nil
}

// ListReturns lista devoluções (mais recentes primeiro) com a saída e o item.
func (e *Engine) ListReturns(ctx context.Context, f repository.ReturnFilter) ([]dto.ReturnResponse, error) {
	list, err := e.repos.Returns.List(ctx, f)
	if err != nil {
		return nil, domain.StorageFailure("list returns", err)
	}
	p := newProjector(ctx, e.repos)
	out := make([]dto.ReturnResponse, 0, len(list))
	for _, rt := range list {
		ex, err := e.repos.Exits.GetByID(ctx, rt.ExitID)
		if err != nil {
			return nil, domain.StorageFailure("get exit", err)
		}
		r, err := p.ret(rt, ex)
		if err != nil {
			return nil, domain.StorageFailure("project return", err)
		}
		out = append(out, r)
	}
	return out, nil
}

// GetReturn obtém uma devolução por ID.
func (e *Engine) GetReturn(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	rt, err := e.repos.Returns.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StorageFailure("get return", err)
	}
	if rt == nil {
		return nil, domain.NotFound("devolução %s não encontrada", id)
	}
	ex, err := e.repos.Exits.GetByID(ctx, rt.ExitID)
	if err != nil {
		return nil, domain.StorageFailure("get exit", err)
	}
	r, err := newProjector(ctx, e.repos).ret(rt, ex)
	if err != nil {
		return nil, domain.StorageFailure("project return", err)
	}
	return &r, nil
}

// ItemHistory devolve as entradas e saídas (com devoluções) de um item.
func (e *Engine) ItemHistory(ctx context.Context, itemID string) ([]dto.EntryResponse, []dto.ExitResponse, error) {
	entries, err := e.repos.Entries.List(ctx, repository.EntryFilter{ItemID: itemID})
	if err != nil {
		return nil, nil, domain.StorageFailure("list entries", err)
	}
	exits, err := e.repos.Exits.List(ctx, repository.ExitFilter{ItemID: itemID})
	if err != nil {
		return nil, nil, domain.StorageFailure("list exits", err)
	}
	p := newProjector(ctx, e.repos)
	outEntries := make([]dto.EntryResponse, 0, len(entries))
	for _, en := range entries {
		r := dto.NewEntryResponse(en)
		if r.Responsavel, err = p.user(en.ResponsavelID); err != nil {
			return nil, nil, domain.StorageFailure("project entry", err)
		}
		outEntries = append(outEntries, r)
	}
	outExits, err := e.projectExits(ctx, p, exits)
	if err != nil {
		return nil, nil, err
	}
	// o item já está no corpo da resposta; não repetir em cada movimentação
	for i := range outExits {
		outExits[i].Item = nil
	}
	return outEntries, outExits, nil
}
