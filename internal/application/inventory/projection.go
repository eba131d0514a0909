package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
)

// projector monta as respostas aninhadas (item, categoria, usuários) evitando buscar o mesmo ID duas vezes.
type projector struct {
	ctx   context.Context
	r     Repos
	items map[string]*entity.Item
	cats  map[string]*entity.Category
	users map[string]*entity.User
}

func newProjector(ctx context.Context, r Repos) *projector {
	return &projector{
		ctx:   ctx,
		r:     r,
		items: make(map[string]*entity.Item),
		cats:  make(map[string]*entity.Category),
		users: make(map[string]*entity.User),
	}
}

// seed registra um item já carregado (ex.: com contadores recém-atualizados).
func (p *projector) seed(it *entity.Item) {
	p.items[it.ID] = it
}

func (p *projector) item(id string) (*dto.ItemResponse, error) {
	it, ok := p.items[id]
	if !ok {
		var err error
		if it, err = p.r.Items.GetByID(p.ctx, id); err != nil {
			return nil, err
		}
		p.items[id] = it
	}
	if it == nil {
		return nil, nil
	}
	cat, ok := p.cats[it.CategoriaID]
	if !ok {
		var err error
		if cat, err = p.r.Categories.GetByID(p.ctx, it.CategoriaID); err != nil {
			return nil, err
		}
		p.cats[it.CategoriaID] = cat
	}
	return dto.NewItemResponse(it, cat), nil
}

func (p *projector) user(id string) (*dto.UserSummary, error) {
	if id == "" {
		return nil, nil
	}
	u, ok := p.users[id]
	if !ok {
		var err error
		if u, err = p.r.Users.GetByID(p.ctx, id); err != nil {
			return nil, err
		}
		p.users[id] = u
	}
	return dto.NewUserSummary(u), nil
}

func (p *projector) entry(e *entity.Entry) (dto.EntryResponse, error) {
	out := dto.NewEntryResponse(e)
	var err error
	if out.Item, err = p.item(e.ItemID); err != nil {
		return out, err
	}
	if out.Responsavel, err = p.user(e.ResponsavelID); err != nil {
		return out, err
	}
	return out, nil
}

// exit projeta a saída; ret é a devolução vinculada (pode ser nil).
func (p *projector) exit(e *entity.Exit, ret *entity.Return) (dto.ExitResponse, error) {
	out := dto.NewExitResponse(e)
	var err error
	if out.Item, err = p.item(e.ItemID); err != nil {
		return out, err
	}
	if out.ResponsavelLiberacao, err = p.user(e.ResponsavelLiberacaoID); err != nil {
		return out, err
	}
	if out.Solicitante, err = p.user(e.SolicitanteID); err != nil {
		return out, err
	}
	if ret != nil {
		rr := dto.NewReturnResponse(ret)
		if rr.ResponsavelRecebimento, err = p.user(ret.ResponsavelRecebimentoID); err != nil {
			return out, err
		}
		out.Devolucao = &rr
	}
	return out, nil
}

// ret projeta a devolução com a saída (e o item) aninhados.
func (p *projector) ret(r *entity.Return, exit *entity.Exit) (dto.ReturnResponse, error) {
	out := dto.NewReturnResponse(r)
	var err error
	if out.ResponsavelRecebimento, err = p.user(r.ResponsavelRecebimentoID); err != nil {
		return out, err
	}
	if exit != nil {
		ex, err := p.exit(exit, nil)
		if err != nil {
			return out, err
		}
		out.Saida = &ex
	}
	return out, nil
}
