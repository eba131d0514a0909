package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/inventory"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação em memória de ItemRepository.
type ItemRepo struct{ sc scope }

func (r *ItemRepo) uniqueViolation(it *entity.Item) bool {
	for id, other := range r.sc.s.d.items {
		if id == it.ID {
			continue
		}
		if it.CodigoBarras != "" && other.CodigoBarras == it.CodigoBarras {
			return true
		}
		if it.NumeroSerie != "" && other.NumeroSerie == it.NumeroSerie {
			return true
		}
		if it.QRCode != "" && other.QRCode == it.QRCode {
			return true
		}
	}
	return false
}

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	defer r.sc.lock()()
	if _, ok := r.sc.s.d.items[it.ID]; ok || r.uniqueViolation(it) {
		return domain.ErrDuplicate
	}
	if _, ok := r.sc.s.d.categories[it.CategoriaID]; !ok {
		return domain.NotFound("categoria %s não encontrada", it.CategoriaID)
	}
	r.sc.s.d.items[it.ID] = *it
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	defer r.sc.lock()()
	it, ok := r.sc.s.d.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// GetForUpdate equivale a GetByID: a transação em memória já é exclusiva.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetByQRCode(_ context.Context, qrCode string) (*entity.Item, error) {
	defer r.sc.lock()()
	for _, it := range r.sc.s.d.items {
		if it.QRCode == qrCode {
			found := it
			return &found, nil
		}
	}
	return nil, nil
}

func matchesItem(it *entity.Item, f repository.ItemFilter, search string) bool {
	if f.CategoriaID != "" && it.CategoriaID != f.CategoriaID {
		return false
	}
	if f.Status != "" && it.Status() != f.Status {
		return false
	}
	if search == "" {
		return true
	}
	return containsFolded(it.Nome, search) || containsFolded(it.Descricao, search) ||
		containsFolded(it.CodigoBarras, search) || containsFolded(it.NumeroSerie, search)
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	defer r.sc.lock()()
	search := fold(f.Search)
	list := make([]*entity.Item, 0)
	for _, it := range r.sc.s.d.items {
		it := it
		if matchesItem(&it, f, search) {
			list = append(list, &it)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *ItemRepo) Update(_ context.Context, it *entity.Item) error {
	defer r.sc.lock()()
	cur, ok := r.sc.s.d.items[it.ID]
	if !ok {
		return domain.NotFound("item %s não encontrado", it.ID)
	}
	if r.uniqueViolation(it) {
		return domain.ErrDuplicate
	}
	if _, ok := r.sc.s.d.categories[it.CategoriaID]; !ok {
		return domain.NotFound("categoria %s não encontrada", it.CategoriaID)
	}
	next := *it
	next.QuantidadeTotal = cur.QuantidadeTotal
	next.QuantidadeDisponivel = cur.QuantidadeDisponivel
	next.QuantidadeEmUso = cur.QuantidadeEmUso
	next.FotoURL = cur.FotoURL
	next.QRCode = cur.QRCode
	next.CreatedAt = cur.CreatedAt
	r.sc.s.d.items[it.ID] = next
	return nil
}

// UpdateCounters recusa valores que quebrem o invariante, como as constraints CHECK do Postgres.
func (r *ItemRepo) UpdateCounters(_ context.Context, id string, c inventory.Counters) error {
	defer r.sc.lock()()
	it, ok := r.sc.s.d.items[id]
	if !ok {
		return domain.NotFound("item %s não encontrado", id)
	}
	if !c.Valid() {
		return domain.Conflict("contadores inválidos para o item %s: %+v", id, c)
	}
	it.QuantidadeTotal, it.QuantidadeDisponivel, it.QuantidadeEmUso = c.Total, c.Available, c.InUse
	it.UpdatedAt = time.Now()
	r.sc.s.d.items[id] = it
	return nil
}

func (r *ItemRepo) UpdatePhoto(_ context.Context, id, fotoURL string) error {
	defer r.sc.lock()()
	it, ok := r.sc.s.d.items[id]
	if !ok {
		return domain.NotFound("item %s não encontrado", id)
	}
	it.FotoURL = fotoURL
	it.UpdatedAt = time.Now()
	r.sc.s.d.items[id] = it
	return nil
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	defer r.sc.lock()()
	if r.hasMovements(id) {
		return domain.Conflict("item %s possui movimentações", id)
	}
	delete(r.sc.s.d.items, id)
	return nil
}

func (r *ItemRepo) hasMovements(id string) bool {
	for _, e := range r.sc.s.d.entries {
		if e.ItemID == id {
			return true
		}
	}
	for _, e := range r.sc.s.d.exits {
		if e.ItemID == id {
			return true
		}
	}
	return false
}

func (r *ItemRepo) HasMovements(_ context.Context, id string) (bool, error) {
	defer r.sc.lock()()
	return r.hasMovements(id), nil
}
