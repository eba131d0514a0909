package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação em memória de CategoryRepository.
type CategoryRepo struct{ sc scope }

func (r *CategoryRepo) nameTaken(c *entity.Category) bool {
	for id, other := range r.sc.s.d.categories {
		if id != c.ID && strings.EqualFold(other.Nome, c.Nome) {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) countItems(id string) int {
	n := 0
	for _, it := range r.sc.s.d.items {
		if it.CategoriaID == id {
			n++
		}
	}
	return n
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	defer r.sc.lock()()
	if _, ok := r.sc.s.d.categories[c.ID]; ok || r.nameTaken(c) {
		return domain.ErrDuplicate
	}
	stored := *c
	stored.TotalItens = 0
	r.sc.s.d.categories[c.ID] = stored
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	defer r.sc.lock()()
	c, ok := r.sc.s.d.categories[id]
	if !ok {
		return nil, nil
	}
	c.TotalItens = r.countItems(id)
	return &c, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, nome string) (*entity.Category, error) {
	defer r.sc.lock()()
	for _, c := range r.sc.s.d.categories {
		if strings.EqualFold(c.Nome, nome) {
			found := c
			found.TotalItens = r.countItems(c.ID)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	defer r.sc.lock()()
	list := make([]*entity.Category, 0, len(r.sc.s.d.categories))
	for _, c := range r.sc.s.d.categories {
		c := c
		c.TotalItens = r.countItems(c.ID)
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nome < list[j].Nome })
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	defer r.sc.lock()()
	cur, ok := r.sc.s.d.categories[c.ID]
	if !ok {
		return domain.NotFound("categoria %s não encontrada", c.ID)
	}
	if r.nameTaken(c) {
		return domain.ErrDuplicate
	}
	next := *c
	next.CreatedAt = cur.CreatedAt
	r.sc.s.d.categories[c.ID] = next
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	defer r.sc.lock()()
	if r.countItems(id) > 0 {
		return domain.Conflict("categoria %s possui itens", id)
	}
	delete(r.sc.s.d.categories, id)
	return nil
}

func (r *CategoryRepo) CountItems(_ context.Context, id string) (int, error) {
	defer r.sc.lock()()
	return r.countItems(id), nil
}
