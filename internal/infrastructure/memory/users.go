package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação em memória de UserRepository.
type UserRepo struct{ sc scope }

func (r *UserRepo) emailTaken(u *entity.User) bool {
	for id, other := range r.sc.s.d.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.sc.lock()()
	if _, ok := r.sc.s.d.users[u.ID]; ok || r.emailTaken(u) {
		return domain.ErrEmailAlreadyExists
	}
	r.sc.s.d.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.sc.lock()()
	u, ok := r.sc.s.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.sc.lock()()
	for _, u := range r.sc.s.d.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	defer r.sc.lock()()
	list := make([]*entity.User, 0, len(r.sc.s.d.users))
	for _, u := range r.sc.s.d.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Nome < list[j].Nome })
	return list, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	defer r.sc.lock()()
	cur, ok := r.sc.s.d.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if r.emailTaken(u) {
		return domain.ErrEmailAlreadyExists
	}
	next := *u
	next.CreatedAt = cur.CreatedAt
	r.sc.s.d.users[u.ID] = next
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	defer r.sc.lock()()
	if r.isReferenced(id) {
		return domain.Conflict("usuário %s possui movimentações", id)
	}
	delete(r.sc.s.d.users, id)
	return nil
}

func (r *UserRepo) isReferenced(id string) bool {
	for _, e := range r.sc.s.d.entries {
		if e.ResponsavelID == id {
			return true
		}
	}
	for _, e := range r.sc.s.d.exits {
		if e.ResponsavelLiberacaoID == id || e.SolicitanteID == id {
			return true
		}
	}
	for _, rt := range r.sc.s.d.returns {
		if rt.ResponsavelRecebimentoID == id {
			return true
		}
	}
	return false
}

func (r *UserRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	defer r.sc.lock()()
	return r.isReferenced(id), nil
}
