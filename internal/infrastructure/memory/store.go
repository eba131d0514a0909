// Package memory implementa os repositórios sobre mapas em memória, para testes e desenvolvimento.
// Uma transação segura o mutex do Store do início ao fim e, em caso de erro, restaura o snapshot.
package memory

import (
	"context"
	"sync"

	appinv "github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
)

type dataset struct {
	items      map[string]entity.Item
	categories map[string]entity.Category
	users      map[string]entity.User
	entries    map[string]entity.Entry
	exits      map[string]entity.Exit
	returns    map[string]entity.Return
}

func newDataset() *dataset {
	return &dataset{
		items:      make(map[string]entity.Item),
		categories: make(map[string]entity.Category),
		users:      make(map[string]entity.User),
		entries:    make(map[string]entity.Entry),
		exits:      make(map[string]entity.Exit),
		returns:    make(map[string]entity.Return),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copia os mapas; os valores são structs copiadas por valor (slices de fotos são tratados como imutáveis).
func (d *dataset) clone() *dataset {
	return &dataset{
		items:      cloneMap(d.items),
		categories: cloneMap(d.categories),
		users:      cloneMap(d.users),
		entries:    cloneMap(d.entries),
		exits:      cloneMap(d.exits),
		returns:    cloneMap(d.returns),
	}
}

// Store guarda todas as tabelas em memória.
type Store struct {
	mu sync.Mutex
	d  *dataset
}

// New cria um Store vazio.
func New() *Store {
	return &Store{d: newDataset()}
}

// scope é o acesso de um repositório ao Store; dentro de uma transação o mutex já está seguro.
type scope struct {
	s    *Store
	inTx bool
}

func (sc scope) lock() func() {
	if sc.inTx {
		return func() {}
	}
	sc.s.mu.Lock()
	return sc.s.mu.Unlock
}

func (s *Store) repos(inTx bool) appinv.Repos {
	sc := scope{s: s, inTx: inTx}
	return appinv.Repos{
		Items:      &ItemRepo{sc},
		Categories: &CategoryRepo{sc},
		Users:      &UserRepo{sc},
		Entries:    &EntryRepo{sc},
		Exits:      &ExitRepo{sc},
		Returns:    &ReturnRepo{sc},
	}
}

// Repos devolve repositórios fora de transação (cada chamada segura o mutex).
func (s *Store) Repos() appinv.Repos {
	return s.repos(false)
}

// Stats devolve o repositório de indicadores do painel.
func (s *Store) Stats() *StatsRepo {
	return &StatsRepo{scope{s: s}}
}

var _ appinv.TxRunner = (*TxRunner)(nil)

// TxRunner serializa as transações no mutex do Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner constrói o runner de transações em memória.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run executa fn com o Store bloqueado; se fn falhar (ou entrar em pânico) o estado anterior é restaurado.
func (r *TxRunner) Run(ctx context.Context, fn func(appinv.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.d.clone()
	committed := false
	defer func() {
		if !committed {
			r.s.d = snapshot
		}
	}()

	if err := fn(r.s.repos(true)); err != nil {
		return err
	}
	committed = true
	return nil
}
