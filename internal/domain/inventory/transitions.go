// Package inventory contém a aritmética pura dos contadores de um item:
// os deltas de cada movimentação e a reconstrução dos contadores a partir do histórico.
package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
)

// Counters são os três contadores de um item.
type Counters struct {
	Total     int `json:"quantidadeTotal"`
	Available int `json:"quantidadeDisponivel"`
	InUse     int `json:"quantidadeEmUso"`
}

// Valid indica se os contadores respeitam disponivel + emUso == total, todos >= 0.
func (c Counters) Valid() bool {
	return c.Total >= 0 && c.Available >= 0 && c.InUse >= 0 && c.Available+c.InUse == c.Total
}

// CountersOf lê os contadores de um item.
func CountersOf(item *entity.Item) Counters {
	return Counters{Total: item.QuantidadeTotal, Available: item.QuantidadeDisponivel, InUse: item.QuantidadeEmUso}
}

// Delta é a variação aplicada aos contadores por uma movimentação.
type Delta struct {
	Total     int
	Available int
	InUse     int
}

// ForEntry: total += q, disponivel += q.
func ForEntry(q int) Delta { return Delta{Total: q, Available: q} }

// ForExit: disponivel -= q, emUso += q.
func ForExit(q int) Delta { return Delta{Available: -q, InUse: q} }

// ForReturn devolve o delta de uma devolução conforme a condição.
// perfeito/defeito voltam ao estoque; danificado sai do total.
func ForReturn(condicao string, q int) (Delta, error) {
	switch condicao {
	case entity.CondicaoPerfeito, entity.CondicaoDefeito:
		return Delta{Available: q, InUse: -q}, nil
	case entity.CondicaoDanificado:
		return Delta{Total: -q, InUse: -q}, nil
	}
	return Delta{}, domain.Invalid("condição inválida: %q", condicao)
}

// Invert devolve o delta que desfaz d.
func (d Delta) Invert() Delta {
	return Delta{Total: -d.Total, Available: -d.Available, InUse: -d.InUse}
}

// ApplyTo soma o delta aos contadores sem validar.
func (d Delta) ApplyTo(c Counters) Counters {
	return Counters{Total: c.Total + d.Total, Available: c.Available + d.Available, InUse: c.InUse + d.InUse}
}

// RequireAvailable falha com *domain.InsufficientStockError se o item não tem q unidades disponíveis.
func RequireAvailable(item *entity.Item, q int) error {
	if item.QuantidadeDisponivel < q {
		return &domain.InsufficientStockError{Available: item.QuantidadeDisponivel, Requested: q}
	}
	return nil
}

// Apply calcula os novos contadores do item sem alterá-lo.
// Retorna ErrConflict se o resultado quebrar o invariante (ex.: desfazer uma entrada já consumida).
func Apply(item *entity.Item, d Delta) (Counters, error) {
	cur := CountersOf(item)
	next := d.ApplyTo(cur)
	if !next.Valid() {
		return cur, domain.Conflict(
			"a operação deixaria o item %s com contadores inválidos (total=%d, disponível=%d, em uso=%d)",
			item.ID, next.Total, next.Available, next.InUse)
	}
	return next, nil
}

// ExitFacts é o que Reconcile precisa saber de uma saída.
type ExitFacts struct {
	Quantidade     int
	Status         string
	ReturnCondicao string // vazio se não houver devolução
}

// Reconcile reconstrói os contadores esperados a partir do histórico de movimentações.
//
//	total      = Σ entradas − Σ saídas com devolução danificada
//	emUso      = Σ saídas em_uso
//	disponivel = total − emUso
func Reconcile(entryQuantities []int, exits []ExitFacts) Counters {
	var c Counters
	for _, q := range entryQuantities {
		c.Total += q
	}
	for _, e := range exits {
		switch {
		case e.ReturnCondicao == entity.CondicaoDanificado:
			c.Total -= e.Quantidade
		case e.ReturnCondicao == "" && e.Status == entity.ExitStatusEmUso:
			c.InUse += e.Quantidade
		}
	}
	c.Available = c.Total - c.InUse
	return c
}

// Drift descreve a diferença entre contadores gravados e esperados.
type Drift struct {
	Stored   Counters `json:"armazenado"`
	Expected Counters `json:"esperado"`
}

// HasDrift indica se os contadores gravados divergem dos esperados.
func (d Drift) HasDrift() bool { return d.Stored != d.Expected }

func (d Drift) String() string {
	return fmt.Sprintf("armazenado=%+v esperado=%+v", d.Stored, d.Expected)
}
