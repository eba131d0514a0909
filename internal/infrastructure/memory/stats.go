package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregações do painel sobre os dados em memória.
type StatsRepo struct{ sc scope }

func (r *StatsRepo) Totals(_ context.Context) (repository.InventoryTotals, error) {
	defer r.sc.lock()()
	t := repository.InventoryTotals{ValorTotal: decimal.Zero}
	for _, it := range r.sc.s.d.items {
		t.TotalItens += it.QuantidadeTotal
		t.TotalDisponivel += it.QuantidadeDisponivel
		t.TotalEmUso += it.QuantidadeEmUso
		if it.ValorUnitario != nil {
			t.ValorTotal = t.ValorTotal.Add(it.ValorUnitario.Mul(decimal.NewFromInt(int64(it.QuantidadeTotal))))
		}
		if it.Status() == entity.ItemStatusEstoqueBaixo {
			t.EstoqueBaixo++
		}
	}
	return t, nil
}

func (r *StatsRepo) QuantityByCategory(_ context.Context) ([]repository.CategoryQuantity, error) {
	defer r.sc.lock()()
	byCat := make(map[string]int)
	for _, it := range r.sc.s.d.items {
		byCat[it.CategoriaID] += it.QuantidadeTotal
	}
	out := make([]repository.CategoryQuantity, 0, len(r.sc.s.d.categories))
	for id, c := range r.sc.s.d.categories {
		out = append(out, repository.CategoryQuantity{CategoriaID: id, Nome: c.Nome, Quantidade: byCat[id]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

func (r *StatsRepo) MovementsPerDay(_ context.Context, since time.Time) ([]repository.DailyMovements, error) {
	defer r.sc.lock()()
	days := make(map[time.Time]*repository.DailyMovements)
	bucket := func(t time.Time) *repository.DailyMovements {
		y, m, d := t.UTC().Date()
		key := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if days[key] == nil {
			days[key] = &repository.DailyMovements{Dia: key}
		}
		return days[key]
	}
	for _, e := range r.sc.s.d.entries {
		if !e.DataEntrada.Before(since) {
			bucket(e.DataEntrada).Entradas++
		}
	}
	for _, e := range r.sc.s.d.exits {
		if !e.DataSaida.Before(since) {
			bucket(e.DataSaida).Saidas++
		}
	}
	out := make([]repository.DailyMovements, 0, len(days))
	for _, d := range days {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dia.Before(out[j].Dia) })
	return out, nil
}
