// Package analytics contém o caso de uso do painel de indicadores do inventário.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

const defaultDays = 30

// DashboardUseCase gera os indicadores do painel a partir do StatsRepository (consultas só de leitura).
type DashboardUseCase struct {
	stats repository.StatsRepository
	days  int
	now   func() time.Time
}

// NewDashboardUseCase constrói o caso de uso. days é a janela do gráfico de movimentações.
func NewDashboardUseCase(stats repository.StatsRepository, days int) *DashboardUseCase {
	if days <= 0 {
		days = defaultDays
	}
	return &DashboardUseCase{stats: stats, days: days, now: time.Now}
}

// GetStats monta o DashboardStatsResponse.
//
// Três consultas em paralelo:
//  1. Totals              → totais de unidades, valor e estoque baixo
//  2. QuantityByCategory  → unidades por categoria
//  3. MovementsPerDay     → entradas/saídas por dia nos últimos N dias
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := uc.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(uc.days - 1))

	type totalsResult struct {
		t   repository.InventoryTotals
		err error
	}
	type categoriesResult struct {
		c   []repository.CategoryQuantity
		err error
	}
	type movementsResult struct {
		m   []repository.DailyMovements
		err error
	}

	totalsCh := make(chan totalsResult, 1)
	catsCh := make(chan categoriesResult, 1)
	movsCh := make(chan movementsResult, 1)

	go func() {
		t, err := uc.stats.Totals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		c, err := uc.stats.QuantityByCategory(ctx)
		catsCh <- categoriesResult{c, err}
	}()
	go func() {
		m, err := uc.stats.MovementsPerDay(ctx, since)
		movsCh <- movementsResult{m, err}
	}()

	totals := <-totalsCh
	cats := <-catsCh
	movs := <-movsCh

	if totals.err != nil {
		return nil, domain.StorageFailure("dashboard", fmt.Errorf("totais: %w", totals.err))
	}
	if cats.err != nil {
		return nil, domain.StorageFailure("dashboard", fmt.Errorf("categorias: %w", cats.err))
	}
	if movs.err != nil {
		return nil, domain.StorageFailure("dashboard", fmt.Errorf("movimentações: %w", movs.err))
	}

	out := &dto.DashboardStatsResponse{
		TotalItens:      totals.t.TotalItens,
		TotalDisponivel: totals.t.TotalDisponivel,
		TotalEmUso:      totals.t.TotalEmUso,
		ValorTotal:      totals.t.ValorTotal.Round(2),
		EstoqueBaixo:    totals.t.EstoqueBaixo,
		Categorias:      make([]dto.CategoryQuantityDTO, 0, len(cats.c)),
		Movimentacoes:   fillDays(movs.m, since, uc.days),
	}
	for _, c := range cats.c {
		out.Categorias = append(out.Categorias, dto.CategoryQuantityDTO{CategoriaID: c.CategoriaID, Nome: c.Nome, Quantidade: c.Quantidade})
	}
	return out, nil
}

// fillDays devolve exatamente days pontos a partir de since, com zero nos dias sem movimentação.
func fillDays(rows []repository.DailyMovements, since time.Time, days int) []dto.DailyMovementsDTO {
	byDay := make(map[string]repository.DailyMovements, len(rows))
	for _, r := range rows {
		byDay[r.Dia.UTC().Format("2006-01-02")] = r
	}
	out := make([]dto.DailyMovementsDTO, 0, days)
	for i := 0; i < days; i++ {
		key := since.AddDate(0, 0, i).Format("2006-01-02")
		r := byDay[key]
		out = append(out, dto.DailyMovementsDTO{Data: key, Entradas: r.Entradas, Saidas: r.Saidas})
	}
	return out
}
