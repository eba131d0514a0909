package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas somente leitura do painel.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository constrói o adaptador do painel.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// Totals soma os contadores de todos os itens. valor_total = Σ valor_unitario × quantidade_total;
// estoque baixo segue a regra do status derivado (0 < disponível <= mínimo).
func (r *StatsRepo) Totals(ctx context.Context) (repository.InventoryTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantidade_total), 0),
	    COALESCE(SUM(quantidade_disponivel), 0),
	    COALESCE(SUM(quantidade_em_uso), 0),
	    COALESCE(SUM(COALESCE(valor_unitario, 0) * quantidade_total), 0),
	    COUNT(*) FILTER (WHERE quantidade_disponivel > 0 AND quantidade_disponivel <= estoque_minimo)
	FROM items`

	var t repository.InventoryTotals
	err := r.pool.QueryRow(ctx, query).Scan(&t.TotalItens, &t.TotalDisponivel, &t.TotalEmUso, &t.ValorTotal, &t.EstoqueBaixo)
	if err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}

// QuantityByCategory inclui categorias sem itens (quantidade 0).
func (r *StatsRepo) QuantityByCategory(ctx context.Context) ([]repository.CategoryQuantity, error) {
	const query = `
	SELECT c.id, c.nome, COALESCE(SUM(i.quantidade_total), 0)
	FROM categories c
	LEFT JOIN items i ON i.categoria_id = c.id
	GROUP BY c.id, c.nome
	ORDER BY c.nome`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("quantity by category: %w", err)
	}
	defer rows.Close()
	out := make([]repository.CategoryQuantity, 0)
	for rows.Next() {
		var cq repository.CategoryQuantity
		if err := rows.Scan(&cq.CategoriaID, &cq.Nome, &cq.Quantidade); err != nil {
			return nil, fmt.Errorf("scan category quantity: %w", err)
		}
		out = append(out, cq)
	}
	return out, rows.Err()
}

// MovementsPerDay conta entradas e saídas por dia (UTC) a partir de since. Dias sem movimento não aparecem.
func (r *StatsRepo) MovementsPerDay(ctx context.Context, since time.Time) ([]repository.DailyMovements, error) {
	const query = `
	WITH m AS (
	    SELECT (data_entrada AT TIME ZONE 'UTC')::date AS dia, 1 AS entrada, 0 AS saida
	    FROM entries WHERE data_entrada >= $1
	    UNION ALL
	    SELECT (data_saida AT TIME ZONE 'UTC')::date, 0, 1
	    FROM exits WHERE data_saida >= $1
	)
	SELECT dia, SUM(entrada), SUM(saida)
	FROM m
	GROUP BY dia
	ORDER BY dia`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("movements per day: %w", err)
	}
	defer rows.Close()
	out := make([]repository.DailyMovements, 0)
	for rows.Next() {
		var d repository.DailyMovements
		if err := rows.Scan(&d.Dia, &d.Entradas, &d.Saidas); err != nil {
			return nil, fmt.Errorf("scan daily movements: %w", err)
		}
		d.Dia = time.Date(d.Dia.Year(), d.Dia.Month(), d.Dia.Day(), 0, 0, 0, 0, time.UTC)
		out = append(out, d)
	}
	return out, rows.Err()
}
