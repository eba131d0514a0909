package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTotals totais agregados de todos os itens.
type InventoryTotals struct {
	TotalItens      int
	TotalDisponivel int
	TotalEmUso      int
	ValorTotal      decimal.Decimal
	EstoqueBaixo    int
}

// CategoryQuantity quantidade total de unidades por categoria.
type CategoryQuantity struct {
	CategoriaID string
	Nome        string
	Quantidade  int
}

// DailyMovements contagem de entradas e saídas de um dia.
type DailyMovements struct {
	Dia      time.Time
	Entradas int
	Saidas   int
}

// StatsRepository consultas de leitura para o painel.
type StatsRepository interface {
	Totals(ctx context.Context) (InventoryTotals, error)
	QuantityByCategory(ctx context.Context) ([]CategoryQuantity, error)
	MovementsPerDay(ctx context.Context, since time.Time) ([]DailyMovements, error)
}
