package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse indicadores do painel principal.
type DashboardStatsResponse struct {
	TotalItens      int                   `json:"totalItens"`
	TotalDisponivel int                   `json:"totalDisponivel"`
	TotalEmUso      int                   `json:"totalEmUso"`
	ValorTotal      decimal.Decimal       `json:"valorTotal"`
	EstoqueBaixo    int                   `json:"estoqueBaixo"`
	Categorias      []CategoryQuantityDTO `json:"categorias"`
	Movimentacoes   []DailyMovementsDTO   `json:"movimentacoes"`
}

// CategoryQuantityDTO quantidade de unidades por categoria.
type CategoryQuantityDTO struct {
	CategoriaID string `json:"categoriaId"`
	Nome        string `json:"nome"`
	Quantidade  int    `json:"quantidade"`
}

// DailyMovementsDTO entradas e saídas de um dia (yyyy-mm-dd).
type DailyMovementsDTO struct {
	Data     string `json:"data"`
	Entradas int    `json:"entradas"`
	Saidas   int    `json:"saidas"`
}
