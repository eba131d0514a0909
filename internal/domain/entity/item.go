package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status derivado dos contadores de um item.
const (
	ItemStatusDisponivel   = "disponivel"
	ItemStatusEsgotado     = "esgotado"
	ItemStatusEstoqueBaixo = "estoque_baixo"
)

// Item representa um ativo de TI rastreável (hardware ou software) com seus três contadores.
// Os contadores só são alterados pelo motor de movimentações (entradas, saídas e devoluções).
type Item struct {
	ID                   string
	Nome                 string
	Descricao            string
	CategoriaID          string
	CodigoBarras         string // único quando preenchido
	NumeroSerie          string // único quando preenchido
	QuantidadeTotal      int
	QuantidadeDisponivel int
	QuantidadeEmUso      int
	Localizacao          string
	ValorUnitario        *decimal.Decimal
	Fornecedor           string
	Observacoes          string
	FotoURL              string
	QRCode               string
	EstoqueMinimo        int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Status devolve disponivel, esgotado ou estoque_baixo a partir dos contadores.
func (i *Item) Status() string {
	switch {
	case i.QuantidadeDisponivel <= 0:
		return ItemStatusEsgotado
	case i.QuantidadeDisponivel <= i.EstoqueMinimo:
		return ItemStatusEstoqueBaixo
	default:
		return ItemStatusDisponivel
	}
}

// IsValidItemStatus indica se s é um filtro de status aceito.
func IsValidItemStatus(s string) bool {
	return s == ItemStatusDisponivel || s == ItemStatusEsgotado || s == ItemStatusEstoqueBaixo
}
