package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para criar um item. Os contadores começam em zero e não são aceitos aqui.
type CreateItemRequest struct {
	Nome          string           `json:"nome" validate:"required,min=1,max=200"`
	Descricao     string           `json:"descricao" validate:"max=2000"`
	CategoriaID   string           `json:"categoriaId" validate:"required"`
	CodigoBarras  string           `json:"codigoBarras" validate:"max=100"`
	NumeroSerie   string           `json:"numeroSerie" validate:"max=100"`
	Localizacao   string           `json:"localizacao" validate:"max=200"`
	ValorUnitario *decimal.Decimal `json:"valorUnitario"`
	Fornecedor    string           `json:"fornecedor" validate:"max=200"`
	Observacoes   string           `json:"observacoes"`
	EstoqueMinimo int              `json:"estoqueMinimo" validate:"min=0"`
	// FotoURL referência de uma foto já gravada no AttachmentStore (upload multipart); nunca vem do JSON.
	FotoURL       string           `json:"-"`
}

// UpdateItemRequest entrada para atualizar campos descritivos de um item.
type UpdateItemRequest struct {
	Nome          *string          `json:"nome" validate:"omitempty,min=1,max=200"`
	Descricao     *string          `json:"descricao" validate:"omitempty,max=2000"`
	CategoriaID   *string          `json:"categoriaId" validate:"omitempty,min=1"`
	CodigoBarras  *string          `json:"codigoBarras" validate:"omitempty,max=100"`
	NumeroSerie   *string          `json:"numeroSerie" validate:"omitempty,max=100"`
	Localizacao   *string          `json:"localizacao" validate:"omitempty,max=200"`
	ValorUnitario *decimal.Decimal `json:"valorUnitario"`
	Fornecedor    *string          `json:"fornecedor" validate:"omitempty,max=200"`
	Observacoes   *string          `json:"observacoes"`
	EstoqueMinimo *int             `json:"estoqueMinimo" validate:"omitempty,min=0"`
	// FotoURL quando preenchida substitui a foto atual.
	FotoURL       string           `json:"-"`
}

// ItemListQuery filtros de listagem (query string).
type ItemListQuery struct {
	CategoriaID string `query:"categoriaId"`
	Search      string `query:"search"`
	Status      string `query:"status" validate:"omitempty,oneof=disponivel esgotado estoque_baixo"`
}

// CategorySummary categoria aninhada em um item.
type CategorySummary struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Icone string `json:"icone,omitempty"`
}

// ItemResponse saída de um item.
type ItemResponse struct {
	ID                   string           `json:"id"`
	Nome                 string           `json:"nome"`
	Descricao            string           `json:"descricao"`
	CategoriaID          string           `json:"categoriaId"`
	Categoria            *CategorySummary `json:"categoria,omitempty"`
	CodigoBarras         string           `json:"codigoBarras,omitempty"`
	NumeroSerie          string           `json:"numeroSerie,omitempty"`
	QuantidadeTotal      int              `json:"quantidadeTotal"`
	QuantidadeDisponivel int              `json:"quantidadeDisponivel"`
	QuantidadeEmUso      int              `json:"quantidadeEmUso"`
	Localizacao          string           `json:"localizacao"`
	ValorUnitario        *decimal.Decimal `json:"valorUnitario"`
	Fornecedor           string           `json:"fornecedor"`
	Observacoes          string           `json:"observacoes"`
	FotoURL              string           `json:"fotoUrl,omitempty"`
	QRCode               string           `json:"qrCode"`
	EstoqueMinimo        int              `json:"estoqueMinimo"`
	Status               string           `json:"status"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
}

// ItemDetailResponse item com o histórico de movimentações.
type ItemDetailResponse struct {
	ItemResponse
	Entradas []EntryResponse `json:"entradas"`
	Saidas   []ExitResponse  `json:"saidas"`
}
