package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest entrada para registrar uma entrada de estoque.
type CreateEntryRequest struct {
	ItemID      string           `json:"itemId" validate:"required"`
	Quantidade  int              `json:"quantidade" validate:"required,gt=0"`
	ValorTotal  *decimal.Decimal `json:"valorTotal"`
	NotaFiscal  string           `json:"notaFiscal" validate:"max=100"`
	Fornecedor  string           `json:"fornecedor" validate:"max=200"`
	DataEntrada *Date            `json:"dataEntrada"`
	Observacoes string           `json:"observacoes"`
}

// UpdateEntryRequest campos descritivos de uma entrada. Quantidade só é aceita se igual à gravada.
type UpdateEntryRequest struct {
	Quantidade  *int             `json:"quantidade"`
	ValorTotal  *decimal.Decimal `json:"valorTotal"`
	NotaFiscal  *string          `json:"notaFiscal" validate:"omitempty,max=100"`
	Fornecedor  *string          `json:"fornecedor" validate:"omitempty,max=200"`
	DataEntrada *Date            `json:"dataEntrada"`
	Observacoes *string          `json:"observacoes"`
}

// CreateExitRequest entrada para registrar uma saída.
type CreateExitRequest struct {
	ItemID            string `json:"itemId" validate:"required"`
	Quantidade        int    `json:"quantidade" validate:"required,gt=0"`
	SolicitanteID     string `json:"solicitanteId" validate:"required"`
	Destino           string `json:"destino" validate:"required,max=200"`
	MotivoSaida       string `json:"motivoSaida" validate:"required,max=500"`
	PrevisaoDevolucao *Date  `json:"previsaoDevolucao"`
	DataSaida         *Date  `json:"dataSaida"`
	Observacoes       string `json:"observacoes"`
}

// UpdateExitRequest campos descritivos de uma saída. Quantidade só é aceita se igual à gravada.
type UpdateExitRequest struct {
	Quantidade        *int    `json:"quantidade"`
	SolicitanteID     *string `json:"solicitanteId" validate:"omitempty,min=1"`
	Destino           *string `json:"destino" validate:"omitempty,min=1,max=200"`
	MotivoSaida       *string `json:"motivoSaida" validate:"omitempty,min=1,max=500"`
	PrevisaoDevolucao *Date   `json:"previsaoDevolucao"`
	DataSaida         *Date   `json:"dataSaida"`
	Observacoes       *string `json:"observacoes"`
}

// CreateReturnRequest entrada para registrar a devolução de uma saída.
// As fotos chegam por multipart e são passadas ao motor já armazenadas.
type CreateReturnRequest struct {
	ExitID          string `json:"exitId" form:"exitId" validate:"required"`
	Condicao        string `json:"condicao" form:"condicao" validate:"required,oneof=perfeito defeito danificado"`
	MotivoDefeito   string `json:"motivoDefeito" form:"motivoDefeito" validate:"max=1000"`
	NecessitaReparo bool   `json:"necessitaReparo" form:"necessitaReparo"`
	DataDevolucao   *Date  `json:"dataDevolucao" form:"-"`
	Observacoes     string `json:"observacoes" form:"observacoes"`
}

// UpdateReturnRequest campos descritivos de uma devolução. Condição só é aceita se igual à gravada.
type UpdateReturnRequest struct {
	Condicao        *string `json:"condicao"`
	MotivoDefeito   *string `json:"motivoDefeito" validate:"omitempty,max=1000"`
	NecessitaReparo *bool   `json:"necessitaReparo"`
	DataDevolucao   *Date   `json:"dataDevolucao"`
	Observacoes     *string `json:"observacoes"`
}

// EntryListQuery filtros de entradas.
type EntryListQuery struct {
	ItemID    string `query:"itemId"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// ExitListQuery filtros de saídas.
type ExitListQuery struct {
	ItemID    string `query:"itemId"`
	Status    string `query:"status" validate:"omitempty,oneof=em_uso devolvido baixado"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// ReturnListQuery filtros de devoluções.
type ReturnListQuery struct {
	Condicao  string `query:"condicao" validate:"omitempty,oneof=perfeito defeito danificado"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// EntryResponse saída de uma entrada.
type EntryResponse struct {
	ID            string           `json:"id"`
	ItemID        string           `json:"itemId"`
	Quantidade    int              `json:"quantidade"`
	ValorTotal    *decimal.Decimal `json:"valorTotal"`
	NotaFiscal    string           `json:"notaFiscal"`
	Fornecedor    string           `json:"fornecedor"`
	ResponsavelID string           `json:"responsavelId"`
	DataEntrada   time.Time        `json:"dataEntrada"`
	Observacoes   string           `json:"observacoes"`
	CreatedAt     time.Time        `json:"createdAt"`
	Item          *ItemResponse    `json:"item,omitempty"`
	Responsavel   *UserSummary     `json:"responsavel,omitempty"`
}

// ExitResponse saída de uma saída, com a devolução quando existir.
type ExitResponse struct {
	ID                     string          `json:"id"`
	ItemID                 string          `json:"itemId"`
	Quantidade             int             `json:"quantidade"`
	ResponsavelLiberacaoID string          `json:"responsavelLiberacaoId"`
	SolicitanteID          string          `json:"solicitanteId"`
	Destino                string          `json:"destino"`
	MotivoSaida            string          `json:"motivoSaida"`
	PrevisaoDevolucao      *time.Time      `json:"previsaoDevolucao"`
	DataSaida              time.Time       `json:"dataSaida"`
	Status                 string          `json:"status"`
	Observacoes            string          `json:"observacoes"`
	CreatedAt              time.Time       `json:"createdAt"`
	Item                   *ItemResponse   `json:"item,omitempty"`
	ResponsavelLiberacao   *UserSummary    `json:"responsavelLiberacao,omitempty"`
	Solicitante            *UserSummary    `json:"solicitante,omitempty"`
	Devolucao              *ReturnResponse `json:"devolucao,omitempty"`
}

// ReturnResponse saída de uma devolução, com a saída aninhada nas leituras diretas.
type ReturnResponse struct {
	ID                       string        `json:"id"`
	ExitID                   string        `json:"exitId"`
	Condicao                 string        `json:"condicao"`
	MotivoDefeito            string        `json:"motivoDefeito"`
	NecessitaReparo          bool          `json:"necessitaReparo"`
	FotosDefeito             []string      `json:"fotosDefeito"`
	ResponsavelRecebimentoID string        `json:"responsavelRecebimentoId"`
	DataDevolucao            time.Time     `json:"dataDevolucao"`
	Observacoes              string        `json:"observacoes"`
	CreatedAt                time.Time     `json:"createdAt"`
	Saida                    *ExitResponse `json:"saida,omitempty"`
	ResponsavelRecebimento   *UserSummary  `json:"responsavelRecebimento,omitempty"`
}

// CountersResponse contadores de um item.
type CountersResponse struct {
	QuantidadeTotal      int `json:"quantidadeTotal"`
	QuantidadeDisponivel int `json:"quantidadeDisponivel"`
	QuantidadeEmUso      int `json:"quantidadeEmUso"`
}

// ReconcileResponse resultado da reconciliação de um item.
type ReconcileResponse struct {
	ItemID     string           `json:"itemId"`
	Nome       string           `json:"nome"`
	Armazenado CountersResponse `json:"armazenado"`
	Esperado   CountersResponse `json:"esperado"`
	Divergente bool             `json:"divergente"`
	Corrigido  bool             `json:"corrigido"`
}
