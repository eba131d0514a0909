package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma saída.
const (
	ExitStatusEmUso     = "em_uso"
	ExitStatusDevolvido = "devolvido"
	ExitStatusBaixado   = "baixado"
)

// Condição de um item devolvido.
const (
	CondicaoPerfeito   = "perfeito"
	CondicaoDefeito    = "defeito"
	CondicaoDanificado = "danificado"
)

// IsValidCondicao indica se c é uma condição de devolução conhecida.
func IsValidCondicao(c string) bool {
	return c == CondicaoPerfeito || c == CondicaoDefeito || c == CondicaoDanificado
}

// IsValidExitStatus indica se s é um status de saída conhecido.
func IsValidExitStatus(s string) bool {
	return s == ExitStatusEmUso || s == ExitStatusDevolvido || s == ExitStatusBaixado
}

// ExitStatusForCondicao devolve o status da saída após uma devolução na condição informada.
func ExitStatusForCondicao(condicao string) string {
	if condicao == CondicaoDanificado {
		return ExitStatusBaixado
	}
	return ExitStatusDevolvido
}

// Entry representa uma entrada de estoque.
type Entry struct {
	ID            string
	ItemID        string
	Quantidade    int // imutável após a criação
	ValorTotal    *decimal.Decimal
	NotaFiscal    string
	Fornecedor    string
	ResponsavelID string
	DataEntrada   time.Time
	Observacoes   string
	CreatedAt     time.Time

	// Projeções (preenchidas nas leituras)
	Item        *Item
	Categoria   *Category
	Responsavel *UserSummary
}

// Exit representa a liberação de itens para um solicitante.
type Exit struct {
	ID                     string
	ItemID                 string
	Quantidade             int // imutável após a criação
	ResponsavelLiberacaoID string
	SolicitanteID          string
	Destino                string
	MotivoSaida            string
	PrevisaoDevolucao      *time.Time
	DataSaida              time.Time
	Status                 string
	Observacoes            string
	CreatedAt              time.Time

	// Projeções
	Item                 *Item
	Categoria            *Category
	ResponsavelLiberacao *UserSummary
	Solicitante          *UserSummary
	Return               *Return
}

// Return representa a devolução de uma saída (no máximo uma por saída).
type Return struct {
	ID                       string
	ExitID                   string
	Condicao                 string // imutável após a criação
	MotivoDefeito            string
	NecessitaReparo          bool
	FotosDefeito             []string
	ResponsavelRecebimentoID string
	DataDevolucao            time.Time
	Observacoes              string
	CreatedAt                time.Time

	// Projeções
	Exit                   *Exit
	ResponsavelRecebimento *UserSummary
}
