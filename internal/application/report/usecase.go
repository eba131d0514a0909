// Package report gera os relatórios do inventário: planilhas Excel e o comprovante de saída em PDF.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// Tipos de relatório aceitos.
const (
	KindInventario   = "inventario"
	KindEntradas     = "entradas"
	KindSaidas       = "saidas"
	KindDevolucoes   = "devolucoes"
	KindEstoqueBaixo = "estoque_baixo"
)

// IsValidKind indica se kind é um relatório conhecido.
func IsValidKind(kind string) bool {
	switch kind {
	case KindInventario, KindEntradas, KindSaidas, KindDevolucoes, KindEstoqueBaixo:
		return true
	}
	return false
}

// MovementSource consultas de movimentações (implementado pelo motor de inventário).
type MovementSource interface {
	ListEntries(ctx context.Context, f repository.EntryFilter) ([]dto.EntryResponse, error)
	ListExits(ctx context.Context, f repository.ExitFilter) ([]dto.ExitResponse, error)
	ListReturns(ctx context.Context, f repository.ReturnFilter) ([]dto.ReturnResponse, error)
	GetExit(ctx context.Context, id string) (*dto.ExitResponse, error)
}

// ItemSource listagem de itens.
type ItemSource interface {
	List(ctx context.Context, q dto.ItemListQuery) ([]dto.ItemResponse, error)
}

// File é um relatório gerado.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
	dateTimeLayout  = "02/01/2006 15:04"
	dateLayout      = "02/01/2006"
)

// ReportUseCase monta as tabelas dos relatórios e delega a serialização aos geradores.
type ReportUseCase struct {
	items     ItemSource
	movements MovementSource
	excel     WorkbookExporter
	pdf       ExitReceiptGenerator
	now       func() time.Time
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(items ItemSource, movements MovementSource, excel WorkbookExporter, pdf ExitReceiptGenerator) *ReportUseCase {
	return &ReportUseCase{items: items, movements: movements, excel: excel, pdf: pdf, now: time.Now}
}

// Workbook gera o relatório kind em .xlsx. period filtra as movimentações (ignorado nos relatórios de itens).
func (uc *ReportUseCase) Workbook(ctx context.Context, kind string, period repository.DateRange) (*File, error) {
	var (
		t   Table
		err error
	)
	switch kind {
	case KindInventario:
		t, err = uc.inventoryTable(ctx)
	case KindEstoqueBaixo:
		t, err = uc.lowStockTable(ctx)
	case KindEntradas:
		t, err = uc.entriesTable(ctx, period)
	case KindSaidas:
		t, err = uc.exitsTable(ctx, period)
	case KindDevolucoes:
		t, err = uc.returnsTable(ctx, period)
	default:
		return nil, domain.Invalid("relatório desconhecido: %q", kind)
	}
	if err != nil {
		return nil, err
	}
	data, err := uc.excel.Export(t)
	if err != nil {
		return nil, fmt.Errorf("report: exportar %s: %w", kind, err)
	}
	return &File{
		Name:        fmt.Sprintf("%s_%s.xlsx", kind, uc.now().Format("2006-01-02")),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ExitReceipt gera o comprovante de uma saída.
func (uc *ReportUseCase) ExitReceipt(ctx context.Context, exitID string) (*File, error) {
	exit, err := uc.movements.GetExit(ctx, exitID)
	if err != nil {
		return nil, err
	}
	data, err := uc.pdf.GenerateExitReceipt(ctx, *exit)
	if err != nil {
		return nil, fmt.Errorf("report: comprovante de saída: %w", err)
	}
	return &File{Name: "comprovante_saida_" + exit.ID + ".pdf", ContentType: pdfContentType, Data: data}, nil
}

func categoryName(it *dto.ItemResponse) string {
	if it == nil || it.Categoria == nil {
		return ""
	}
	return it.Categoria.Nome
}

func itemName(it *dto.ItemResponse) string {
	if it == nil {
		return ""
	}
	return it.Nome
}

func userName(u *dto.UserSummary) string {
	if u == nil {
		return ""
	}
	return u.Nome
}

func money(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	f, _ := d.Round(2).Float64()
	return f
}

func (uc *ReportUseCase) inventoryTable(ctx context.Context) (Table, error) {
	items, err := uc.items.List(ctx, dto.ItemListQuery{})
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Inventário", Headers: []string{
		"Nome", "Categoria", "Código de Barras", "Número de Série", "Quantidade Total",
		"Quantidade Disponível", "Quantidade em Uso", "Localização", "Valor Unitário (R$)",
		"Valor Total (R$)", "Fornecedor", "Estoque Mínimo", "Status",
	}}
	for i := range items {
		it := &items[i]
		total := decimal.Zero
		if it.ValorUnitario != nil {
			total = it.ValorUnitario.Mul(decimal.NewFromInt(int64(it.QuantidadeTotal)))
		}
		t.Rows = append(t.Rows, []any{
			it.Nome, categoryName(it), it.CodigoBarras, it.NumeroSerie, it.QuantidadeTotal,
			it.QuantidadeDisponivel, it.QuantidadeEmUso, it.Localizacao, money(it.ValorUnitario),
			money(&total), it.Fornecedor, it.EstoqueMinimo, it.Status,
		})
	}
	return t, nil
}

// lowStockTable lista itens com estoque mínimo definido e disponível menor ou igual a ele.
func (uc *ReportUseCase) lowStockTable(ctx context.Context) (Table, error) {
	items, err := uc.items.List(ctx, dto.ItemListQuery{})
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Estoque Baixo", Headers: []string{
		"Nome", "Categoria", "Quantidade Disponível", "Estoque Mínimo", "Diferença", "Localização", "Fornecedor",
	}}
	for i := range items {
		it := &items[i]
		if it.EstoqueMinimo == 0 || it.QuantidadeDisponivel > it.EstoqueMinimo {
			continue
		}
		t.Rows = append(t.Rows, []any{
			it.Nome, categoryName(it), it.QuantidadeDisponivel, it.EstoqueMinimo,
			it.QuantidadeDisponivel - it.EstoqueMinimo, it.Localizacao, it.Fornecedor,
		})
	}
	return t, nil
}

func (uc *ReportUseCase) entriesTable(ctx context.Context, period repository.DateRange) (Table, error) {
	entries, err := uc.movements.ListEntries(ctx, repository.EntryFilter{Period: period})
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Entradas", Headers: []string{
		"Data", "Item", "Categoria", "Quantidade", "Valor Total (R$)", "Nota Fiscal", "Fornecedor", "Responsável", "Observações",
	}}
	for _, e := range entries {
		t.Rows = append(t.Rows, []any{
			e.DataEntrada.Format(dateTimeLayout), itemName(e.Item), categoryName(e.Item), e.Quantidade,
			money(e.ValorTotal), e.NotaFiscal, e.Fornecedor, userName(e.Responsavel), e.Observacoes,
		})
	}
	return t, nil
}

// exitStatusLabel rótulo legível do status da saída.
func exitStatusLabel(s string) string {
	switch s {
	case entity.ExitStatusEmUso:
		return "Em Uso"
	case entity.ExitStatusDevolvido:
		return "Devolvido"
	case entity.ExitStatusBaixado:
		return "Baixado"
	}
	return s
}

func condicaoLabel(c string) string {
	switch c {
	case entity.CondicaoPerfeito:
		return "Perfeito"
	case entity.CondicaoDefeito:
		return "Com Defeito"
	case entity.CondicaoDanificado:
		return "Danificado"
	}
	return c
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func (uc *ReportUseCase) exitsTable(ctx context.Context, period repository.DateRange) (Table, error) {
	exits, err := uc.movements.ListExits(ctx, repository.ExitFilter{Period: period})
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Saídas", Headers: []string{
		"Data", "Item", "Categoria", "Quantidade", "Solicitante", "Destino", "Motivo",
		"Previsão Devolução", "Status", "Responsável Liberação", "Observações",
	}}
	for _, e := range exits {
		previsao := ""
		if e.PrevisaoDevolucao != nil {
			previsao = e.PrevisaoDevolucao.Format(dateLayout)
		}
		t.Rows = append(t.Rows, []any{
			e.DataSaida.Format(dateTimeLayout), itemName(e.Item), categoryName(e.Item), e.Quantidade,
			userName(e.Solicitante), e.Destino, e.MotivoSaida, previsao, exitStatusLabel(e.Status),
			userName(e.ResponsavelLiberacao), e.Observacoes,
		})
	}
	return t, nil
}

func (uc *ReportUseCase) returnsTable(ctx context.Context, period repository.DateRange) (Table, error) {
	rets, err := uc.movements.ListReturns(ctx, repository.ReturnFilter{Period: period})
	if err != nil {
		return Table{}, err
	}
	t := Table{Sheet: "Devoluções", Headers: []string{
		"Data Devolução", "Item", "Categoria", "Quantidade", "Condição", "Necessita Reparo",
		"Motivo Defeito", "Solicitante", "Recebido por", "Observações",
	}}
	for _, r := range rets {
		var (
			item        *dto.ItemResponse
			quantidade  int
			solicitante string
		)
		if r.Saida != nil {
			item, quantidade, solicitante = r.Saida.Item, r.Saida.Quantidade, userName(r.Saida.Solicitante)
		}
		t.Rows = append(t.Rows, []any{
			r.DataDevolucao.Format(dateTimeLayout), itemName(item), categoryName(item), quantidade,
			condicaoLabel(r.Condicao), yesNo(r.NecessitaReparo), r.MotivoDefeito, solicitante,
			userName(r.ResponsavelRecebimento), r.Observacoes,
		})
	}
	return t, nil
}
