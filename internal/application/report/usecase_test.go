package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

type fakeItems struct {
	items []dto.ItemResponse
}

func (f *fakeItems) List(_ context.Context, _ dto.ItemListQuery) ([]dto.ItemResponse, error) {
	return f.items, nil
}

type fakeMovements struct {
	entries     []dto.EntryResponse
	exits       []dto.ExitResponse
	returns     []dto.ReturnResponse
	entryPeriod repository.DateRange
}

func (f *fakeMovements) ListEntries(_ context.Context, flt repository.EntryFilter) ([]dto.EntryResponse, error) {
	f.entryPeriod = flt.Period
	return f.entries, nil
}

func (f *fakeMovements) ListExits(_ context.Context, _ repository.ExitFilter) ([]dto.ExitResponse, error) {
	return f.exits, nil
}

func (f *fakeMovements) ListReturns(_ context.Context, _ repository.ReturnFilter) ([]dto.ReturnResponse, error) {
	return f.returns, nil
}

func (f *fakeMovements) GetExit(_ context.Context, id string) (*dto.ExitResponse, error) {
	for i := range f.exits {
		if f.exits[i].ID == id {
			return &f.exits[i], nil
		}
	}
	return nil, domain.NotFound("saída %s não encontrada", id)
}

// captureExporter guarda a última tabela recebida.
type captureExporter struct {
	last report.Table
	err  error
}

func (c *captureExporter) Export(t report.Table) ([]byte, error) {
	c.last = t
	return []byte("xlsx"), c.err
}

type fakeReceipt struct{}

func (fakeReceipt) GenerateExitReceipt(_ context.Context, exit dto.ExitResponse) ([]byte, error) {
	return []byte("%PDF-" + exit.ID), nil
}

func newUseCase(items []dto.ItemResponse, mv *fakeMovements) (*report.ReportUseCase, *captureExporter) {
	exp := &captureExporter{}
	return report.NewReportUseCase(&fakeItems{items: items}, mv, exp, fakeReceipt{}), exp
}

func TestWorkbook_InventarioCalculaValorTotal(t *testing.T) {
	v := decimal.RequireFromString("1500.50")
	uc, exp := newUseCase([]dto.ItemResponse{
		{Nome: "Notebook", Categoria: &dto.CategorySummary{Nome: "Notebooks"}, QuantidadeTotal: 2, QuantidadeDisponivel: 1, QuantidadeEmUso: 1, ValorUnitario: &v, Status: "disponivel"},
	}, &fakeMovements{})

	f, err := uc.Workbook(context.Background(), report.KindInventario, repository.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", f.ContentType)
	assert.Contains(t, f.Name, "inventario_")

	require.Len(t, exp.last.Rows, 1)
	row := exp.last.Rows[0]
	assert.Equal(t, "Notebook", row[0])
	assert.Equal(t, "Notebooks", row[1])
	assert.Equal(t, 1500.5, row[8])
	assert.Equal(t, 3001.0, row[9])
}

func TestWorkbook_EstoqueBaixoFiltraItens(t *testing.T) {
	uc, exp := newUseCase([]dto.ItemResponse{
		{Nome: "Sem mínimo", QuantidadeDisponivel: 0, EstoqueMinimo: 0},
		{Nome: "No limite", QuantidadeDisponivel: 2, EstoqueMinimo: 2},
		{Nome: "Acima", QuantidadeDisponivel: 5, EstoqueMinimo: 2},
		{Nome: "Zerado", QuantidadeDisponivel: 0, EstoqueMinimo: 3},
	}, &fakeMovements{})

	_, err := uc.Workbook(context.Background(), report.KindEstoqueBaixo, repository.DateRange{})
	require.NoError(t, err)
	require.Len(t, exp.last.Rows, 2)
	assert.Equal(t, "No limite", exp.last.Rows[0][0])
	assert.Equal(t, "Zerado", exp.last.Rows[1][0])
	assert.Equal(t, -3, exp.last.Rows[1][4])
}

func TestWorkbook_EntradasRepassaPeriodo(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mv := &fakeMovements{entries: []dto.EntryResponse{{Quantidade: 4, DataEntrada: start}}}
	uc, exp := newUseCase(nil, mv)

	_, err := uc.Workbook(context.Background(), report.KindEntradas, repository.DateRange{Start: &start})
	require.NoError(t, err)
	require.NotNil(t, mv.entryPeriod.Start)
	assert.True(t, mv.entryPeriod.Start.Equal(start))
	require.Len(t, exp.last.Rows, 1)
	assert.Equal(t, "01/03/2026 00:00", exp.last.Rows[0][0])
}

func TestWorkbook_DevolucoesUsaDadosDaSaida(t *testing.T) {
	mv := &fakeMovements{returns: []dto.ReturnResponse{{
		Condicao:        "defeito",
		NecessitaReparo: true,
		Saida:           &dto.ExitResponse{Quantidade: 3, Item: &dto.ItemResponse{Nome: "Monitor"}, Solicitante: &dto.UserSummary{Nome: "Ana"}},
	}}}
	uc, exp := newUseCase(nil, mv)

	_, err := uc.Workbook(context.Background(), report.KindDevolucoes, repository.DateRange{})
	require.NoError(t, err)
	row := exp.last.Rows[0]
	assert.Equal(t, "Monitor", row[1])
	assert.Equal(t, 3, row[3])
	assert.Equal(t, "Com Defeito", row[4])
	assert.Equal(t, "Sim", row[5])
	assert.Equal(t, "Ana", row[7])
}

func TestWorkbook_TipoDesconhecido(t *testing.T) {
	uc, _ := newUseCase(nil, &fakeMovements{})
	_, err := uc.Workbook(context.Background(), "compras", repository.DateRange{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, report.IsValidKind("compras"))
	assert.True(t, report.IsValidKind(report.KindSaidas))
}

func TestWorkbook_FalhaDoExportador(t *testing.T) {
	uc, exp := newUseCase(nil, &fakeMovements{})
	exp.err = errors.New("disco cheio")
	_, err := uc.Workbook(context.Background(), report.KindSaidas, repository.DateRange{})
	assert.ErrorContains(t, err, "disco cheio")
}

func TestExitReceipt(t *testing.T) {
	uc, _ := newUseCase(nil, &fakeMovements{exits: []dto.ExitResponse{{ID: "s1"}}})

	f, err := uc.ExitReceipt(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.Equal(t, "comprovante_saida_s1.pdf", f.Name)
	assert.Equal(t, "%PDF-s1", string(f.Data))

	_, err = uc.ExitReceipt(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
