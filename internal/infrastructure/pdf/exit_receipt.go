// Package pdf gera o comprovante de saída de equipamento.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  CABEÇALHO: título + nº da saída  │  data da saída          │
//	│  ITEM: nome, série, categoria, quantidade     │  QR do item │
//	│  SOLICITANTE / DESTINO / MOTIVO / PREVISÃO                  │
//	│  DEVOLUÇÃO (quando registrada)                              │
//	│  ASSINATURAS: liberação e recebimento                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.ExitReceiptGenerator = (*ExitReceiptGenerator)(nil)

// ExitReceiptGenerator implementa report.ExitReceiptGenerator usando Maroto v2.
type ExitReceiptGenerator struct {
	org string
}

// NewExitReceiptGenerator org aparece no cabeçalho e como autor do documento.
func NewExitReceiptGenerator(org string) *ExitReceiptGenerator {
	return &ExitReceiptGenerator{org: org}
}

// GenerateExitReceipt gera o PDF e devolve seus bytes.
func (g *ExitReceiptGenerator) GenerateExitReceipt(_ context.Context, exit dto.ExitResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de Saída", true).
		WithAuthor(g.org, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(exit))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(itemRow(exit))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(requestRows(exit)...)
	if exit.Devolucao != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(returnRows(exit.Devolucao)...)
	}
	m.AddRows(row.New(25))
	m.AddRows(signatureRows(exit)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ExitReceiptGenerator) headerRow(exit dto.ExitResponse) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(g.org, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("COMPROVANTE DE SAÍDA DE EQUIPAMENTO", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Nº "+shortID(exit.ID), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
			text.New("Data: "+exit.DataSaida.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
			text.New("Status: "+exit.Status, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

// itemRow dados do item à esquerda e o QR do item à direita.
func itemRow(exit dto.ExitResponse) core.Row {
	nome, serie, categoria, qr := "—", "—", "—", ""
	if it := exit.Item; it != nil {
		nome = it.Nome
		serie = nonEmpty(it.NumeroSerie, "—")
		if it.Categoria != nil {
			categoria = it.Categoria.Nome
		}
		qr = it.QRCode
	}

	info := col.New(8).Add(
		label("ITEM", 1),
		text.New(nome, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		text.New("Nº de série: "+serie, props.Text{Size: 8, Top: 13, Color: colorGray}),
		text.New("Categoria: "+categoria, props.Text{Size: 8, Top: 18, Color: colorGray}),
		text.New("Quantidade: "+strconv.Itoa(exit.Quantidade), props.Text{Style: fontstyle.Bold, Size: 9, Top: 24}),
	)
	if qr == "" {
		return row.New(35).Add(info, col.New(4))
	}
	return row.New(35).Add(info, col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 90, Center: true})))
}

func requestRows(exit dto.ExitResponse) []core.Row {
	solicitante := "—"
	if exit.Solicitante != nil {
		solicitante = exit.Solicitante.Nome + " <" + exit.Solicitante.Email + ">"
	}
	previsao := "—"
	if exit.PrevisaoDevolucao != nil {
		previsao = exit.PrevisaoDevolucao.Format("02/01/2006")
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(label("SOLICITAÇÃO", 1))),
		field("Solicitante", solicitante),
		field("Destino", nonEmpty(exit.Destino, "—")),
		field("Motivo", nonEmpty(exit.MotivoSaida, "—")),
		field("Previsão de devolução", previsao),
		field("Observações", nonEmpty(exit.Observacoes, "—")),
	}
}

func returnRows(ret *dto.ReturnResponse) []core.Row {
	reparo := "Não"
	if ret.NecessitaReparo {
		reparo = "Sim"
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(label("DEVOLUÇÃO", 1))),
		field("Data", formatDate(ret.DataDevolucao)),
		field("Condição", ret.Condicao),
		field("Motivo do defeito", nonEmpty(ret.MotivoDefeito, "—")),
		field("Necessita reparo", reparo),
	}
}

func signatureRows(exit dto.ExitResponse) []core.Row {
	liberacao, solicitante := "Responsável pela liberação", "Solicitante"
	if exit.ResponsavelLiberacao != nil {
		liberacao = exit.ResponsavelLiberacao.Nome
	}
	if exit.Solicitante != nil {
		solicitante = exit.Solicitante.Nome
	}
	sig := func(name, role string) core.Col {
		return col.New(5).Add(
			text.New("________________________________________", props.Text{Size: 8, Align: align.Center, Color: colorGray}),
			text.New(name, props.Text{Size: 8, Align: align.Center, Top: 5}),
			text.New(role, props.Text{Size: 7, Align: align.Center, Top: 9, Color: colorGray}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			sig(liberacao, "Liberação"),
			col.New(2),
			sig(solicitante, "Recebimento"),
		),
	}
}

func label(s string, top float64) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: top})
}

func field(name, value string) core.Row {
	return row.New(5).Add(
		col.New(3).Add(text.New(name+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 0.5})),
		col.New(9).Add(text.New(value, props.Text{Size: 8, Top: 0.5})),
	)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeiros 8 caracteres do UUID, suficiente para conferência visual.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
