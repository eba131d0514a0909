// Package excel serializa as tabelas de relatório em planilhas .xlsx com excelize.
package excel

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ti/internal/application/report"
)

var _ report.WorkbookExporter = (*WorkbookExporter)(nil)

const (
	minColWidth = 10
	maxColWidth = 50
)

// WorkbookExporter implementa report.WorkbookExporter.
type WorkbookExporter struct{}

// NewWorkbookExporter constrói o exportador.
func NewWorkbookExporter() *WorkbookExporter { return &WorkbookExporter{} }

// Export escreve cabeçalho em negrito na linha 1, os dados a partir da linha 2 e ajusta a largura das colunas.
func (e *WorkbookExporter) Export(t report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if t.Sheet != "" {
		if err := f.SetSheetName(sheet, t.Sheet); err != nil {
			return nil, fmt.Errorf("excel: nome da aba: %w", err)
		}
		sheet = t.Sheet
	}

	header := make([]interface{}, len(t.Headers))
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabeçalho: %w", err)
	}

	for i, r := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: célula: %w", err)
		}
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
			if j < len(widths) {
				if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[j] {
					widths[j] = n
				}
			}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: linha %d: %w", i+2, err)
		}
	}

	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		})
		if err != nil {
			return nil, fmt.Errorf("excel: estilo: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return nil, fmt.Errorf("excel: célula: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return nil, fmt.Errorf("excel: estilo do cabeçalho: %w", err)
		}
	}
	for i, w := range widths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("excel: coluna: %w", err)
		}
		if err := f.SetColWidth(sheet, colName, colName, float64(clamp(w+2, minColWidth, maxColWidth))); err != nil {
			return nil, fmt.Errorf("excel: largura da coluna: %w", err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: gravar: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
