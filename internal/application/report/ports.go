package report

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
)

// Table é uma planilha pronta para exportação: cabeçalhos e linhas com valores já formatados ou numéricos.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

// WorkbookExporter serializa uma Table como arquivo .xlsx.
type WorkbookExporter interface {
	Export(t Table) ([]byte, error)
}

// ExitReceiptGenerator gera o comprovante de saída em PDF.
type ExitReceiptGenerator interface {
	GenerateExitReceipt(ctx context.Context, exit dto.ExitResponse) ([]byte, error)
}
