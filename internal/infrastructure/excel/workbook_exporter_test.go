package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/excel"
)

func TestExport_CabecalhoELinhas(t *testing.T) {
	data, err := excel.NewWorkbookExporter().Export(report.Table{
		Sheet:   "Inventário",
		Headers: []string{"Nome", "Quantidade Total"},
		Rows: [][]any{
			{"Notebook Dell", 10},
			{"Monitor LG", 3},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventário")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Nome", "Quantidade Total"}, rows[0])
	assert.Equal(t, []string{"Notebook Dell", "10"}, rows[1])
	assert.Equal(t, "Monitor LG", rows[2][0])
}

func TestExport_TabelaVazia(t *testing.T) {
	data, err := excel.NewWorkbookExporter().Export(report.Table{Sheet: "Dados", Headers: []string{"Nome"}})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
