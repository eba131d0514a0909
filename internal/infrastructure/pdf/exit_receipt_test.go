package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/pdf"
)

func TestGenerateExitReceipt_ComItemEDevolucao(t *testing.T) {
	prev := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	exit := dto.ExitResponse{
		ID:                "3f1c2a7e-0000-4000-8000-000000000001",
		ItemID:            "item-1",
		Quantidade:        2,
		Destino:           "Sala 204",
		MotivoSaida:       "Treinamento",
		PrevisaoDevolucao: &prev,
		DataSaida:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:            "devolvido",
		Item: &dto.ItemResponse{
			ID: "item-1", Nome: "Notebook Dell", NumeroSerie: "SN-123", QRCode: "c0ffee",
			Categoria: &dto.CategorySummary{ID: "cat-1", Nome: "Notebooks"},
		},
		Solicitante:          &dto.UserSummary{ID: "u2", Nome: "Maria", Email: "maria@cmoc.com"},
		ResponsavelLiberacao: &dto.UserSummary{ID: "u1", Nome: "João", Email: "joao@cmoc.com"},
		Devolucao: &dto.ReturnResponse{
			ID: "r1", Condicao: "perfeito", DataDevolucao: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	out, err := pdf.NewExitReceiptGenerator("CMOC - TI").GenerateExitReceipt(context.Background(), exit)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateExitReceipt_SemProjecoes(t *testing.T) {
	out, err := pdf.NewExitReceiptGenerator("CMOC").GenerateExitReceipt(context.Background(), dto.ExitResponse{
		ID: "x", Quantidade: 1, Status: "em_uso", DataSaida: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
