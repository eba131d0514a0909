package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/inventory"
)

func item(total, disp, uso int) *entity.Item {
	return &entity.Item{ID: "i1", QuantidadeTotal: total, QuantidadeDisponivel: disp, QuantidadeEmUso: uso}
}

func TestApply_EntradaSaidaDevolucao(t *testing.T) {
	c, err := inventory.Apply(item(0, 0, 0), inventory.ForEntry(10))
	require.NoError(t, err)
	assert.Equal(t, inventory.Counters{Total: 10, Available: 10}, c)

	c, err = inventory.Apply(item(10, 10, 0), inventory.ForExit(4))
	require.NoError(t, err)
	assert.Equal(t, inventory.Counters{Total: 10, Available: 6, InUse: 4}, c)

	d, err := inventory.ForReturn(entity.CondicaoDanificado, 4)
	require.NoError(t, err)
	c, err = inventory.Apply(item(10, 6, 4), d)
	require.NoError(t, err)
	assert.Equal(t, inventory.Counters{Total: 6, Available: 6}, c)

	d, err = inventory.ForReturn(entity.CondicaoDefeito, 4)
	require.NoError(t, err)
	c, err = inventory.Apply(item(10, 6, 4), d)
	require.NoError(t, err)
	assert.Equal(t, inventory.Counters{Total: 10, Available: 10}, c)
}

func TestRequireAvailable_SaidaMaiorQueDisponivel(t *testing.T) {
	err := inventory.RequireAvailable(item(5, 5, 0), 6)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 5, ise.Available)
	assert.Equal(t, 6, ise.Requested)
	assert.Contains(t, err.Error(), "Disponível: 5")

	assert.NoError(t, inventory.RequireAvailable(item(5, 5, 0), 5))
}

func TestApply_SaidaSemEstoqueQuebraInvariante(t *testing.T) {
	_, err := inventory.Apply(item(5, 5, 0), inventory.ForExit(6))
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestApply_SaidaIgualAoDisponivel(t *testing.T) {
	c, err := inventory.Apply(item(5, 5, 0), inventory.ForExit(5))
	require.NoError(t, err)
	assert.Equal(t, inventory.Counters{Total: 5, Available: 0, InUse: 5}, c)
}

func TestApply_ReversaoNegativaEConflito(t *testing.T) {
	// entrada de 10 já consumida por saídas: desfazer a entrada deixaria disponivel < 0
	_, err := inventory.Apply(item(10, 2, 8), inventory.ForEntry(10).Invert())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestForReturn_CondicaoInvalida(t *testing.T) {
	_, err := inventory.ForReturn("quebrado", 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestInvert_DesfazDelta(t *testing.T) {
	for _, cond := range []string{entity.CondicaoPerfeito, entity.CondicaoDefeito, entity.CondicaoDanificado} {
		d, err := inventory.ForReturn(cond, 3)
		require.NoError(t, err)
		start := inventory.Counters{Total: 10, Available: 7, InUse: 3}
		assert.Equal(t, start, d.Invert().ApplyTo(d.ApplyTo(start)), cond)
	}
}

func TestReconcile(t *testing.T) {
	c := inventory.Reconcile([]int{10, 4}, []inventory.ExitFacts{
		{Quantidade: 3, Status: entity.ExitStatusEmUso},
		{Quantidade: 2, Status: entity.ExitStatusDevolvido, ReturnCondicao: entity.CondicaoPerfeito},
		{Quantidade: 1, Status: entity.ExitStatusBaixado, ReturnCondicao: entity.CondicaoDanificado},
	})
	assert.Equal(t, inventory.Counters{Total: 13, Available: 10, InUse: 3}, c)
	assert.True(t, c.Valid())

	drift := inventory.Drift{Stored: inventory.Counters{Total: 14, Available: 11, InUse: 3}, Expected: c}
	assert.True(t, drift.HasDrift())
}

func TestItemStatus(t *testing.T) {
	it := &entity.Item{QuantidadeDisponivel: 0, EstoqueMinimo: 2}
	assert.Equal(t, entity.ItemStatusEsgotado, it.Status())
	it.QuantidadeDisponivel = 2
	assert.Equal(t, entity.ItemStatusEstoqueBaixo, it.Status())
	it.QuantidadeDisponivel = 3
	assert.Equal(t, entity.ItemStatusDisponivel, it.Status())
}
