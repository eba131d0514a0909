package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/infrastructure/metrics"
)

func TestMetrics_ContaMovimentacoesERequisicoes(t *testing.T) {
	m := metrics.New("inventario_test")
	m.MovementApplied("saida", "create")
	m.MovementApplied("saida", "create")
	m.MovementRejected("saida", "insufficient_stock")
	m.ObserveRequest("POST", "/api/exits", 201, 15*time.Millisecond)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[f.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["inventario_test_inventory_movements_total"])
	assert.Equal(t, 1.0, values["inventario_test_inventory_movements_rejected_total"])
	assert.Equal(t, 1.0, values["inventario_test_http_requests_total"])
}
