// AngelaMos | 2026
// metrics_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncOrdersCreated()
		m.AddOrderLinesSkipped(3)
		m.IncAppointmentsBooked()
		m.ObserveLogin("success")
		m.IncContactMessages()
		m.IncSessionsInvalidated()
	})
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncOrdersCreated()
	m.AddOrderLinesSkipped(2)
	m.AddOrderLinesSkipped(0)
	m.ObserveLogin("failure")
	m.ObserveLogin("failure")

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				values[mf.GetName()] += c.GetValue()
			}
		}
	}

	assert.InDelta(t, 1, values["petshop_orders_created_total"], 0)
	assert.InDelta(t, 2, values["petshop_order_lines_skipped_total"], 0)
	assert.InDelta(t, 2, values["petshop_login_attempts_total"], 0)
}
