package wdqs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ShareServiceNamespace(t *testing.T) {
	queriesTotal.WithLabelValues("ok")

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["depicts_wdqs_queries_total"], "counter not registered under depicts_wdqs")
	assert.True(t, names["depicts_wdqs_query_duration_seconds"], "histogram not registered under depicts_wdqs")
	assert.False(t, names["wdqs_queries_total"])
}
