package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmarkClassify(t *testing.T) {
	var cacLTV Benchmark
	for _, b := range Benchmarks() {
		if b.Key == CACLTV {
			cacLTV = b
		}
	}
	require.NotNil(t, cacLTV.Critical)

	assert.Equal(t, StatusCritical, cacLTV.Classify(2.5))
	assert.Equal(t, StatusWithin, cacLTV.Classify(3))
	assert.Equal(t, StatusWithin, cacLTV.Classify(4.46))
	assert.Equal(t, StatusAbove, cacLTV.Classify(8))

	ticket := Benchmark{Key: AverageTicket, Min: 120, Max: 200, Ideal: 150}
	assert.Equal(t, StatusBelow, ticket.Classify(100))
}

func TestCompareBenchmarks(t *testing.T) {
	comparisons, err := CompareBenchmarks(Load())
	require.NoError(t, err)
	require.Len(t, comparisons, len(Benchmarks()))

	byKey := map[string]BenchmarkComparison{}
	for _, c := range comparisons {
		byKey[c.KPI.Key] = c
	}

	assert.InDelta(t, 4.46, byKey[CACLTV].Mean, 1e-9)
	assert.Equal(t, StatusWithin, byKey[CACLTV].Status)
	assert.InDelta(t, 346.164, byKey[ROI].Mean, 1e-9)
	assert.Equal(t, StatusWithin, byKey[AverageTicket].Status)
}
