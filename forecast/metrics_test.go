package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qualityOf(t *testing.T, series Series) QualityMetrics {
	t.Helper()
	fit, err := Fit(series)
	require.NoError(t, err)
	m, err := Quality(fit, series)
	require.NoError(t, err)
	return m
}

func TestQuality_PerfectLine(t *testing.T) {
	m := qualityOf(t, Series{1, 2, 3, 4, 5})

	assert.True(t, m.R2Defined)
	assert.Equal(t, 1.0, m.R2)
	assert.Equal(t, 0.0, m.RMSE)
	assert.True(t, m.MAPEDefined)
	assert.Equal(t, 0.0, m.MAPE)
	assert.Equal(t, 0, m.MAPESkipped)
	assert.Equal(t, 0.0, m.ResidualStdDev)
}

func TestQuality_MatchesManualFormulas(t *testing.T) {
	series := Series{1, 3, 2, 4}
	m := qualityOf(t, series)

	// Остатки -0.3, 0.9, -0.9, 0.3; среднее ряда 2.5
	ssRes := 0.09 + 0.81 + 0.81 + 0.09
	ssTot := 2.25 + 0.25 + 0.25 + 2.25
	assert.InDelta(t, 1-ssRes/ssTot, m.R2, 1e-12)
	assert.InDelta(t, math.Sqrt(ssRes/4), m.RMSE, 1e-12)
	assert.InDelta(t, (0.3/1+0.9/3+0.9/2+0.3/4)/4*100, m.MAPE, 1e-9)
}

func TestQuality_ConstantSeriesFlagsR2(t *testing.T) {
	m := qualityOf(t, Series{5, 5, 5})

	assert.False(t, m.R2Defined)
	assert.Equal(t, 0.0, m.R2)
	assert.False(t, m.Trend.Defined)
	assert.True(t, m.MAPEDefined)
}

func TestQuality_ZeroObservationsSkippedInMAPE(t *testing.T) {
	m := qualityOf(t, Series{0, 1, 2})
	assert.True(t, m.MAPEDefined)
	assert.Equal(t, 1, m.MAPESkipped)
	assert.InDelta(t, 0.0, m.MAPE, 1e-12)
	assert.False(t, math.IsInf(m.MAPE, 0))

	m = qualityOf(t, Series{0, 0})
	assert.False(t, m.MAPEDefined)
	assert.Equal(t, 2, m.MAPESkipped)
	assert.Equal(t, 0.0, m.MAPE)
}

func TestQuality_Errors(t *testing.T) {
	_, err := Quality(nil, Series{})
	assert.True(t, errors.Is(err, ErrEmptySeries))

	fit, err := Fit(Series{1, 2, 3})
	require.NoError(t, err)
	_, err = Quality(fit, Series{1, 2})
	assert.True(t, errors.Is(err, ErrFitMismatch))

	_, err = Quality(nil, Series{1, 2})
	assert.True(t, errors.Is(err, ErrFitMismatch))
}

func TestAssess_Bands(t *testing.T) {
	tests := []struct {
		name    string
		metrics QualityMetrics
		want    Assessment
	}{
		{
			name: "excellent fit, low error, upward trend",
			metrics: QualityMetrics{
				R2: 0.95, R2Defined: true, MAPE: 4, MAPEDefined: true,
				Trend: TrendTest{Tau: 1, PValue: 0.01, Defined: true},
			},
			want: Assessment{Fit: FitExcellent, Error: ErrorLow, Trend: TrendUp},
		},
		{
			name: "moderate fit, moderate error, downward trend",
			metrics: QualityMetrics{
				R2: 0.7, R2Defined: true, MAPE: 15, MAPEDefined: true,
				Trend: TrendTest{Tau: -0.8, PValue: 0.04, Defined: true},
			},
			want: Assessment{Fit: FitModerate, Error: ErrorModerate, Trend: TrendDown},
		},
		{
			name: "boundaries are exclusive",
			metrics: QualityMetrics{
				R2: 0.6, R2Defined: true, MAPE: 20, MAPEDefined: true,
				Trend: TrendTest{Tau: 0.4, PValue: 0.05, Defined: true},
			},
			want: Assessment{Fit: FitLow, Error: ErrorHigh, Trend: TrendNotSignificant},
		},
		{
			name:    "undefined metrics",
			metrics: QualityMetrics{},
			want:    Assessment{Fit: Undefined, Error: Undefined, Trend: Undefined},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Assess(tt.metrics))
		})
	}
}
