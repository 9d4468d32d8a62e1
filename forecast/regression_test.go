package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceFit считает коэффициенты через ковариацию и дисперсию
func referenceFit(series Series) (intercept, slope float64) {
	n := float64(len(series))
	meanX, meanY := 0.0, 0.0
	for i, y := range series {
		meanX += float64(i)
		meanY += y
	}
	meanX /= n
	meanY /= n

	cov, varX := 0.0, 0.0
	for i, y := range series {
		dx := float64(i) - meanX
		cov += dx * (y - meanY)
		varX += dx * dx
	}
	slope = cov / varX
	return meanY - slope*meanX, slope
}

func sumSquares(series Series, intercept, slope float64) float64 {
	s := 0.0
	for i, y := range series {
		r := y - (intercept + slope*float64(i))
		s += r * r
	}
	return s
}

func TestFit_MatchesCovarianceReference(t *testing.T) {
	cases := []Series{
		{1, 2},
		{270, 290, 401, 600, 604},
		{2114.56, 1991.31, 2591.91, 2728.92, 3001.90},
		{390.52, 341.57, 446.70, 289.45, 262.58},
		{-3, 7, -1, 12, 0, 4, 9},
	}

	for _, series := range cases {
		fit, err := Fit(series)
		require.NoError(t, err)

		intercept, slope := referenceFit(series)
		assert.InDelta(t, intercept, fit.Intercept, 1e-9)
		assert.InDelta(t, slope, fit.Slope, 1e-9)
		assert.Equal(t, len(series), fit.N)
		assert.Len(t, fit.Fitted, len(series))
		assert.Len(t, fit.Residuals, len(series))
	}
}

func TestFit_MinimizesSquaredResiduals(t *testing.T) {
	series := Series{5218, 5600, 5717, 7654, 8028}

	fit, err := Fit(series)
	require.NoError(t, err)

	best := sumSquares(series, fit.Intercept, fit.Slope)
	for _, d := range []float64{-1, -0.1, 0.1, 1} {
		assert.Greater(t, sumSquares(series, fit.Intercept+d, fit.Slope), best)
		assert.Greater(t, sumSquares(series, fit.Intercept, fit.Slope+d), best)
	}
}

func TestFit_ResidualsAndStdDev(t *testing.T) {
	series := Series{1, 3, 2, 4}

	fit, err := Fit(series)
	require.NoError(t, err)

	for i, y := range series {
		assert.InDelta(t, y-fit.Fitted[i], fit.Residuals[i], 1e-12)
	}

	// slope = 0.8, intercept = 1.3: остатки -0.3, 0.9, -0.9, 0.3
	assert.InDelta(t, 0.8, fit.Slope, 1e-12)
	assert.InDelta(t, 1.3, fit.Intercept, 1e-12)
	assert.InDelta(t, math.Sqrt((0.09+0.81+0.81+0.09)/4), fit.ResidualStdDev, 1e-12)
}

func TestFit_InsufficientData(t *testing.T) {
	_, err := Fit(Series{42})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	_, err = Fit(nil)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestFit_NaNPropagates(t *testing.T) {
	fit, err := Fit(Series{1, math.NaN(), 3})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(fit.Slope))
}

func TestRoundToThousandth(t *testing.T) {
	assert.Equal(t, 726.4, RoundToThousandth(726.40000000001))
	assert.Equal(t, 0.123, RoundToThousandth(0.12345))
	assert.Equal(t, -1.235, RoundToThousandth(-1.2346))
}
