package forecast

import (
	"fmt"
	"math"
)

// Quality рассчитывает метрики качества модели на исторических данных:
// R², RMSE, MAPE и тест Кендалла на монотонный тренд
func Quality(fit *FitResult, series Series) (QualityMetrics, error) {
	if len(series) == 0 {
		return QualityMetrics{}, ErrEmptySeries
	}
	if fit == nil || fit.N != len(series) || len(fit.Residuals) != len(series) {
		n := 0
		if fit != nil {
			n = fit.N
		}
		return QualityMetrics{}, fmt.Errorf("%w: модель построена по %d точкам, ряд содержит %d",
			ErrFitMismatch, n, len(series))
	}

	metrics := QualityMetrics{
		ResidualStdDev: fit.ResidualStdDev,
		Trend:          KendallTau(series),
	}

	// Сумма квадратов остатков и отклонений от среднего
	mean := 0.0
	for _, y := range series {
		mean += y
	}
	mean /= float64(len(series))

	ssRes := 0.0
	ssTot := 0.0
	for i, y := range series {
		ssRes += fit.Residuals[i] * fit.Residuals[i]
		ssTot += (y - mean) * (y - mean)
	}

	// Коэффициент детерминации не определен для постоянного ряда
	if ssTot != 0 {
		metrics.R2 = 1 - ssRes/ssTot
		metrics.R2Defined = true
	}

	metrics.RMSE = math.Sqrt(ssRes / float64(len(series)))

	// MAPE: слагаемые с нулевым наблюдением пропускаются
	sumPct := 0.0
	valid := 0
	for i, y := range series {
		if y == 0 {
			metrics.MAPESkipped++
			continue
		}
		sumPct += math.Abs(fit.Residuals[i] / y)
		valid++
	}
	if valid > 0 {
		metrics.MAPE = sumPct / float64(valid) * 100
		metrics.MAPEDefined = true
	}

	return metrics, nil
}
