package forecast

import (
	"fmt"
	"math"
)

// RoundToThousandth округляет число до тысячных (3 знака после запятой)
func RoundToThousandth(value float64) float64 {
	return math.Round(value*1000) / 1000
}

// Fit выполняет расчет линейной регрессии методом наименьших квадратов
// по точкам (i, series[i]), i = 0..n-1
func Fit(series Series) (*FitResult, error) {
	if len(series) < MinPoints {
		return nil, fmt.Errorf("%w: требуется минимум %d точки, получено: %d",
			ErrInsufficientData, MinPoints, len(series))
	}

	// формулы:
	// b = (n*sum(x*y) - sum(x)*sum(y)) / (n*sum(x^2) - (sum(x))^2)
	// a = (sum(y) - b*sum(x)) / n
	n := float64(len(series))
	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0

	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	// При x = 0..n-1 и n >= 2 знаменатель всегда положителен
	denominator := n*sumX2 - sumX*sumX
	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	result := &FitResult{
		Intercept: intercept,
		Slope:     slope,
		N:         len(series),
		Fitted:    make([]float64, len(series)),
		Residuals: make([]float64, len(series)),
	}

	for i, y := range series {
		result.Fitted[i] = result.Predict(float64(i))
		result.Residuals[i] = y - result.Fitted[i]
	}
	result.ResidualStdDev = populationStdDev(result.Residuals)

	return result, nil
}

// Predict прогнозирует значение Y для заданного X на основе модели
func (f *FitResult) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// populationStdDev стандартное отклонение с делителем n
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
