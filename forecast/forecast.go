package forecast

import (
	"fmt"
)

// Project генерирует прогнозы на horizon периодов вперед (x = n..n+horizon-1)
// по линии тренда fit. Если fit равен nil, модель строится по series.
func Project(fit *FitResult, series Series, horizon int, policy BandPolicy) (*Forecast, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	if fit == nil {
		var err error
		if fit, err = Fit(series); err != nil {
			return nil, err
		}
	}
	if len(series) < MinPoints {
		return nil, fmt.Errorf("%w: требуется минимум %d точки, получено: %d",
			ErrInsufficientData, MinPoints, len(series))
	}
	if fit.N != len(series) {
		return nil, fmt.Errorf("%w: модель построена по %d точкам, ряд содержит %d",
			ErrFitMismatch, fit.N, len(series))
	}
	if horizon < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHorizon, horizon)
	}
	if policy == nil {
		policy = ResidualNormal95{}
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	forecast := &Forecast{
		Band:   policy.Name(),
		Points: make([]ForecastPoint, horizon),
	}

	n := len(series)
	for i := 0; i < horizon; i++ {
		x := n + i
		value := fit.Predict(float64(x))
		margin := policy.HalfWidth(fit, value)

		forecast.Points[i] = ForecastPoint{
			Period:       x,
			Value:        value,
			Optimistic:   value + margin,
			Conservative: value - margin,
		}
	}

	return forecast, nil
}
