package forecast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Z-значение для 95% доверительного интервала
const z95 = 1.96

// Названия политик доверительной полосы
const (
	BandResidual = "residual"
	BandFixed    = "fixed"
)

// BandPolicy определяет полуширину доверительной полосы вокруг точечного прогноза
type BandPolicy interface {
	// Name возвращает название политики для отображения
	Name() string
	// Validate проверяет параметры политики
	Validate() error
	// HalfWidth возвращает неотрицательную полуширину полосы для точки прогноза
	HalfWidth(fit *FitResult, point float64) float64
}

// ResidualNormal95 полоса ±1.96 стандартного отклонения остатков.
// Ширина одинакова для всех периодов прогноза и не растет с удалением
// от последнего наблюдения.
type ResidualNormal95 struct{}

func (ResidualNormal95) Name() string { return BandResidual }

func (ResidualNormal95) Validate() error { return nil }

func (ResidualNormal95) HalfWidth(fit *FitResult, _ float64) float64 {
	return z95 * fit.ResidualStdDev
}

// FixedPercent полоса point ± |point|·P. Для неотрицательных точек это point × (1 ± P);
// для отрицательных берется модуль, чтобы optimistic оставался не ниже conservative.
type FixedPercent struct {
	P float64
}

// NewFixedPercent создает политику фиксированного процента
func NewFixedPercent(p float64) (FixedPercent, error) {
	band := FixedPercent{P: p}
	if err := band.Validate(); err != nil {
		return FixedPercent{}, err
	}
	return band, nil
}

func (b FixedPercent) Name() string { return BandFixed }

func (b FixedPercent) Validate() error {
	if math.IsNaN(b.P) || math.IsInf(b.P, 0) || b.P < 0 {
		return fmt.Errorf("%w: процент должен быть неотрицательным числом, получено: %v", ErrInvalidBand, b.P)
	}
	return nil
}

// HalfWidth берет модуль точки, чтобы верхняя граница оставалась выше нижней
// и для отрицательных прогнозов
func (b FixedPercent) HalfWidth(_ *FitResult, point float64) float64 {
	return math.Abs(point) * b.P
}

// ParsePercent читает ширину полосы fixed: "0.1" доля, "10%" проценты.
// Число без знака % всегда трактуется как доля (1 означает ±100%).
func ParsePercent(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	scale := 1.0
	if trimmed, ok := strings.CutSuffix(s, "%"); ok {
		s = strings.TrimSpace(trimmed)
		scale = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: ширина полосы %q не является числом", ErrInvalidBand, raw)
	}
	return v / scale, nil
}

// ParseBandPolicy создает политику по названию ("residual" или "fixed")
func ParseBandPolicy(name string, percent float64) (BandPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BandResidual:
		return ResidualNormal95{}, nil
	case BandFixed:
		return NewFixedPercent(percent)
	default:
		return nil, fmt.Errorf("%w: неизвестная политика %q (доступны: %s, %s)",
			ErrInvalidBand, name, BandResidual, BandFixed)
	}
}
