package forecast

import (
	"errors"
)

// MinPoints минимальное количество наблюдений для построения линии тренда
const MinPoints = 2

var (
	// ErrInsufficientData ряд короче минимально допустимого
	ErrInsufficientData = errors.New("недостаточно данных для построения регрессии")
	// ErrEmptySeries передан пустой ряд
	ErrEmptySeries = errors.New("пустой временной ряд")
	// ErrInvalidHorizon отрицательный горизонт прогноза
	ErrInvalidHorizon = errors.New("некорректный горизонт прогноза")
	// ErrInvalidBand некорректные параметры доверительной полосы
	ErrInvalidBand = errors.New("некорректные параметры доверительной полосы")
	// ErrFitMismatch модель построена не по переданному ряду
	ErrFitMismatch = errors.New("модель не соответствует временному ряду")
)

// Series упорядоченный ряд наблюдений, по одному на период.
// Периоды неявно пронумерованы 0..n-1.
type Series []float64

// FitResult содержит результаты линейной регрессии y = a + b*x по x = 0..n-1
type FitResult struct {
	Intercept      float64   `json:"intercept"`      // Сдвиг (a)
	Slope          float64   `json:"slope"`          // Коэффициент наклона (b)
	N              int       `json:"n"`              // Количество исходных точек
	Fitted         []float64 `json:"fitted"`         // Значения линии тренда на истории
	Residuals      []float64 `json:"residuals"`      // Наблюдение минус значение тренда
	ResidualStdDev float64   `json:"residualStdDev"` // Стандартное отклонение остатков (генеральное)
}

// ForecastPoint представляет точку прогноза
type ForecastPoint struct {
	Period       int     `json:"period"`       // Индекс периода (n..n+h-1)
	Value        float64 `json:"value"`        // Прогнозируемое значение
	Optimistic   float64 `json:"optimistic"`   // Верхняя граница
	Conservative float64 `json:"conservative"` // Нижняя граница
}

// Forecast прогноз на h периодов вперед
type Forecast struct {
	Band   string          `json:"band"`
	Points []ForecastPoint `json:"points"`
}

// Values возвращает точечные прогнозы
func (f *Forecast) Values() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.Value
	}
	return out
}

// Upper возвращает оптимистичный сценарий
func (f *Forecast) Upper() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.Optimistic
	}
	return out
}

// Lower возвращает консервативный сценарий
func (f *Forecast) Lower() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.Conservative
	}
	return out
}

// TrendTest результат теста Кендалла на монотонный тренд
type TrendTest struct {
	Tau     float64 `json:"tau"`
	PValue  float64 `json:"pValue"`
	Method  string  `json:"method"`  // "exact" или "asymptotic"
	Defined bool    `json:"defined"` // false для постоянного ряда или n < 2
}

// QualityMetrics метрики качества модели на исторических данных
type QualityMetrics struct {
	R2             float64   `json:"r2"`
	R2Defined      bool      `json:"r2Defined"` // false при нулевой дисперсии ряда
	RMSE           float64   `json:"rmse"`
	MAPE           float64   `json:"mape"`
	MAPEDefined    bool      `json:"mapeDefined"` // false если все наблюдения равны нулю
	MAPESkipped    int       `json:"mapeSkipped"` // Сколько слагаемых пропущено из-за нулевых наблюдений
	ResidualStdDev float64   `json:"residualStdDev"`
	Trend          TrendTest `json:"trend"`
}
