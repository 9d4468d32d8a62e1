package dashboard

import (
	"time"

	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
	"github.com/LilVoxy/marketing_dashboard/partnership"
)

// KPIForecast прогноз одного показателя в виде, готовом для отображения.
// При ошибке заполняются только KPI, история и Error.
type KPIForecast struct {
	KPI           dataset.KPI `json:"kpi"`
	HistoryLabels []string    `json:"historyLabels"`
	History       []float64   `json:"history"`
	Fitted        []float64   `json:"fitted,omitempty"`

	Labels       []string  `json:"labels,omitempty"`
	Point        []float64 `json:"point,omitempty"`
	Optimistic   []float64 `json:"optimistic,omitempty"`
	Conservative []float64 `json:"conservative,omitempty"`
	Band         string    `json:"band,omitempty"`

	Slope      float64                  `json:"slope"`
	Intercept  float64                  `json:"intercept"`
	Quality    *forecast.QualityMetrics `json:"quality,omitempty"`
	Assessment *forecast.Assessment     `json:"assessment,omitempty"`

	Error string `json:"error,omitempty"`
}

// Failed сообщает, что прогноз построить не удалось
func (f KPIForecast) Failed() bool {
	return f.Error != ""
}

// Snapshot полное состояние дашборда на момент построения
type Snapshot struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generatedAt"`
	Months      []string  `json:"months"`
	Horizon     int       `json:"horizon"`
	Band        string    `json:"band"`

	Cards       []dataset.Card                `json:"cards"`
	Benchmarks  []dataset.BenchmarkComparison `json:"benchmarks"`
	Funnel      dataset.Funnel                `json:"funnel"`
	Forecasts   []KPIForecast                 `json:"forecasts"`
	Correlation dataset.CorrelationMatrix     `json:"correlation"`

	Partnership      *partnership.Baseline `json:"partnership,omitempty"`
	PartnershipError string                `json:"partnershipError,omitempty"`
}

// Options параметры построения дашборда
type Options struct {
	// Months фильтр месяцев; пустой означает все
	Months  []string
	KPIs    []string
	Horizon int
	Band    forecast.BandPolicy
}
