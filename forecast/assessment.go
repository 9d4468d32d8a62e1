package forecast

// Пороговые значения для отображения качества модели
const (
	R2ExcellentThreshold = 0.8
	R2ModerateThreshold  = 0.6
	MAPELowThreshold     = 10.0
	MAPEModerateLimit    = 20.0
	TrendSignificance    = 0.05
)

// Метки качества модели
const (
	FitExcellent = "excellent"
	FitModerate  = "moderate"
	FitLow       = "low"

	ErrorLow      = "low error"
	ErrorModerate = "moderate"
	ErrorHigh     = "high"

	TrendUp             = "significant upward trend"
	TrendDown           = "significant downward trend"
	TrendNotSignificant = "not significant"

	Undefined = "undefined"
)

// Assessment качественная оценка метрик для бейджей на дашборде
type Assessment struct {
	Fit   string `json:"fit"`
	Error string `json:"error"`
	Trend string `json:"trend"`
}

// Assess переводит метрики в метки отображения
func Assess(m QualityMetrics) Assessment {
	a := Assessment{
		Fit:   Undefined,
		Error: Undefined,
		Trend: Undefined,
	}

	if m.R2Defined {
		switch {
		case m.R2 > R2ExcellentThreshold:
			a.Fit = FitExcellent
		case m.R2 > R2ModerateThreshold:
			a.Fit = FitModerate
		default:
			a.Fit = FitLow
		}
	}

	if m.MAPEDefined {
		switch {
		case m.MAPE < MAPELowThreshold:
			a.Error = ErrorLow
		case m.MAPE < MAPEModerateLimit:
			a.Error = ErrorModerate
		default:
			a.Error = ErrorHigh
		}
	}

	if m.Trend.Defined {
		switch {
		case m.Trend.PValue >= TrendSignificance:
			a.Trend = TrendNotSignificant
		case m.Trend.Tau > 0:
			a.Trend = TrendUp
		default:
			a.Trend = TrendDown
		}
	}

	return a
}
