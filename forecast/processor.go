package forecast

import (
	"fmt"
	"time"

	"github.com/LilVoxy/marketing_dashboard/utils"
)

// Config конфигурация процессора прогнозирования
type Config struct {
	// Количество периодов для прогноза
	Horizon int
	// Политика доверительной полосы
	Band BandPolicy
	// Минимальное значение R² для признания модели значимой
	MinR2Threshold float64
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		Horizon:        3,
		Band:           ResidualNormal95{},
		MinR2Threshold: R2ModerateThreshold,
	}
}

// Result полный результат прогнозирования одного ряда
type Result struct {
	Fit        *FitResult     `json:"fit"`
	Forecast   *Forecast      `json:"forecast"`
	Quality    QualityMetrics `json:"quality"`
	Assessment Assessment     `json:"assessment"`
}

// Run строит модель, прогноз и метрики качества для одного ряда
func Run(series Series, horizon int, band BandPolicy) (*Result, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	fit, err := Fit(series)
	if err != nil {
		return nil, err
	}

	projection, err := Project(fit, series, horizon, band)
	if err != nil {
		return nil, err
	}

	quality, err := Quality(fit, series)
	if err != nil {
		return nil, err
	}

	return &Result{
		Fit:        fit,
		Forecast:   projection,
		Quality:    quality,
		Assessment: Assess(quality),
	}, nil
}

// Processor процессор прогнозирования KPI
type Processor struct {
	logger *utils.Logger
	config Config
}

// NewProcessor создает новый процессор прогнозирования
func NewProcessor(logger *utils.Logger, config Config) *Processor {
	if config.Band == nil {
		config.Band = ResidualNormal95{}
	}
	return &Processor{
		logger: logger,
		config: config,
	}
}

// Config возвращает конфигурацию процессора
func (p *Processor) Config() Config {
	return p.config
}

// Process выполняет прогноз ряда name с параметрами из конфигурации
func (p *Processor) Process(name string, series Series) (*Result, error) {
	return p.ProcessWith(name, series, p.config.Horizon, p.config.Band)
}

// ProcessWith выполняет прогноз с явно заданными горизонтом и политикой полосы
func (p *Processor) ProcessWith(name string, series Series, horizon int, band BandPolicy) (*Result, error) {
	startTime := time.Now()
	p.logger.Debug("Построение модели для %s: %d точек, горизонт %d", name, len(series), horizon)

	result, err := Run(series, horizon, band)
	if err != nil {
		return nil, fmt.Errorf("ошибка при прогнозировании %s: %w", name, err)
	}

	p.logger.Debug("Результаты модели %s: наклон=%.3f, сдвиг=%.3f, R²=%.3f, RMSE=%.3f, tau=%.3f",
		name, result.Fit.Slope, result.Fit.Intercept, result.Quality.R2, result.Quality.RMSE, result.Quality.Trend.Tau)

	// Если модель недостаточно хороша, логируем предупреждение
	if result.Quality.R2Defined && result.Quality.R2 < p.config.MinR2Threshold {
		p.logger.Info("Низкое качество модели %s (R²=%.3f < %.3f). Однако прогноз будет сделан.",
			name, result.Quality.R2, p.config.MinR2Threshold)
	}

	p.logger.Debug("Прогноз %s построен за %v", name, time.Since(startTime))
	return result, nil
}
