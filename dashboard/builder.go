package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
	"github.com/LilVoxy/marketing_dashboard/partnership"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

// Максимум одновременно строящихся прогнозов
const forecastWorkers = 4

// Config настройки построителя дашборда
type Config struct {
	KPIs        []string
	Forecast    forecast.Config
	Partnership partnership.Config
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		KPIs:        append([]string(nil), dataset.DefaultForecastKPIs...),
		Forecast:    forecast.DefaultConfig(),
		Partnership: partnership.DefaultConfig(),
	}
}

// Builder собирает дашборд из таблицы показателей
type Builder struct {
	logger    *utils.Logger
	table     *dataset.Table
	processor *forecast.Processor
	config    Config
}

// NewBuilder создает построитель дашборда
func NewBuilder(logger *utils.Logger, table *dataset.Table, config Config) *Builder {
	if len(config.KPIs) == 0 {
		config.KPIs = append([]string(nil), dataset.DefaultForecastKPIs...)
	}
	processor := forecast.NewProcessor(logger, config.Forecast)
	config.Forecast = processor.Config()

	return &Builder{
		logger:    logger,
		table:     table,
		processor: processor,
		config:    config,
	}
}

// Table возвращает исходную таблицу
func (b *Builder) Table() *dataset.Table {
	return b.table
}

// Config возвращает настройки построителя
func (b *Builder) Config() Config {
	return b.config
}

// DefaultOptions возвращает параметры построения из конфигурации
func (b *Builder) DefaultOptions() Options {
	return Options{
		KPIs:    append([]string(nil), b.config.KPIs...),
		Horizon: b.config.Forecast.Horizon,
		Band:    b.config.Forecast.Band,
	}
}

// Partnership рассчитывает партнерскую модель по выбранным месяцам
func (b *Builder) Partnership(months []string) (*partnership.Baseline, error) {
	table, err := b.table.Filter(months)
	if err != nil {
		return nil, err
	}
	return partnership.FromTable(b.config.Partnership, table)
}

// ForecastKPI строит прогноз одного показателя по полной таблице.
// Ошибка не прерывает работу, а возвращается в поле Error.
func (b *Builder) ForecastKPI(key string, opts Options) KPIForecast {
	out := KPIForecast{KPI: dataset.KPI{Key: key, Name: key}}

	kpi, err := dataset.Lookup(key)
	if err != nil {
		out.Error = unavailable(key, err)
		return out
	}
	out.KPI = kpi

	values, err := b.table.Column(key)
	if err != nil {
		out.Error = unavailable(kpi.Name, err)
		return out
	}
	months := b.table.Months()
	out.HistoryLabels = months
	out.History = values

	res, err := b.processor.ProcessWith(key, values, opts.Horizon, opts.Band)
	if err != nil {
		b.logger.Error("Прогноз %s не построен: %v", key, err)
		out.Error = unavailable(kpi.Name, err)
		return out
	}

	out.Fitted = roundAll(res.Fit.Fitted)
	out.Slope = forecast.RoundToThousandth(res.Fit.Slope)
	out.Intercept = forecast.RoundToThousandth(res.Fit.Intercept)
	out.Point = roundAll(res.Forecast.Values())
	out.Optimistic = roundAll(res.Forecast.Upper())
	out.Conservative = roundAll(res.Forecast.Lower())
	out.Band = res.Forecast.Band
	out.Labels = dataset.NextPeriodLabels(months[len(months)-1], len(res.Forecast.Points))

	quality := res.Quality
	assessment := res.Assessment
	out.Quality = &quality
	out.Assessment = &assessment

	return out
}

// Forecasts строит прогнозы всех показателей из opts.KPIs независимо друг от друга
func (b *Builder) Forecasts(opts Options) []KPIForecast {
	out := make([]KPIForecast, len(opts.KPIs))

	var g errgroup.Group
	g.SetLimit(forecastWorkers)
	for i, key := range opts.KPIs {
		g.Go(func() error {
			out[i] = b.ForecastKPI(key, opts)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Build собирает полный снимок дашборда. Прогнозы строятся по всей истории,
// остальные блоки по выбранным месяцам.
func (b *Builder) Build(opts Options) (*Snapshot, error) {
	startTime := time.Now()

	if opts.Band == nil {
		opts.Band = b.config.Forecast.Band
	}
	if len(opts.KPIs) == 0 {
		opts.KPIs = append([]string(nil), b.config.KPIs...)
	}

	table, err := b.table.Filter(opts.Months)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Months:      table.Months(),
		Horizon:     opts.Horizon,
		Band:        opts.Band.Name(),
	}

	if snapshot.Cards, err = dataset.Cards(table); err != nil {
		return nil, fmt.Errorf("ошибка при расчете карточек: %w", err)
	}
	if snapshot.Benchmarks, err = dataset.CompareBenchmarks(table); err != nil {
		return nil, fmt.Errorf("ошибка при сравнении с бенчмарками: %w", err)
	}
	if snapshot.Funnel, err = dataset.BuildFunnel(table); err != nil {
		return nil, fmt.Errorf("ошибка при построении воронки: %w", err)
	}

	snapshot.Forecasts = b.Forecasts(opts)

	if snapshot.Correlation, err = dataset.Correlation(table, knownKeys(opts.KPIs)); err != nil {
		return nil, fmt.Errorf("ошибка при расчете корреляций: %w", err)
	}

	baseline, err := partnership.FromTable(b.config.Partnership, table)
	if err != nil {
		b.logger.Error("Партнерская модель не рассчитана: %v", err)
		snapshot.PartnershipError = err.Error()
	} else {
		snapshot.Partnership = baseline
	}

	failed := 0
	for _, f := range snapshot.Forecasts {
		if f.Failed() {
			failed++
		}
	}
	b.logger.Info("Снимок дашборда %s построен за %v: месяцев %d, прогнозов %d (с ошибкой %d)",
		snapshot.ID, time.Since(startTime), len(snapshot.Months), len(snapshot.Forecasts), failed)

	return snapshot, nil
}

func unavailable(name string, err error) string {
	return fmt.Sprintf("прогноз недоступен для KPI %s: %v", name, err)
}

func knownKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		if _, err := dataset.Lookup(key); err == nil {
			out = append(out, key)
			seen[key] = true
		}
	}
	return out
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = forecast.RoundToThousandth(v)
	}
	return out
}
