package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/forecast"
	"github.com/LilVoxy/marketing_dashboard/output"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Построить прогноз показателей",
	Long: `Строит линейный тренд по каждому показателю и продлевает его на горизонт.
Ошибка одного показателя не останавливает прогноз остальных.`,
	Example: `  dashboard forecast
  dashboard forecast --horizon 6 --kpi leads,roi
  dashboard forecast --band fixed --percent 15% --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		builder, err := newBuilder()
		if err != nil {
			return err
		}

		opts, err := forecastOptionsFromFlags(cmd, builder.DefaultOptions())
		if err != nil {
			return err
		}

		forecasts := builder.Forecasts(opts)

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(forecasts)
		}
		return printForecasts(newPrinter(cmd), opts, forecasts)
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().Int("horizon", 0, "количество периодов прогноза (по умолчанию из конфигурации)")
	forecastCmd.Flags().String("band", "", "политика полосы: residual или fixed")
	forecastCmd.Flags().String("percent", "0.10", "ширина полосы fixed: доля (0.1) или проценты со знаком % (10%)")
	forecastCmd.Flags().StringSlice("kpi", nil, "показатели для прогноза")
	forecastCmd.Flags().Bool("json", false, "вывод в JSON")
}

// forecastOptionsFromFlags применяет флаги команды поверх настроек по умолчанию
func forecastOptionsFromFlags(cmd *cobra.Command, opts dashboard.Options) (dashboard.Options, error) {
	flags := cmd.Flags()

	if flags.Changed("horizon") {
		horizon, _ := flags.GetInt("horizon")
		if horizon < 0 {
			return opts, fmt.Errorf("%w: %d", forecast.ErrInvalidHorizon, horizon)
		}
		opts.Horizon = horizon
	}

	if flags.Changed("band") || flags.Changed("percent") {
		name, _ := flags.GetString("band")
		rawPercent, _ := flags.GetString("percent")
		percent, err := forecast.ParsePercent(rawPercent)
		if err != nil {
			return opts, err
		}
		if name == "" && flags.Changed("percent") {
			name = forecast.BandFixed
		}
		band, err := forecast.ParseBandPolicy(name, percent)
		if err != nil {
			return opts, err
		}
		opts.Band = band
	}

	if kpis, _ := flags.GetStringSlice("kpi"); len(kpis) > 0 {
		opts.KPIs = kpis
	}
	return opts, nil
}

func printForecasts(p *output.Printer, opts dashboard.Options, forecasts []dashboard.KPIForecast) error {
	p.Header(fmt.Sprintf("Прогноз на %d период(а), полоса %s", opts.Horizon, opts.Band.Name()))

	points := output.NewTable(p.Writer(), []string{"kpi", "period", "conservative", "point", "optimistic"})
	quality := output.NewTable(p.Writer(), []string{"kpi", "r2", "rmse", "mape", "tau", "p", "fit", "error", "trend"})

	var failed []string
	for _, f := range forecasts {
		if f.Failed() {
			failed = append(failed, f.Error)
			continue
		}
		for i, label := range f.Labels {
			points.AddRow(f.KPI.Name, label,
				output.Number(f.Conservative[i]), output.Number(f.Point[i]), output.Number(f.Optimistic[i]))
		}

		q, a := f.Quality, f.Assessment
		quality.AddRow(f.KPI.Name,
			definedNumber(q.R2, q.R2Defined),
			output.Number(q.RMSE),
			definedNumber(q.MAPE, q.MAPEDefined),
			definedNumber(q.Trend.Tau, q.Trend.Defined),
			definedNumber(q.Trend.PValue, q.Trend.Defined),
			p.Badge(a.Fit), p.Badge(a.Error), p.Badge(a.Trend))
	}

	if points.Len() > 0 {
		if err := points.Render(); err != nil {
			return err
		}
	}

	if quality.Len() > 0 {
		p.Header("Качество модели")
		if err := quality.Render(); err != nil {
			return err
		}
	}

	for _, msg := range failed {
		p.Warning("%s", msg)
	}
	if len(failed) == 0 {
		p.Success("Прогноз построен для %d показателей", len(forecasts))
	}
	return nil
}

func definedNumber(v float64, defined bool) string {
	if !defined {
		return forecast.Undefined
	}
	return output.Number(v)
}
