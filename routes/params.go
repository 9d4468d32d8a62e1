// routes/params.go
package routes

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
)

// Максимальный горизонт прогноза, принимаемый API
const maxHorizon = 24

// parseList читает параметр-список: повторяющийся (?months=a&months=b) или через запятую
func parseList(query url.Values, name string) []string {
	var out []string
	for _, raw := range query[name] {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// parseInt читает целый параметр; при отсутствии возвращает def
func parseInt(query url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q не является целым числом", errBadParameter, name, raw)
	}
	return v, nil
}

// parseBand читает параметры band и percent.
// percent задается долей (0.1) или процентами со знаком % (10%25 в URL).
func parseBand(query url.Values, def forecast.BandPolicy) (forecast.BandPolicy, error) {
	name := strings.TrimSpace(query.Get("band"))
	rawPercent := strings.TrimSpace(query.Get("percent"))
	if name == "" && rawPercent == "" {
		return def, nil
	}

	percent := 0.10
	if rawPercent != "" {
		v, err := forecast.ParsePercent(rawPercent)
		if err != nil {
			return nil, err
		}
		percent = v
		if name == "" {
			name = forecast.BandFixed
		}
	}
	return forecast.ParseBandPolicy(name, percent)
}

// forecastOptions собирает параметры прогноза из запроса поверх настроек построителя
func forecastOptions(query url.Values, builder *dashboard.Builder) (dashboard.Options, error) {
	opts := builder.DefaultOptions()

	horizon, err := parseInt(query, "horizon", opts.Horizon)
	if err != nil {
		return opts, err
	}
	if horizon < 0 || horizon > maxHorizon {
		return opts, fmt.Errorf("%w: горизонт %d вне диапазона 0..%d", forecast.ErrInvalidHorizon, horizon, maxHorizon)
	}
	opts.Horizon = horizon

	if opts.Band, err = parseBand(query, opts.Band); err != nil {
		return opts, err
	}

	if kpis := parseList(query, "kpis"); len(kpis) > 0 {
		for _, key := range kpis {
			if _, err := dataset.Lookup(key); err != nil {
				return opts, err
			}
		}
		opts.KPIs = kpis
	}

	opts.Months = parseList(query, "months")
	return opts, nil
}

// filteredTable возвращает таблицу, отфильтрованную по параметру months
func filteredTable(query url.Values, builder *dashboard.Builder) (*dataset.Table, error) {
	return builder.Table().Filter(parseList(query, "months"))
}
