// routes/forecast_handlers.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/dataset"
)

// ForecastsResponse ответ API со всеми прогнозами
type ForecastsResponse struct {
	Horizon   int                     `json:"horizon"`
	Band      string                  `json:"band"`
	Forecasts []dashboard.KPIForecast `json:"forecasts"`
}

// ForecastsHandler строит прогнозы всех настроенных показателей.
// Ошибка отдельного показателя возвращается в его поле error.
func ForecastsHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := forecastOptions(r.URL.Query(), deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}

		forecasts := deps.Builder.Forecasts(opts)

		failed := 0
		for _, f := range forecasts {
			if f.Failed() {
				failed++
			}
		}
		if failed > 0 {
			deps.Logger.Info("⚠️ Прогнозы построены частично: %d из %d с ошибкой", failed, len(forecasts))
		}

		writeJSON(w, deps.Logger, http.StatusOK, ForecastsResponse{
			Horizon:   opts.Horizon,
			Band:      opts.Band.Name(),
			Forecasts: forecasts,
		})
	}
}

// ForecastHandler строит прогноз одного показателя
func ForecastHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["kpi"]
		if _, err := dataset.Lookup(key); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		opts, err := forecastOptions(r.URL.Query(), deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}

		writeJSON(w, deps.Logger, http.StatusOK, deps.Builder.ForecastKPI(key, opts))
	}
}
