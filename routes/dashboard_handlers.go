// routes/dashboard_handlers.go
package routes

import (
	"errors"
	"net/http"

	"github.com/LilVoxy/marketing_dashboard/cache"
	"github.com/LilVoxy/marketing_dashboard/dataset"
)

// HealthResponse ответ проверки состояния
type HealthResponse struct {
	Status  string       `json:"status"`
	Clients int          `json:"clients"`
	Cache   *cache.Stats `json:"cache,omitempty"`
}

// DatasetResponse строки таблицы показателей
type DatasetResponse struct {
	Months []string      `json:"months"`
	Rows   []dataset.Row `json:"rows"`
}

// HealthHandler сообщает о состоянии сервиса
func HealthHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}
		if deps.Manager != nil {
			resp.Clients = deps.Manager.ClientCount()
		}
		if deps.Cache != nil {
			stats := deps.Cache.Stats()
			resp.Cache = &stats
		}
		writeJSON(w, deps.Logger, http.StatusOK, resp)
	}
}

// DatasetHandler возвращает строки таблицы за выбранные месяцы
func DatasetHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := filteredTable(r.URL.Query(), deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		writeJSON(w, deps.Logger, http.StatusOK, DatasetResponse{Months: table.Months(), Rows: table.Rows()})
	}
}

// KPIsHandler возвращает каталог показателей
func KPIsHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, deps.Logger, http.StatusOK, dataset.Catalog())
	}
}

// SummaryHandler возвращает карточки основных показателей
func SummaryHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := filteredTable(r.URL.Query(), deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		cards, err := dataset.Cards(table)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		writeJSON(w, deps.Logger, http.StatusOK, cards)
	}
}

// BenchmarksHandler сравнивает показатели с отраслевыми бенчмарками
func BenchmarksHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := filteredTable(r.URL.Query(), deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		comparisons, err := dataset.CompareBenchmarks(table)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		writeJSON(w, deps.Logger, http.StatusOK, comparisons)
	}
}

// FunnelHandler возвращает воронку за последний выбранный месяц
func FunnelHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table, err := filteredTable(r.URL.Query(), deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		funnel, err := dataset.BuildFunnel(table)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		writeJSON(w, deps.Logger, http.StatusOK, funnel)
	}
}

// CorrelationHandler возвращает матрицу корреляций выбранных показателей
func CorrelationHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		table, err := filteredTable(query, deps.Builder)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		keys := parseList(query, "kpis")
		if len(keys) == 0 {
			keys = deps.Builder.Config().KPIs
		}
		matrix, err := dataset.Correlation(table, keys)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		writeJSON(w, deps.Logger, http.StatusOK, matrix)
	}
}

// SnapshotHandler отдает последний снимок дашборда из кэша
func SnapshotHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, raw, err := deps.Cache.Get()
		if errors.Is(err, cache.ErrEmpty) && deps.Refresh != nil {
			if refreshErr := deps.Refresh(); refreshErr != nil {
				writeError(w, deps.Logger, refreshErr)
				return
			}
			id, raw, err = deps.Cache.Get()
		}
		if errors.Is(err, cache.ErrEmpty) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Snapshot-ID", id)
		if _, err := w.Write(raw); err != nil {
			deps.Logger.Error("❌ Ошибка при отправке снимка %s: %v", id, err)
		}
	}
}
