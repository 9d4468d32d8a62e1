// routes/partnership_handlers.go
package routes

import (
	"net/http"

	"github.com/LilVoxy/marketing_dashboard/partnership"
)

// PartnershipHandler возвращает экономику партнерской программы по выбранным месяцам
func PartnershipHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		baseline, err := deps.Builder.Partnership(parseList(r.URL.Query(), "months"))
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		writeJSON(w, deps.Logger, http.StatusOK, baseline)
	}
}

// SimulateHandler моделирует поток привлеченных партнерами клиентов.
// Параметр months здесь задает длительность симуляции, базовая модель строится по всей истории.
func SimulateHandler(deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		clients, err := parseInt(query, "clients", partnership.DefaultClients)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}
		months, err := parseInt(query, "months", partnership.DefaultMonths)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}

		baseline, err := deps.Builder.Partnership(nil)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}

		sim, err := baseline.Simulate(clients, months)
		if err != nil {
			writeError(w, deps.Logger, err)
			return
		}

		deps.Logger.Debug("✅ Симуляция %s: %d клиентов/мес., %d мес.", sim.ID, clients, months)
		writeJSON(w, deps.Logger, http.StatusOK, sim)
	}
}
