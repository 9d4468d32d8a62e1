// routes/respond.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/forecast"
	"github.com/LilVoxy/marketing_dashboard/partnership"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

// errBadParameter некорректный параметр запроса
var errBadParameter = errors.New("некорректный параметр запроса")

// writeJSON кодирует ответ в JSON
func writeJSON(w http.ResponseWriter, logger *utils.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ Ошибка при кодировании JSON: %v", err)
	}
}

// statusFor сопоставляет ошибку коду ответа
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadParameter),
		errors.Is(err, dataset.ErrNoMonthsSelected),
		errors.Is(err, dataset.ErrUnknownKPI),
		errors.Is(err, forecast.ErrInvalidBand),
		errors.Is(err, forecast.ErrInvalidHorizon),
		errors.Is(err, partnership.ErrInvalidParameters):
		return http.StatusBadRequest
	case errors.Is(err, partnership.ErrInvalidBaseline):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError отправляет ошибку и пишет ее в журнал
func writeError(w http.ResponseWriter, logger *utils.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("❌ %v", err)
	} else {
		logger.Debug("⚠️ %v", err)
	}
	http.Error(w, err.Error(), status)
}
