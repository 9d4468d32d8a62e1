// routes/api_routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/marketing_dashboard/cache"
	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/middleware"
	"github.com/LilVoxy/marketing_dashboard/utils"
	"github.com/LilVoxy/marketing_dashboard/websocket"
)

// Dependencies зависимости обработчиков API
type Dependencies struct {
	Logger   *utils.Logger
	Builder  *dashboard.Builder
	Cache    *cache.SnapshotCache
	Manager  *websocket.Manager
	// Refresh строит снимок, если кэш пуст; может быть nil
	Refresh func() error
}

// SetupRoutes настраивает все маршруты API и WebSocket
func SetupRoutes(router *mux.Router, deps Dependencies) {
	// Применяем CORS middleware
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestLogger(deps.Logger))

	// WebSocket симулятора
	if deps.Manager != nil {
		router.HandleFunc("/ws/simulator", deps.Manager.HandleConnections)
	}

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", HealthHandler(deps)).Methods("GET", "OPTIONS")

	// Данные и описательная статистика
	api.HandleFunc("/dataset", DatasetHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/kpis", KPIsHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/summary", SummaryHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/benchmarks", BenchmarksHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/funnel", FunnelHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/correlation", CorrelationHandler(deps)).Methods("GET", "OPTIONS")

	// Прогнозы
	api.HandleFunc("/forecasts", ForecastsHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/forecasts/{kpi}", ForecastHandler(deps)).Methods("GET", "OPTIONS")

	// Партнерская программа
	api.HandleFunc("/partnership", PartnershipHandler(deps)).Methods("GET", "OPTIONS")
	api.HandleFunc("/partnership/simulate", SimulateHandler(deps)).Methods("GET", "OPTIONS")

	// Полный снимок дашборда из кэша
	api.HandleFunc("/dashboard", SnapshotHandler(deps)).Methods("GET", "OPTIONS")
}

// NewRouter создает маршрутизатор со всеми маршрутами
func NewRouter(deps Dependencies) http.Handler {
	router := mux.NewRouter()
	SetupRoutes(router, deps)
	return router
}
