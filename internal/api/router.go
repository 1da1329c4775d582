package api

import (
	"net/http"

	"relief-airlift-service/internal/api/handlers"
	"relief-airlift-service/internal/platform/metrics"
	"relief-airlift-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	repo ports.ScenarioRepository,
	solver ports.LinearSolver,
	cache ports.PlanCache,
	defaultScenario string,
) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	scenarioHandler := &handlers.ScenarioHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:            repo,
		Solver:          solver,
		Cache:           cache,
		DefaultScenario: defaultScenario,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/scenarios", scenarioHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
