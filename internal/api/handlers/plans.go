package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"relief-airlift-service/internal/api/dto"
	"relief-airlift-service/internal/platform/metrics"
	"relief-airlift-service/internal/ports"
	"relief-airlift-service/internal/services"
)

type PlanHandler struct {
	Repo            ports.ScenarioRepository
	Solver          ports.LinearSolver
	Cache           ports.PlanCache
	DefaultScenario string
}

// Plan runs one full planning pass: load scenario, build the LP, solve,
// extract. Infeasibility is a legitimate outcome and is returned as a plan
// with status "infeasible"; only construction and solver failures map to
// error responses.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	scenario := strings.TrimSpace(req.Scenario)
	if scenario == "" {
		scenario = strings.TrimSpace(h.DefaultScenario)
	}
	if scenario == "" {
		writeError(w, r, http.StatusBadRequest, "scenario is required")
		return
	}

	start := time.Now()
	plan, err := services.PlanMissions(
		r.Context(),
		services.PlanMissionsRequest{Scenario: scenario},
		h.Repo, h.Solver, h.Cache,
	)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrScenarioNotFound):
			writeError(w, r, http.StatusNotFound, "scenario not found")
		case errors.Is(err, services.ErrInvalidScenario):
			writeError(w, r, http.StatusUnprocessableEntity, "scenario data is invalid")
		default:
			log.Printf("plan missions failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	metrics.Solves.WithLabelValues(scenario, string(plan.Status)).Inc()
	metrics.SolveDuration.WithLabelValues(scenario).Observe(time.Since(start).Seconds())

	res := dto.PlanResponse{
		PlanID:     plan.PlanID,
		Scenario:   plan.Scenario,
		Status:     string(plan.Status),
		TotalCost:  plan.TotalCost,
		Objective:  plan.Objective,
		Warnings:   plan.Warnings,
		Deliveries: make([]dto.DeliveryResponse, 0, len(plan.Deliveries)),
	}
	for _, d := range plan.Deliveries {
		res.Deliveries = append(res.Deliveries, dto.DeliveryResponse{
			DroneID:  d.DroneID,
			DepotID:  d.DepotID,
			DestID:   d.DestID,
			Quantity: d.Quantity,
			UnitCost: d.UnitCost,
			Cost:     d.Cost,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
