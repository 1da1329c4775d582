package handlers

import (
	"log"
	"net/http"

	"relief-airlift-service/internal/api/dto"
	"relief-airlift-service/internal/ports"
)

type ScenarioHandler struct {
	Repo ports.ScenarioRepository
}

// List returns the names of all stored scenarios.
func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	names, err := h.Repo.ListScenarios(r.Context())
	if err != nil {
		log.Printf("list scenarios failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ScenarioListResponse{Scenarios: names})
}
