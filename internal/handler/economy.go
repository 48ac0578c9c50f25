package handler

import (
	"net/http"

	"github.com/osse101/PetalGarden_Go/internal/economy"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
)

// EconomyHandler serves the coin and petal balances
type EconomyHandler struct {
	economy    economy.Service
	dispatcher scheduler.Dispatcher
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(econ economy.Service, dispatcher scheduler.Dispatcher) *EconomyHandler {
	return &EconomyHandler{economy: econ, dispatcher: dispatcher}
}

// HandleBalances returns the current ledger
func (h *EconomyHandler) HandleBalances(w http.ResponseWriter, r *http.Request) {
	var snap economy.Snapshot
	if err := h.dispatcher.Do(r.Context(), func() { snap = h.economy.Export() }); err != nil {
		respondError(w, http.StatusServiceUnavailable, ErrMsgUnavailableError)
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
