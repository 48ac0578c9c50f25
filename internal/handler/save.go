package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
)

// Saver writes the ledger immediately. SaveNow runs on the update loop.
type Saver interface {
	SaveNow(ctx context.Context) error
}

// SaveHandler serves manual saves
type SaveHandler struct {
	saver      Saver
	dispatcher scheduler.Dispatcher
}

// NewSaveHandler creates a new save handler
func NewSaveHandler(saver Saver, dispatcher scheduler.Dispatcher) *SaveHandler {
	return &SaveHandler{saver: saver, dispatcher: dispatcher}
}

// HandleSave writes the ledger now instead of waiting for the autosave
func (h *SaveHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var saveErr error
	if err := h.dispatcher.Do(r.Context(), func() { saveErr = h.saver.SaveNow(r.Context()) }); err != nil {
		log.Warn(LogMsgDispatchFailed, LogFieldError, err)
		respondError(w, http.StatusServiceUnavailable, ErrMsgUnavailableError)
		return
	}
	if saveErr != nil {
		log.Error(LogMsgSaveFailed, LogFieldError, saveErr)
		respondError(w, http.StatusInternalServerError, ErrMsgSaveFailed)
		return
	}
	respondJSON(w, http.StatusOK, CommandResponse{Success: true, Message: MsgSaved})
}
