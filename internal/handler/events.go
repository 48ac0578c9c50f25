package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/eventlog"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// RecentEventsResponse lists journaled events, newest first
type RecentEventsResponse struct {
	Events []eventlog.Entry `json:"events"`
}

// EventLogHandler serves the recent event journal
type EventLogHandler struct {
	journal eventlog.Service
}

// NewEventLogHandler creates a new event journal handler
func NewEventLogHandler(journal eventlog.Service) *EventLogHandler {
	return &EventLogHandler{journal: journal}
}

// HandleRecent returns recent events. Optional "limit" caps the count and
// "types" is a comma separated list of event types.
func (h *EventLogHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit, ok := GetOptionalIntQueryParam(r, w, QueryParamLimit, eventlog.DefaultQueryLimit)
	if !ok {
		return
	}
	if limit < 0 {
		respondError(w, http.StatusBadRequest, ErrMsgNegativeLimit)
		return
	}

	types, unknown := event.ParseTypeList(r.URL.Query().Get(QueryParamTypes))
	if unknown != "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgUnknownEventType, unknown))
		return
	}

	entries, err := h.journal.Recent(r.Context(), eventlog.EventFilter{EventTypes: types, Limit: limit})
	if err != nil {
		log.Error(LogMsgJournalReadFailed, LogFieldError, err)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return
	}
	respondJSON(w, http.StatusOK, RecentEventsResponse{Events: entries})
}
