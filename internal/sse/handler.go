package sse

import (
	"net/http"
	"time"

	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Handler returns an HTTP handler for SSE connections. The optional "types"
// query parameter restricts the stream to the listed event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		eventTypes, unknown := event.ParseTypeList(r.URL.Query().Get(QueryParamTypes))
		if unknown != "" {
			log.Debug(LogMsgUnknownFilter, LogFieldEventType, unknown)
			http.Error(w, ErrMsgUnknownEventType+unknown, http.StatusBadRequest)
			return
		}

		client := hub.Register(eventTypes)
		if client == nil {
			http.Error(w, ErrMsgHubStopped, http.StatusServiceUnavailable)
			return
		}
		log.Info(LogMsgClientConnected,
			LogFieldClientID, client.ID,
			LogFieldFilters, eventTypes,
			LogFieldTotalClients, hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected,
				LogFieldClientID, client.ID,
				LogFieldTotalClients, hub.ClientCount())
		}()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		write := func(e Event) bool {
			msg, err := FormatSSEMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, LogFieldError, err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, LogFieldError, err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !write(Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, Filters: eventTypes},
		}) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case e, ok := <-client.EventChannel:
				if !ok {
					// Hub is shutting down
					return
				}
				if !write(e) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}
