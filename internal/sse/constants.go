package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 256

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 64
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Stream-only event types
const (
	// EventTypeConnected is the first event every client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Query parameter holding a comma separated event type filter
const QueryParamTypes = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgClientLagging      = "SSE client buffer full, event skipped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgUnknownFilter      = "SSE filter names an unknown event type"
	LogMsgBridgeRegistered   = "SSE bridge subscribed to event bus"
	LogMsgHubStopped         = "SSE hub stopped"
)

// Log field keys
const (
	LogFieldClientID     = "client_id"
	LogFieldFilters      = "filters"
	LogFieldTotalClients = "total_clients"
	LogFieldEventType    = "event_type"
	LogFieldError        = "error"
)

// HTTP error messages
const (
	ErrMsgStreamingUnsupported = "SSE not supported"
	ErrMsgUnknownEventType     = "unknown event type: "
	ErrMsgHubStopped           = "event stream unavailable"
)
