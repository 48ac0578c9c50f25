package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/osse101/PetalGarden_Go/internal/cooldown"
	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// CommandResponse is returned by every grid command
type CommandResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Plant   *domain.PlantView    `json:"plant,omitempty"`
	Reward  *domain.RewardResult `json:"reward,omitempty"`
}

// responseBody pairs a reusable buffer with an encoder writing into it
type responseBody struct {
	buf bytes.Buffer
	enc *json.Encoder
}

// Snapshots of a large grid can grow the buffer well past the usual response
// size; such buffers are not returned to the pool.
const maxPooledBody = 64 << 10

var responseBodies = sync.Pool{
	New: func() any {
		b := &responseBody{}
		b.buf.Grow(1024)
		b.enc = json.NewEncoder(&b.buf)
		return b
	},
}

func releaseBody(b *responseBody) {
	if b.buf.Cap() > maxPooledBody {
		return
	}
	b.buf.Reset()
	responseBodies.Put(b)
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	body := responseBodies.Get().(*responseBody)
	defer releaseBody(body)

	// Encode first so a failure can still become a 500
	if err := body.enc.Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, LogFieldError, err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := body.buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, LogFieldError, err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondRejected sends a failed CommandResponse for a rejected grid command
func respondRejected(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)

	var onCooldown cooldown.ErrOnCooldown
	if errors.As(err, &onCooldown) {
		secs := int(math.Ceil(onCooldown.Remaining.Seconds()))
		w.Header().Set(HeaderRetryAfter, strconv.Itoa(max(secs, 1)))
	}
	respondJSON(w, status, CommandResponse{Success: false, Message: msg})
}

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on. Game-state rejections are conflicts; the
// cooldown is rate limiting.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, cooldown.ErrOnCooldown{}), errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldown
	case errors.Is(err, domain.ErrInvalidPosition):
		return http.StatusBadRequest, ErrMsgInvalidPosition
	case errors.Is(err, domain.ErrCellOccupied):
		return http.StatusConflict, ErrMsgCellOccupied
	case errors.Is(err, domain.ErrCellEmpty):
		return http.StatusConflict, ErrMsgCellEmpty
	case errors.Is(err, domain.ErrSoilUnsuitable):
		return http.StatusConflict, ErrMsgSoilUnsuitable
	case errors.Is(err, domain.ErrNotHarvestable):
		return http.StatusConflict, ErrMsgNotHarvestable
	case errors.Is(err, domain.ErrNotWithered):
		return http.StatusConflict, ErrMsgNotWithered
	case errors.Is(err, domain.ErrNotWaitingForWater):
		return http.StatusConflict, ErrMsgNotWaiting
	case errors.Is(err, domain.ErrNoPlantDefinitions):
		return http.StatusConflict, ErrMsgNoPlantDefinitions
	case errors.Is(err, domain.ErrDisposed):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
