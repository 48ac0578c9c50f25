package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	t.Run("bodies do not leak between responses", func(t *testing.T) {
		rr := httptest.NewRecorder()
		respondJSON(rr, http.StatusOK, ErrorResponse{Error: strings.Repeat("x", 2*maxPooledBody)})
		require.Equal(t, http.StatusOK, rr.Code)

		for range 3 {
			rr = httptest.NewRecorder()
			respondError(rr, http.StatusNotFound, ErrMsgCellEmpty)
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, `{"error":"Nothing is planted there"}`+"\n", rr.Body.String())
		}
	})

	t.Run("encode failure becomes a 500", func(t *testing.T) {
		rr := httptest.NewRecorder()
		respondJSON(rr, http.StatusOK, map[string]any{"bad": make(chan int)})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), ErrMsgGenericServerError)
	})

	t.Run("oversized buffers are not pooled", func(t *testing.T) {
		body := &responseBody{}
		body.buf.Grow(2 * maxPooledBody)
		body.buf.WriteString("stale")
		releaseBody(body)
		assert.Equal(t, "stale", body.buf.String())
	})
}
