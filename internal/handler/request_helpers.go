package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it. If
// it returns an error the response has already been written and the handler
// should return.
//
// Example usage:
//
//	var req PositionRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Plant"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, LogFieldAction, actionName, LogFieldError, err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, LogFieldAction, actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// GetIntQueryParam reads a required integer query parameter. If ok is false
// the response has already been written.
func GetIntQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (int, bool) {
	log := logger.FromContext(r.Context())
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		log.Debug(LogMsgMissingQueryParam, LogFieldParam, paramName)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Debug(LogMsgInvalidQueryParam, LogFieldParam, paramName, LogFieldError, err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, paramName))
		return 0, false
	}
	return value, true
}

// GetOptionalIntQueryParam reads an optional integer query parameter. A
// malformed value is reported like a missing required one.
func GetOptionalIntQueryParam(r *http.Request, w http.ResponseWriter, paramName string, defaultValue int) (int, bool) {
	if r.URL.Query().Get(paramName) == "" {
		return defaultValue, true
	}
	return GetIntQueryParam(r, w, paramName)
}
