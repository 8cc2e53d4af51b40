package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/query"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// response is the success envelope shared by all endpoints
type response struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Data       any               `json:"data"`
}

// errorResponse is the failure envelope shared by all endpoints
type errorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}

// RespondJSON sends a JSON response
func (h *BaseHandler) RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// RespondData sends a success envelope wrapping a single resource
func (h *BaseHandler) RespondData(w http.ResponseWriter, status int, data any) {
	h.RespondJSON(w, status, response{Success: true, Data: data})
}

// RespondList sends a success envelope wrapping a listing with its count and
// pagination descriptors
func (h *BaseHandler) RespondList(w http.ResponseWriter, count int, pagination *query.Pagination, data any) {
	h.RespondJSON(w, http.StatusOK, response{
		Success:    true,
		Count:      &count,
		Pagination: pagination,
		Data:       data,
	})
}

// RespondError sends a failure envelope with the given message
func (h *BaseHandler) RespondError(w http.ResponseWriter, status int, message string) {
	h.RespondJSON(w, status, errorResponse{Success: false, Error: message})
}

// RespondAppError translates a service error into its HTTP status.
// Unexpected errors are logged and masked as 500s.
func (h *BaseHandler) RespondAppError(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		h.RespondJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Error:   verr.Error(),
			Fields:  verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		h.RespondError(w, http.StatusUnauthorized, apperr.ErrInvalidCredentials.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		h.RespondError(w, http.StatusUnauthorized, apperr.ErrUnauthenticated.Error())
	case errors.Is(err, apperr.ErrForbidden):
		h.RespondError(w, http.StatusForbidden, apperr.ErrForbidden.Error())
	case errors.Is(err, apperr.ErrNotFound):
		h.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperr.ErrInvalidToken):
		h.RespondError(w, http.StatusBadRequest, apperr.ErrInvalidToken.Error())
	case errors.Is(err, apperr.ErrEmailDelivery):
		h.RespondError(w, http.StatusInternalServerError, apperr.ErrEmailDelivery.Error())
	default:
		h.Logger.Error("unhandled service error", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
