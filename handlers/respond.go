package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"resource-service/security"
	"resource-service/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps service errors onto status codes. Unexpected failures
// log the detail and return a generic message only.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeMessage(w, http.StatusBadRequest, verr.Msg)
		return
	}
	var ferr *service.ForbiddenError
	if errors.As(err, &ferr) {
		writeMessage(w, http.StatusForbidden, ferr.Msg)
		return
	}
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrNotFoundOrUnauthorized):
		writeMessage(w, http.StatusNotFound, "Project not found or unauthorized")
	default:
		logger.Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func callerFrom(w http.ResponseWriter, r *http.Request) (service.Caller, bool) {
	caller, ok := security.CallerFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
	}
	return caller, ok
}
