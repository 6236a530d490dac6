package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/plantnet/server/internal/platform/logger"
	"github.com/plantnet/server/internal/repository"
	"github.com/plantnet/server/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps domain errors onto the HTTP outcome taxonomy. Anything
// unrecognized is a 500 with a generic message; the detail goes to the log.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrAlreadyRequested):
		writeMessage(w, http.StatusConflict, "You are already requested, wait for some time")
	case errors.Is(err, repository.ErrInsufficientStock):
		writeMessage(w, http.StatusConflict, "not enough stock available")
	case errors.Is(err, service.ErrOrderDelivered):
		writeMessage(w, http.StatusConflict, "Cannot Cancel Once The Product is Delivered")
	default:
		log.Errorf("request failed: %v", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
