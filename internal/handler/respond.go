package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"canteen-connect/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps service errors onto the HTTP taxonomy. Anything not in
// the taxonomy is an internal failure: logged in full, reported generically.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidScore),
		errors.Is(err, service.ErrInvalidMenuItem),
		errors.Is(err, service.ErrInvalidPersonCount),
		errors.Is(err, service.ErrInvalidRole):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrNoSamples):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyRated),
		errors.Is(err, service.ErrUsernameTaken):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
