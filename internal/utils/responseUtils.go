package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// SendJSONError writes an error message in the standard envelope.
func SendJSONError(w http.ResponseWriter, message string, status int) {
	RespondWithJSON(w, status, map[string]string{"error": message})
}

// RespondWithError is SendJSONError with the arguments in handler order.
func RespondWithError(w http.ResponseWriter, status int, message string) {
	SendJSONError(w, message, status)
}
