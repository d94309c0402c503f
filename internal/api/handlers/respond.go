package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// respondJSON encodes v before writing the status so an unencodable value
// becomes a 500 instead of a 200 with an empty body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"message":"Failed to encode response"}` + "\n")
	}
	respondRaw(w, status, buf.Bytes())
}

// respondRaw writes a JSON document that is already encoded.
func respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// respondError writes {"message": ...}. Messages are short and never carry
// internal paths or error text.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}
