// internal/api/response.go
package api

import (
	"encoding/json"
	"net/http"

	"github-trending-api/internal/syncer"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type statusResponse struct {
	State    syncer.State `json:"state"`
	Interval string       `json:"interval"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, msg, detail string) {
	respondWithJSON(w, code, errorResponse{Error: msg, Message: detail})
}
