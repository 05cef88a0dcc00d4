package web

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the uniform envelope for every JSON endpoint.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respond(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusOK, apiResponse{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, apiResponse{Success: false, Message: message})
}
