package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/utils"
)

// envelope is the uniform response shape: {success, message?, data?}.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst and closes the body.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer utils.Close(r.Body)
	return json.NewDecoder(r.Body).Decode(dst)
}
