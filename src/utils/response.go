package utils

import (
	"encoding/json"
	"net/http"
)

// JSONErrorResponse is the body shape for every error the API returns.
type JSONErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendJSON writes payload as a JSON response with the given status.
func SendJSON(w http.ResponseWriter, payload interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// SendJSONError writes a {success:false, message} error body.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	SendJSON(w, JSONErrorResponse{Success: false, Message: message}, statusCode)
}
