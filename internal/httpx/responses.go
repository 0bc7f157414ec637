package httpx

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of confirmation and error responses.
type MessageResponse struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a {"message": ...} error body. details may be nil.
func JSONError(w http.ResponseWriter, statusCode int, message string, details []ValidationError) {
	JSON(w, statusCode, MessageResponse{
		Message: message,
		Errors:  details,
	})
}
