package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the generic error envelope: the numeric HTTP status is
// repeated in the payload alongside a human-readable message.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// JSON writes data with the given status. data should already carry the
// "success": true field the API contract expects.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes the generic error envelope for status, using the
// canonical message for that status code.
func Error(w http.ResponseWriter, status int) {
	ErrorMessage(w, status, MessageFor(status))
}

// ErrorMessage writes the generic error envelope with a caller-supplied
// message.
func ErrorMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{
		Success: false,
		Error:   status,
		Message: message,
	})
}
