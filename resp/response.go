package resp

import (
	"encoding/json"
	"net/http"
)

// Exception represents the response structure.
type Exception struct {
	Status  int    `json:"status,omitempty"`  // HTTP status
	Message string `json:"message,omitempty"` // Message
	Errors  any    `json:"errors,omitempty"`  // Validation errors
	Data    any    `json:"data,omitempty"`    // Response data
}

// Success handles success responses.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode handles success responses with custom status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return
	}

	var responseData any
	if len(data) > 0 {
		responseData = data[0]
	}

	if responseData == nil {
		responseData = map[string]any{"message": "ok"}
	}

	writeJSON(w, statusCode, responseData)
}

// Fail handles failure responses.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer("internal server error")
	}

	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}

	writeJSON(w, status, &Exception{
		Message: r.Message,
		Errors:  r.Errors,
	})
}

// BadRequest builds a 400 response. An optional errors payload carries
// per-field validation messages.
func BadRequest(message string, errs ...any) *Exception {
	e := &Exception{Status: http.StatusBadRequest, Message: message}
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	return e
}

// NotFound builds a 404 response.
func NotFound(message string) *Exception {
	return &Exception{Status: http.StatusNotFound, Message: message}
}

// Conflict builds a 409 response.
func Conflict(message string) *Exception {
	return &Exception{Status: http.StatusConflict, Message: message}
}

// InternalServer builds a 500 response.
func InternalServer(message string) *Exception {
	return &Exception{Status: http.StatusInternalServerError, Message: message}
}

// writeJSON writes the response with the specified status code.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
