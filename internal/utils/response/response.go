// Package response provides helpers for writing consistent HTTP responses.
//
// Success responses may be any JSON shape (a record, a list, an id…).
// Error responses always look like:
//
//	{ "status": "error", "error": "Invalid student gender" }
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aanand-mishra/students-docstore-api/internal/validation"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string `json:"status"` // always "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Message is the body of acknowledgement-only responses.
type Message struct {
	Message string `json:"message"`
}

const StatusError = "error"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Header() must be set before WriteHeader(), and WriteHeader() before any
// body bytes; once the status line is out the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes a plain-text body.
func WriteText(w http.ResponseWriter, status int, text string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write([]byte(text))
	return err
}

// Error builds the error envelope around a fixed client-facing message.
// Use it for server faults so the underlying error is never echoed.
func Error(message string) Response {
	return Response{
		Status: StatusError,
		Error:  message,
	}
}

// ValidationError converts a rejected payload into the error envelope
// carrying its single reason.
func ValidationError(err *validation.Error) Response {
	return Error(err.Message)
}
