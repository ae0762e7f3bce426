// Package home serves the plain-text landing page at "/".
package home

import (
	"net/http"

	"github.com/aanand-mishra/students-docstore-api/internal/utils/response"
)

// Welcome is the body served at "/".
const Welcome = "Welcome to home page"

// Index answers GET / with the Welcome text as text/plain.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteText(w, http.StatusOK, Welcome)
	}
}
