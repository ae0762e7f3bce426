// Package routes builds the HTTP route table.
//
// Route table:
//
//	GET    /                → plain-text welcome
//	GET    /students        → list all students
//	GET    /students/{id}   → get one student by ID
//	PUT    /students        → create a new student
//	POST   /students/{id}   → replace a student (upsert)
//	DELETE /students/{id}   → delete a student
//
// The verbs are the API's historical ones: PUT creates and POST updates.
package routes

import (
	"net/http"

	"github.com/aanand-mishra/students-docstore-api/internal/http/handlers/home"
	"github.com/aanand-mishra/students-docstore-api/internal/http/handlers/student"
	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/validation"
)

// New returns a router whose handlers share store and validate.
func New(store storage.Storage, validate *validation.Validator) *http.ServeMux {
	router := http.NewServeMux()

	// {$} anchors the pattern so "/" does not act as a catch-all.
	router.HandleFunc("GET /{$}", home.Index())

	router.HandleFunc("GET /students", student.GetList(store))
	router.HandleFunc("GET /students/{id}", student.GetByID(store))
	router.HandleFunc("PUT /students", student.New(store, validate))
	router.HandleFunc("POST /students/{id}", student.Update(store, validate))
	router.HandleFunc("DELETE /students/{id}", student.Delete(store))

	return router
}
