// Package student contains all HTTP handlers related to the Student resource.
//
// Every handler is built by a factory that receives its dependencies (the
// store, and for writes the validator) once at startup and returns the
// http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("PUT /students", student.New(store, validate))
//
// Store errors never reach the client: they are logged and replaced by a
// fixed per-route message with status 500.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/types"
	"github.com/aanand-mishra/students-docstore-api/internal/utils/response"
	"github.com/aanand-mishra/students-docstore-api/internal/validation"
)

// Client-facing messages.
const (
	MsgInvalidBody  = "Invalid request body"
	MsgNotFound     = "Student not found"
	MsgListFailed   = "Error fetching students"
	MsgGetFailed    = "Error fetching student"
	MsgCreateFailed = "Error creating student record"
	MsgUpdateFailed = "Error updating student record"
	MsgDeleteFailed = "Error deleting student record"
	MsgUpdated      = "Student record updated successfully"
	MsgDeleted      = "Student record deleted successfully"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles PUT /students
// Validates the body and inserts a new document; the store picks the ID.
//
// Request body (JSON):
//
//	{ "student_name": "Ann", "student_dob": "2000-01-01",
//	  "student_gender": "Female", "student_email": "ann@x.com",
//	  "student_phone": "1234567890" }
//
// Success response (200 OK):
//
//	{ "id": "Xk2c9QhW1" }
//
// Error responses:
//
//	400 Bad Request  — malformed JSON or one of the five validation messages
//	500 Internal     — store error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage, validate *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeAndValidate(w, r, validate)
		if !ok {
			return
		}

		id, err := store.CreateStudent(r.Context(), student)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(MsgCreateFailed))
			return
		}

		slog.Info("student created", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
// The id is opaque and passed to the store unchanged.
//
// Success response (200 OK):
//
//	{ "id": "Xk2c9QhW1", "student_name": "Ann", ... }
//
// Error responses:
//
//	404 Not Found    — no document with that id
//	500 Internal     — any other store error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		record, err := store.GetStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Error(MsgNotFound))
			return
		}
		if err != nil {
			slog.Error("error getting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(MsgGetFailed))
			return
		}

		response.WriteJSON(w, http.StatusOK, record)
	}
}

// GetList handles GET /students and returns every record as a JSON array,
// [] when the collection is empty. Order is whatever the store returns.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(MsgListFailed))
			return
		}
		if students == nil {
			students = []types.StudentRecord{}
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles POST /students/{id}
// Replaces ALL five fields of the document; nothing is merged. When no
// document exists at {id} the store creates one there.
//
// Success response (200 OK):
//
//	{ "message": "Student record updated successfully" }
//
// Error responses:
//
//	400 Bad Request  — malformed JSON or validation failure (store untouched)
//	500 Internal     — store error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage, validate *validation.Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		student, ok := decodeAndValidate(w, r, validate)
		if !ok {
			return
		}

		if err := store.ReplaceStudentByID(r.Context(), id, student); err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(MsgUpdateFailed))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: MsgUpdated})
	}
}

// Delete handles DELETE /students/{id}. Deleting an id that does not
// exist still answers 200.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		if err := store.DeleteStudentByID(r.Context(), id); err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(MsgDeleteFailed))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: MsgDeleted})
	}
}

// decodeAndValidate reads the request body as a raw payload and runs the
// validator over it. On failure it writes the 400 response itself and
// returns false. An empty body, or a JSON value that is not an object, is
// an empty payload, which the validator then rejects on the name.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validation.Validator) (types.Student, bool) {
	var body any

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		slog.Info("rejecting malformed body", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgInvalidBody))
		return types.Student{}, false
	}

	payload, _ := body.(map[string]any)

	student, err := validate.ValidatePayload(payload)
	if err != nil {
		ve, ok := validation.AsError(err)
		if !ok {
			ve = &validation.Error{Message: MsgInvalidBody}
		}
		slog.Info("student rejected",
			slog.String("field", ve.Field),
			slog.String("reason", ve.Message))
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
		return types.Student{}, false
	}

	return student, true
}
