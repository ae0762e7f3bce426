// Package storage defines the Storage interface — the contract any
// document store must satisfy to back the students API.
//
// Handlers depend only on this interface. The concrete backends live in
// sub-packages (firestore, mongo, sqlite, memory) and main picks one from
// config at startup. Tests swap in the memory backend or a fake.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

// ErrNotFound is returned by GetStudentByID when no document has the
// requested ID. Backends must return it (optionally wrapped) instead of a
// driver-specific "no rows" error so handlers can answer 404, not 500.
var ErrNotFound = errors.New("student not found")

// Storage is the document-store contract. Every method takes the request
// context; a cancelled context aborts the in-flight store call.
type Storage interface {
	// CreateStudent inserts a new document holding exactly the five
	// student fields and returns the ID the store assigned.
	CreateStudent(ctx context.Context, student types.Student) (string, error)

	// GetStudentByID fetches one document. Returns ErrNotFound if absent.
	GetStudentByID(ctx context.Context, id string) (types.StudentRecord, error)

	// GetStudents returns every document in the collection, in whatever
	// order the store yields them. Returns an empty slice (not nil) if
	// the collection is empty.
	GetStudents(ctx context.Context) ([]types.StudentRecord, error)

	// ReplaceStudentByID overwrites the document at id with exactly the
	// given fields. If no document exists at id one is created there.
	ReplaceStudentByID(ctx context.Context, id string, student types.Student) error

	// DeleteStudentByID removes the document at id. Deleting an ID that
	// does not exist is not an error.
	DeleteStudentByID(ctx context.Context, id string) error

	// Close releases the underlying connection.
	Close() error
}
