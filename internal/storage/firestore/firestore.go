// Package firestore implements storage.Storage on a Cloud Firestore
// collection. Firestore assigns document ids on create, Set gives the
// replace-or-create semantics used by update, and Delete without a
// precondition succeeds for documents that do not exist.
//
// Setting FIRESTORE_EMULATOR_HOST points the client at a local emulator.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aanand-mishra/students-docstore-api/internal/config"
	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

// errInvalidID is returned when an id cannot name a document, e.g. it is
// empty or contains a "/".
var errInvalidID = errors.New("invalid document id")

type Firestore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

func New(ctx context.Context, cfg *config.Config) (*Firestore, error) {
	fcfg := cfg.Storage.Firestore

	var opts []option.ClientOption
	if fcfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(fcfg.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, fcfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore.New: client: %w", err)
	}

	collection := client.Collection(cfg.Storage.Collection)
	if collection == nil {
		client.Close()
		return nil, fmt.Errorf("firestore.New: invalid collection %q", cfg.Storage.Collection)
	}

	return &Firestore{client: client, collection: collection}, nil
}

func (f *Firestore) CreateStudent(ctx context.Context, student types.Student) (string, error) {
	ref, _, err := f.collection.Add(ctx, student)
	if err != nil {
		return "", fmt.Errorf("CreateStudent: add: %w", err)
	}
	return ref.ID, nil
}

func (f *Firestore) GetStudentByID(ctx context.Context, id string) (types.StudentRecord, error) {
	ref, ok := f.doc(id)
	if !ok {
		// No document can live at an invalid path.
		return types.StudentRecord{}, fmt.Errorf("GetStudentByID %q: %w", id, storage.ErrNotFound)
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.StudentRecord{}, fmt.Errorf("GetStudentByID %q: %w", id, storage.ErrNotFound)
		}
		return types.StudentRecord{}, fmt.Errorf("GetStudentByID: get: %w", err)
	}

	return decode(snap)
}

func (f *Firestore) GetStudents(ctx context.Context) ([]types.StudentRecord, error) {
	iter := f.collection.Documents(ctx)
	defer iter.Stop()

	students := make([]types.StudentRecord, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GetStudents: next: %w", err)
		}

		record, err := decode(snap)
		if err != nil {
			return nil, fmt.Errorf("GetStudents: %w", err)
		}
		students = append(students, record)
	}

	return students, nil
}

// ReplaceStudentByID uses Set without merge options, which overwrites the
// whole document and creates it when missing.
func (f *Firestore) ReplaceStudentByID(ctx context.Context, id string, student types.Student) error {
	ref, ok := f.doc(id)
	if !ok {
		return fmt.Errorf("ReplaceStudentByID %q: %w", id, errInvalidID)
	}

	if _, err := ref.Set(ctx, student); err != nil {
		return fmt.Errorf("ReplaceStudentByID: set: %w", err)
	}
	return nil
}

func (f *Firestore) DeleteStudentByID(ctx context.Context, id string) error {
	ref, ok := f.doc(id)
	if !ok {
		return fmt.Errorf("DeleteStudentByID %q: %w", id, errInvalidID)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("DeleteStudentByID: delete: %w", err)
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

// doc returns the reference for id, or false when id cannot name a
// document directly under the collection.
func (f *Firestore) doc(id string) (*firestore.DocumentRef, bool) {
	if !validID(id) {
		return nil, false
	}
	ref := f.collection.Doc(id)
	return ref, ref != nil
}

func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.Contains(id, "/")
}

func decode(snap *firestore.DocumentSnapshot) (types.StudentRecord, error) {
	var student types.Student
	if err := snap.DataTo(&student); err != nil {
		return types.StudentRecord{}, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
	}
	return types.StudentRecord{ID: snap.Ref.ID, Student: student}, nil
}
