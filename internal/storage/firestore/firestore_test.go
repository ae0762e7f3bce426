package firestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-docstore-api/internal/config"
	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/storage/storagetest"
)

func newEmulatorStore(t *testing.T, collection string) *Firestore {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	cfg := &config.Config{}
	cfg.Storage.Collection = collection
	cfg.Storage.Firestore.ProjectID = "students-test"

	f, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return f
}

// TestFirestoreConformance runs against the emulator, e.g.
//
//	gcloud emulators firestore start --host-port=localhost:8681
//	FIRESTORE_EMULATOR_HOST=localhost:8681 go test ./internal/storage/firestore
func TestFirestoreConformance(t *testing.T) {
	prefix := fmt.Sprintf("students_%d", time.Now().UnixNano())
	n := 0
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		n++
		return newEmulatorStore(t, fmt.Sprintf("%s_%d", prefix, n))
	})
}

func TestFirestoreInvalidIDs(t *testing.T) {
	f := newEmulatorStore(t, "students_invalid_ids")
	defer f.Close()
	ctx := context.Background()

	_, err := f.GetStudentByID(ctx, "a/b")
	assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)

	err = f.ReplaceStudentByID(ctx, "", storagetest.Ann)
	assert.ErrorIs(t, err, errInvalidID)

	err = f.DeleteStudentByID(ctx, "a/b")
	assert.ErrorIs(t, err, errInvalidID)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("Xk2c9QhW1"))
	assert.True(t, validID("chosen-by-client"))

	for _, id := range []string{"", ".", "..", "a/b", "/"} {
		assert.False(t, validID(id), id)
	}
}
