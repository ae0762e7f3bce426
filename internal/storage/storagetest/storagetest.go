// Package storagetest is a conformance suite for storage.Storage
// implementations. Each backend's tests call Run with a constructor that
// returns a fresh, empty store.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

// Ann is the sample payload used throughout the suite.
var Ann = types.Student{
	Name:   "Ann",
	DOB:    "2000-01-01",
	Gender: "Female",
	Email:  "ann@x.com",
	Phone:  "1234567890",
}

var bob = types.Student{
	Name:   "Bob",
	DOB:    "1999-12-31",
	Gender: "Male",
	Email:  "bob@y.org",
	Phone:  "0987654321",
}

// Run exercises every Storage operation against stores built by newStore.
// newStore must return an empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("EmptyListIsNotNil", func(t *testing.T) {
		s := open(t, newStore)
		students, err := s.GetStudents(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, students)
		assert.Empty(t, students)
	})

	t.Run("CreateThenGet", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		id, err := s.CreateStudent(ctx, Ann)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.StudentRecord{ID: id, Student: Ann}, got)
	})

	t.Run("CreateAssignsDistinctIDs", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		first, err := s.CreateStudent(ctx, Ann)
		require.NoError(t, err)
		second, err := s.CreateStudent(ctx, Ann)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("GetMissingIsNotFound", func(t *testing.T) {
		s := open(t, newStore)
		_, err := s.GetStudentByID(context.Background(), "does-not-exist")
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})

	t.Run("ListReturnsAll", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		annID, err := s.CreateStudent(ctx, Ann)
		require.NoError(t, err)
		bobID, err := s.CreateStudent(ctx, bob)
		require.NoError(t, err)

		students, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []types.StudentRecord{
			{ID: annID, Student: Ann},
			{ID: bobID, Student: bob},
		}, students)
	})

	t.Run("ReplaceOverwritesAllFields", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		id, err := s.CreateStudent(ctx, Ann)
		require.NoError(t, err)
		require.NoError(t, s.ReplaceStudentByID(ctx, id, bob))

		got, err := s.GetStudentByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.StudentRecord{ID: id, Student: bob}, got)

		students, err := s.GetStudents(ctx)
		require.NoError(t, err)
		assert.Len(t, students, 1)
	})

	t.Run("ReplaceMissingUpserts", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		require.NoError(t, s.ReplaceStudentByID(ctx, "chosen-by-client", Ann))

		got, err := s.GetStudentByID(ctx, "chosen-by-client")
		require.NoError(t, err)
		assert.Equal(t, types.StudentRecord{ID: "chosen-by-client", Student: Ann}, got)
	})

	t.Run("DeleteRemoves", func(t *testing.T) {
		s := open(t, newStore)
		ctx := context.Background()

		id, err := s.CreateStudent(ctx, Ann)
		require.NoError(t, err)
		require.NoError(t, s.DeleteStudentByID(ctx, id))

		_, err = s.GetStudentByID(ctx, id)
		assert.True(t, errors.Is(err, storage.ErrNotFound), "got %v", err)
	})

	t.Run("DeleteMissingIsNotAnError", func(t *testing.T) {
		s := open(t, newStore)
		assert.NoError(t, s.DeleteStudentByID(context.Background(), "does-not-exist"))
	})
}

func open(t *testing.T, newStore func(t *testing.T) storage.Storage) storage.Storage {
	t.Helper()
	s := newStore(t)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}
