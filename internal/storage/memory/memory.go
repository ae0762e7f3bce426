// Package memory is an in-process storage.Storage backed by a map. It is
// used by the handler tests and by the "memory" driver for local demos.
// Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/types"
)

type Memory struct {
	mu   sync.RWMutex
	docs map[string]types.Student
	// order keeps insertion order so listings are stable in tests.
	order []string
}

func New() *Memory {
	return &Memory{docs: make(map[string]types.Student)}
}

func (m *Memory) CreateStudent(ctx context.Context, student types.Student) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("CreateStudent: %w", err)
	}

	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(id, student)

	return id, nil
}

func (m *Memory) GetStudentByID(ctx context.Context, id string) (types.StudentRecord, error) {
	if err := ctx.Err(); err != nil {
		return types.StudentRecord{}, fmt.Errorf("GetStudentByID: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	student, ok := m.docs[id]
	if !ok {
		return types.StudentRecord{}, fmt.Errorf("GetStudentByID %q: %w", id, storage.ErrNotFound)
	}
	return types.StudentRecord{ID: id, Student: student}, nil
}

func (m *Memory) GetStudents(ctx context.Context) ([]types.StudentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	students := make([]types.StudentRecord, 0, len(m.order))
	for _, id := range m.order {
		students = append(students, types.StudentRecord{ID: id, Student: m.docs[id]})
	}
	return students, nil
}

func (m *Memory) ReplaceStudentByID(ctx context.Context, id string, student types.Student) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ReplaceStudentByID: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(id, student)

	return nil
}

func (m *Memory) DeleteStudentByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return nil
	}
	delete(m.docs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// put must be called with mu held for writing.
func (m *Memory) put(id string, student types.Student) {
	if _, ok := m.docs[id]; !ok {
		m.order = append(m.order, id)
	}
	m.docs[id] = student
}
