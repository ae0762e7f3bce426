// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Each student document is one row keyed by an opaque TEXT id. The id is a
// random UUID generated here, so callers never see SQLite's rowid and the
// API behaves the same as it does against a hosted document store.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aanand-mishra/students-docstore-api/internal/config"
	"github.com/aanand-mishra/students-docstore-api/internal/storage"
	"github.com/aanand-mishra/students-docstore-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB

	// table is the quoted table name, already safe to splice into SQL.
	table string
}

// New opens the SQLite database at cfg.Storage.SQLite.Path, creates the
// student table if it does not already exist, and returns a ready-to-use
// *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	table, err := quoteIdent(cfg.Storage.Collection)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Storage.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup. Column names match the JSON field names.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + table + ` (
			id             TEXT PRIMARY KEY,
			student_name   TEXT NOT NULL,
			student_dob    TEXT NOT NULL,
			student_gender TEXT NOT NULL,
			student_email  TEXT NOT NULL,
			student_phone  TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db, table: table}, nil
}

// CreateStudent inserts a new row under a freshly generated UUID.
// Values are bound through ? placeholders, never concatenated.
func (s *SQLite) CreateStudent(ctx context.Context, student types.Student) (string, error) {
	id := uuid.NewString()

	_, err := s.Db.ExecContext(ctx,
		"INSERT INTO "+s.table+" (id, student_name, student_dob, student_gender, student_email, student_phone) VALUES (?, ?, ?, ?, ?, ?)",
		id, student.Name, student.DOB, student.Gender, student.Email, student.Phone,
	)
	if err != nil {
		return "", fmt.Errorf("CreateStudent: exec: %w", err)
	}

	return id, nil
}

// GetStudentByID fetches exactly one row matched by id.
func (s *SQLite) GetStudentByID(ctx context.Context, id string) (types.StudentRecord, error) {
	var record types.StudentRecord

	err := s.Db.QueryRowContext(ctx,
		"SELECT id, student_name, student_dob, student_gender, student_email, student_phone FROM "+s.table+" WHERE id = ? LIMIT 1",
		id,
	).Scan(
		&record.ID,
		&record.Name,
		&record.DOB,
		&record.Gender,
		&record.Email,
		&record.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.StudentRecord{}, fmt.Errorf("GetStudentByID %q: %w", id, storage.ErrNotFound)
		}
		return types.StudentRecord{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return record, nil
}

// GetStudents returns all rows as a slice, oldest insert first.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.StudentRecord, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, student_name, student_dob, student_gender, student_email, student_phone FROM "+s.table+" ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	students := make([]types.StudentRecord, 0)

	for rows.Next() {
		var record types.StudentRecord

		if err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.DOB,
			&record.Gender,
			&record.Email,
			&record.Phone,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}

		students = append(students, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// ReplaceStudentByID overwrites every field of the row at id, inserting
// the row if it does not exist yet.
func (s *SQLite) ReplaceStudentByID(ctx context.Context, id string, student types.Student) error {
	_, err := s.Db.ExecContext(ctx, `
		INSERT INTO `+s.table+` (id, student_name, student_dob, student_gender, student_email, student_phone)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			student_name   = excluded.student_name,
			student_dob    = excluded.student_dob,
			student_gender = excluded.student_gender,
			student_email  = excluded.student_email,
			student_phone  = excluded.student_phone
	`, id, student.Name, student.DOB, student.Gender, student.Email, student.Phone)
	if err != nil {
		return fmt.Errorf("ReplaceStudentByID: exec: %w", err)
	}

	return nil
}

// DeleteStudentByID removes a row by id. Zero affected rows is fine.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id string) error {
	_, err := s.Db.ExecContext(ctx, "DELETE FROM "+s.table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	return nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}

// quoteIdent turns a collection name into a quoted SQLite identifier.
// Placeholders cannot bind table names, so the name is checked instead.
func quoteIdent(name string) (string, error) {
	if name == "" {
		return "", errors.New("empty table name")
	}
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "", fmt.Errorf("invalid table name %q", name)
		}
	}
	return `"` + strings.ToLower(name) + `"`, nil
}
