package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: localhost:3000
  read_timeout: 3s
storage:
  driver: sqlite
  sqlite:
    path: storage/students.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "localhost:3000", cfg.Addr)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout, "default applies")
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "students", cfg.Storage.Collection)
	assert.Equal(t, "storage/students.db", cfg.Storage.SQLite.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: dev
http_server:
  address: localhost:3000
storage:
  driver: memory
`)
	t.Setenv("HTTP_SERVER_ADDR", ":8080")
	t.Setenv("STORAGE_COLLECTION", "pupils")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "pupils", cfg.Storage.Collection)
}

func TestLoadMongoAndFirestore(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
env: prod
http_server:
  address: ":3000"
storage:
  driver: mongo
  mongo:
    uri: mongodb://localhost:27017
    database: school
`))
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, 10*time.Second, cfg.Storage.Mongo.ConnectTimeout)

	cfg, err = Load(writeConfig(t, `
env: prod
http_server:
  address: ":3000"
storage:
  driver: firestore
  firestore:
    project_id: students-demo
    credentials_file: serviceAccountKey.json
`))
	require.NoError(t, err)
	assert.Equal(t, "students-demo", cfg.Storage.Firestore.ProjectID)
	assert.Equal(t, "serviceAccountKey.json", cfg.Storage.Firestore.CredentialsFile)
}

func TestLoadRejectsIncompleteStorage(t *testing.T) {
	tests := []struct {
		name    string
		storage string
	}{
		{"unknown driver", "driver: cassandra"},
		{"sqlite without path", "driver: sqlite"},
		{"mongo without database", "driver: mongo\n  mongo:\n    uri: mongodb://localhost"},
		{"firestore without project", "driver: firestore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, `
env: dev
http_server:
  address: ":3000"
storage:
  `+tt.storage+"\n"))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("ENV", "")
	require.NoError(t, os.Unsetenv("ENV"))

	_, err := Load(writeConfig(t, `
http_server:
  address: ":3000"
storage:
  driver: memory
`))
	assert.Error(t, err, "env is required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}
