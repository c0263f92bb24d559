package db

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "postgres://app:pw@localhost:5432/courts?sslmode=disable", want: "pgx5://app:pw@localhost:5432/courts?sslmode=disable"},
		{dsn: "postgresql://localhost/courts", want: "pgx5://localhost/courts"},
		{dsn: "host=localhost dbname=courts", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := migrateURL(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmbeddedSchema(t *testing.T) {
	src, err := iofs.New(migrationFS, "migrations")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, name, err := src.ReadUp(first)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "init", name)

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	schema := string(body)

	for _, table := range []string{"public.users", "public.courts", "public.reservations", "public.files", "public.court_reports"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schema, "CONSTRAINT users_national_id_key")
	assert.Contains(t, schema, "WHERE (status = 'approved')")

	down, _, err := src.ReadDown(first)
	require.NoError(t, err)
	down.Close()
}
