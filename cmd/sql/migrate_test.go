package sql

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbpkg "github.com/sig-0/fcbrates/storage/sql"
)

func TestMigrate_SelectMigrations(t *testing.T) {
	t.Parallel()

	schema := fstest.MapFS{
		"schema/002_indexes.sql":        {Data: []byte("SELECT 1;")},
		"schema/001_exchange_rates.sql": {Data: []byte("SELECT 1;")},
		"schema/README.md":              {Data: []byte("notes")},
	}

	t.Run("all migrations in order", func(t *testing.T) {
		t.Parallel()

		migrations, err := selectMigrations(schema, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"001_exchange_rates.sql", "002_indexes.sql"}, migrations)
	})

	t.Run("requested migrations", func(t *testing.T) {
		t.Parallel()

		migrations, err := selectMigrations(schema, []string{"002_indexes.sql"})
		require.NoError(t, err)

		assert.Equal(t, []string{"002_indexes.sql"}, migrations)
	})

	t.Run("unknown migration", func(t *testing.T) {
		t.Parallel()

		_, err := selectMigrations(schema, []string{"003_missing.sql"})

		assert.Error(t, err)
	})

	t.Run("embedded schema", func(t *testing.T) {
		t.Parallel()

		migrations, err := selectMigrations(dbpkg.SchemaFS, nil)
		require.NoError(t, err)

		assert.Contains(t, migrations, "001_exchange_rates.sql")
	})
}
