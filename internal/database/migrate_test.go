package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/model"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_reviews.sql", "0001_init.sql", "0001_init_rollback.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.sql"), 0o755))

	files, err := MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_reviews.sql"}, files)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0001", Version("0001_init.sql"))
	assert.Equal(t, "0003", Version("0003.sql"))
	assert.Equal(t, "0004", Version("0004_add_tags_index.sql"))
}

func TestMigrationsDirectoryIsWellFormed(t *testing.T) {
	dir := filepath.Join("..", "..", "migrations")
	files, err := MigrationFiles(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		rollback := f[:len(f)-len(".sql")] + "_rollback.sql"
		_, err := os.Stat(filepath.Join(dir, rollback))
		assert.NoError(t, err, "missing rollback for %s", f)
	}
}

func TestRunMigrationsSQLite(t *testing.T) {
	db, err := OpenDialector(sqlite.Open("file::memory:"))
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, "unused", logging.Discard()))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&model.Review{}, "idx_reviews_user_recipe"))
}
