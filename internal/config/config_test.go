package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(previous) })
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/pos")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/pos", cfg.DatabaseURL)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=8081\nDATABASE_URL=\"postgres://localhost/pos\"\n# comment\nADMIN_PASSWORD='secret'\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "postgres://localhost/pos", cfg.DatabaseURL)
	assert.Equal(t, "secret", cfg.AdminPassword)
}

func TestEnvironmentOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "PORT=8081\nDATABASE_URL=postgres://file/pos\nADMIN_PASSWORD=filepw\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)
	t.Setenv("DATABASE_URL", "postgres://env/pos")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/pos", cfg.DatabaseURL)
	assert.Equal(t, "filepw", cfg.AdminPassword)
}

func TestLoadErrors(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/pos")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")

	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("PORT", "not-a-number")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}
