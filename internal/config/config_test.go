package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PLINKO_TEST_LOADED=yes\nPLINKO_TEST_KEPT=file\n"), 0o644))

	t.Setenv("PLINKO_TEST_KEPT", "process")
	t.Cleanup(func() { os.Unsetenv("PLINKO_TEST_LOADED") })

	require.NoError(t, Load(path))
	assert.Equal(t, "yes", os.Getenv("PLINKO_TEST_LOADED"))
	assert.Equal(t, "process", os.Getenv("PLINKO_TEST_KEPT"))
}

func TestLoadMissing(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
