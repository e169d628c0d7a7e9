package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "tiers.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestBuiltin(t *testing.T) {
	f, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, "Mittel", f.Default)
	require.Len(t, f.Tiers, 3)
	rows := map[string]int{}
	for _, tier := range f.Tiers {
		rows[tier.Name] = tier.Rows
		assert.NoError(t, Validate(tier))
	}
	assert.Equal(t, map[string]int{"Einfach": 6, "Mittel": 8, "Schwer": 12}, rows)
}

func TestLoader_NoPathUsesBuiltin(t *testing.T) {
	f, err := NewLoader("").Load()
	require.NoError(t, err)
	assert.Len(t, f.Tiers, 3)
}

func TestLoader_MissingFileUsesBuiltin(t *testing.T) {
	f, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Len(t, f.Tiers, 3)
	assert.Equal(t, "Mittel", f.Default)
}

func TestLoader_MergesOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
default: Turbo
tiers:
  - name: Mittel
    rows: 10
    multipliers: [2, 1, 1, 1, 0.2, 1, 1, 1, 2]
  - name: Turbo
    rows: 16
    multipliers: [5, 2, 1, 0.5, 0.2, 0.5, 1, 2, 5]
`)
	f, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "Turbo", f.Default)
	names := make([]string, 0, len(f.Tiers))
	for _, tier := range f.Tiers {
		names = append(names, tier.Name)
	}
	assert.Equal(t, []string{"Einfach", "Mittel", "Schwer", "Turbo"}, names)
	assert.Equal(t, 10, f.Tiers[1].Rows)
	assert.Equal(t, 0.2, f.Tiers[1].Multipliers[4])
}

func TestLoader_DropsInvalidTiers(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
default: Broken
tiers:
  - name: Broken
    rows: 4
    multipliers: [1, 1, 1]
`)
	f, err := NewLoader(path).Load()
	require.Error(t, err)

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "Broken", cerr.Tier)

	// the broken tier is never registered, the default falls back
	assert.Len(t, f.Tiers, 3)
	assert.Empty(t, f.Default)
	b, err := New(f.Tiers, f.Default)
	require.NoError(t, err)
	assert.NotContains(t, b.ListTiers(), "Broken")
}

func TestLoader_BadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tiers: [")
	_, err := NewLoader(path).Load()
	require.Error(t, err)

	var cerr *ConfigError
	assert.False(t, errors.As(err, &cerr))
}

func TestLoader_CacheAndInvalidate(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, `
tiers:
  - name: Extra
    rows: 2
    multipliers: [1, 1, 1, 1, 1, 1, 1, 1, 1]
`)
	l := NewLoader(path)
	f, err := l.Load()
	require.NoError(t, err)
	require.Len(t, f.Tiers, 4)

	// mutating the result must not leak into the cache
	f.Tiers[0].Multipliers[0] = 42

	writeFile(t, dir, "tiers: []\n")
	cached, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, cached.Tiers, 4)
	assert.Equal(t, 0.8, cached.Tiers[0].Multipliers[0])

	l.Invalidate()
	fresh, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, fresh.Tiers, 3)
}
