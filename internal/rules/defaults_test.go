package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charforge/charforge/internal/domain/shared"
)

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grants:
  - category: languages
    name: Common
  - category: weapons
    name: Simple Weapons
`), 0o644))

	defaults, err := LoadDefaults(path)
	require.NoError(t, err)

	require.Len(t, defaults.Grants, 2)
	assert.Equal(t, shared.GrantRef{Category: shared.CategoryLanguages, Name: "Common"}, defaults.Grants[0])
	assert.Equal(t, shared.GrantRef{Category: shared.CategoryWeapons, Name: "Simple Weapons"}, defaults.Grants[1])
}

func TestLoadDefaultsRejectsUnknownCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grants:
  - category: spells
    name: Fireball
`), 0o644))

	_, err := LoadDefaults(path)
	assert.Error(t, err)
}

func TestLoadDefaultsMissingFile(t *testing.T) {
	_, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestStandardDefaults(t *testing.T) {
	defaults := StandardDefaults()
	require.Len(t, defaults.Grants, 1)
	assert.Equal(t, shared.CategoryLanguages, defaults.Grants[0].Category)
	assert.Equal(t, "Common", defaults.Grants[0].Name)
}
