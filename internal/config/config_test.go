package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PROJECT_MERGE_PLACE_VISUALLY",
		"PROJECT_MERGE_PLACE_X",
		"PROJECT_MERGE_PLACE_Y",
		"PROJECT_MERGE_VERBOSE",
		"PROJECT_MERGE_JSON",
	} {
		// Setenv registers the restore; the variable itself must be unset.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PROJECT_MERGE_PLACE_VISUALLY", "true")
	t.Setenv("PROJECT_MERGE_PLACE_X", "-40")
	t.Setenv("PROJECT_MERGE_PLACE_Y", "120")
	t.Setenv("PROJECT_MERGE_VERBOSE", "1")
	t.Setenv("PROJECT_MERGE_JSON", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{PlaceVisually: true, PlaceX: -40, PlaceY: 120, Verbose: true, JSON: true}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PROJECT_MERGE_PLACE_X", "left")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
