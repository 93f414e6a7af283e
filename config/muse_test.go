package config_test

import (
	"testing"

	"github.com/musebox/musesummoner/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMuseFromFile(t *testing.T) {
	mc, err := config.LoadMuseFromFile("testdata/aria.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Aria", mc.Name)
	assert.Equal(t, "Sing to me", mc.TriggerPhrase)
	assert.Len(t, mc.TasksSupported, 3)
	assert.Len(t, mc.Catchphrases, 2)
	assert.Equal(t, "What melody is your heart avoiding?", mc.SignatureQuestion)
	require.Contains(t, mc.Capabilities, "creative_co_writing")
	assert.Len(t, mc.Capabilities["creative_co_writing"].Functions, 2)
}

func TestLoadMuseFromFileMissing(t *testing.T) {
	_, err := config.LoadMuseFromFile("testdata/nonexistent.yaml")
	require.Error(t, err)
}

func TestLoadMusesFromFiles(t *testing.T) {
	muses, err := config.LoadMusesFromFiles([]string{"testdata/aria.yaml"})
	require.NoError(t, err)
	require.Len(t, muses, 1)
	assert.Equal(t, "Aria", muses[0].Name)
}

func TestHashPassword(t *testing.T) {
	// sha256 hex digest, stable across calls.
	assert.Len(t, config.HashPassword("admin"), 64)
	assert.Equal(t, config.HashPassword("admin"), config.HashPassword("admin"))
	assert.NotEqual(t, config.HashPassword("admin"), config.HashPassword("Admin"))
}
