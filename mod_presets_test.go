package galaxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetRoundTrip(t *testing.T) {
	p := core.DefaultParameters()
	p.Count = 1234
	p.Spin = -0.5
	p.InsideColor = "#abcdef"
	p.Randomness = 0.9

	file := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, SavePreset(file, p))

	loaded, err := LoadPreset(file)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestSavePreset_RejectsInvalid(t *testing.T) {
	p := core.DefaultParameters()
	p.SunScale = -1

	file := filepath.Join(t.TempDir(), "preset.json")
	err := SavePreset(file, p)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, statErr := os.Stat(file)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDecodePreset_MissingFieldsKeepDefaults(t *testing.T) {
	p, err := DecodePreset([]byte(`{"count": 10, "branches": 3}`))
	require.NoError(t, err)

	want := core.DefaultParameters()
	want.Count = 10
	want.Branches = 3
	assert.Equal(t, want, p)
}

func TestDecodePreset_UnknownField(t *testing.T) {
	_, err := DecodePreset([]byte(`{"count": 10, "stars": 3}`))
	assert.ErrorContains(t, err, "decode preset")
}

func TestDecodePreset_InvalidValue(t *testing.T) {
	_, err := DecodePreset([]byte(`{"outsideColor": "blue-ish"}`))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestDecodePreset_CountBeyondLimit(t *testing.T) {
	_, err := DecodePreset([]byte(`{"count": 4611686018427387904}`))
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestLoadPreset_MissingFile(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
