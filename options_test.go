package galaxy

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/gekko3d/galaxy/galaxyrt/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Flags(t *testing.T) {
	opts := Options{Width: 640, Height: 480}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-seed", "9", "-count", "300", "-height", "200", "-async"}))

	assert.Equal(t, uint64(9), opts.Seed)
	assert.Equal(t, 300, opts.Count)
	assert.Equal(t, 640, opts.Width)
	assert.Equal(t, 200, opts.Height)
	assert.True(t, opts.Async)
}

func TestOptions_Parameters(t *testing.T) {
	opts := Options{Count: -1}
	p, err := opts.Parameters()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultParameters(), p)

	preset := core.DefaultParameters()
	preset.Branches = 3
	file := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, SavePreset(file, preset))

	opts = Options{Preset: file, Count: 10}
	p, err = opts.Parameters()
	require.NoError(t, err)
	assert.Equal(t, 3, p.Branches)
	assert.Equal(t, 10, p.Count)

	opts = Options{Preset: filepath.Join(t.TempDir(), "missing.json"), Count: -1}
	_, err = opts.Parameters()
	assert.Error(t, err)
}

func TestOptions_SeededSourceIsReproducible(t *testing.T) {
	a := Options{Seed: 42}.Source()
	b := Options{Seed: 42}.Source()
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
