package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSingleRenderer(t *testing.T) {
	app := NewApp()
	ensureSingleRenderer(app, RendererSoftware)

	tag, ok := Resource[RendererTag](app)
	require.True(t, ok)
	assert.Equal(t, RendererSoftware, tag.Name)

	// installing the same renderer again is allowed
	assert.NotPanics(t, func() { ensureSingleRenderer(app, RendererSoftware) })
	assert.PanicsWithValue(t, "Multiple renderers installed: software and webgpu", func() {
		ensureSingleRenderer(app, RendererWebGPU)
	})
}

func TestEnsureSingleRenderer_NilApp(t *testing.T) {
	assert.Panics(t, func() { ensureSingleRenderer(nil, RendererWebGPU) })
}
