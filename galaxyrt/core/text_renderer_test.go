package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer_Atlas(t *testing.T) {
	tr, err := NewPanelTextRenderer(18)
	require.NoError(t, err)

	for _, r := range "Stars Number 50000 #ff6030" {
		_, ok := tr.Glyphs[r]
		assert.True(t, ok, "missing glyph %q", r)
	}
	assert.Greater(t, tr.LineHeight(1), float32(0))
}

func TestTextRenderer_BuildVertices(t *testing.T) {
	tr, err := NewPanelTextRenderer(18)
	require.NoError(t, err)

	verts := tr.BuildVertices([]TextItem{{Text: "ab\ncd", Position: [2]float32{10, 10}, Scale: 1, Color: [4]float32{1, 1, 1, 1}}}, 800, 600)
	assert.Len(t, verts, 4*6)
	for _, v := range verts {
		assert.GreaterOrEqual(t, v.Pos[0], float32(-1))
		assert.LessOrEqual(t, v.Pos[0], float32(1))
	}

	assert.Nil(t, tr.BuildVertices([]TextItem{{Text: "x"}}, 0, 0))
}

func TestNewTextRenderer_BadFont(t *testing.T) {
	_, err := NewTextRenderer([]byte("not a font"), 12)
	assert.Error(t, err)
}
