package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_SetKeyEdges(t *testing.T) {
	input := &Input{}

	input.SetKey(KeyLeft, true)
	assert.True(t, input.Pressed[KeyLeft])
	assert.True(t, input.JustPressed[KeyLeft])
	assert.False(t, input.JustReleased[KeyLeft])

	input.SetKey(KeyLeft, true)
	assert.True(t, input.Pressed[KeyLeft])
	assert.False(t, input.JustPressed[KeyLeft])

	input.SetKey(KeyLeft, false)
	assert.False(t, input.Pressed[KeyLeft])
	assert.True(t, input.JustReleased[KeyLeft])

	input.SetKey(KeyLeft, false)
	assert.False(t, input.JustReleased[KeyLeft])
}

func TestInput_MoveMouse(t *testing.T) {
	input := &Input{}
	input.MoveMouse(10, 20)
	input.MoveMouse(15, 12)

	assert.Equal(t, 15.0, input.MouseX)
	assert.Equal(t, 12.0, input.MouseY)
	assert.Equal(t, 5.0, input.MouseDeltaX)
	assert.Equal(t, -8.0, input.MouseDeltaY)
}

func TestInput_EveryKeyHasGlfwBinding(t *testing.T) {
	for key := KeyUp; key < MouseButtonLeft; key++ {
		_, ok := keyToGlfw[key]
		assert.True(t, ok, "key %d", key)
	}
}
