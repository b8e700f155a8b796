package programs

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindings(t *testing.T) {
	bindings, err := Bindings(Uniforms{})
	require.NoError(t, err)
	require.Len(t, bindings, 2)

	assert.Equal(t, Binding{Name: "time", Slot: 0, Type: Float, Field: 0}, bindings[0])
	assert.Equal(t, Binding{Name: "resolution", Slot: 1, Type: Vec2, Field: 1}, bindings[1])

	fromPtr, err := Bindings(&Uniforms{})
	require.NoError(t, err)
	assert.Equal(t, bindings, fromPtr)
}

func TestBindingsOrderedBySlot(t *testing.T) {
	type block struct {
		Colour mgl32.Vec4 `uniform:"colour" slot:"3"`
		Skip   int
		Scale  float32 `uniform:"scale" slot:"1"`
	}

	bindings, err := Bindings(block{})
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "scale", bindings[0].Name)
	assert.Equal(t, "colour", bindings[1].Name)
	assert.Equal(t, 0, bindings[1].Field)
}

func TestBindingsInvalid(t *testing.T) {
	type badSlot struct {
		Time float32 `uniform:"time" slot:"zero"`
	}
	type badType struct {
		Time float64 `uniform:"time" slot:"0"`
	}
	type sharedSlot struct {
		A float32 `uniform:"a" slot:"0"`
		B float32 `uniform:"b" slot:"0"`
	}

	for name, block := range map[string]any{
		"slot":       badSlot{},
		"type":       badType{},
		"sharedSlot": sharedSlot{},
		"notStruct":  1.5,
		"nil":        nil,
	} {
		_, err := Bindings(block)
		assert.Error(t, err, name)
	}
}

func TestCheckBindings(t *testing.T) {
	declared, err := Bindings(Uniforms{})
	require.NoError(t, err)

	matching := map[string]ActiveUniform{
		"time":       {Location: 0, Type: Float},
		"resolution": {Location: 1, Type: Vec2},
		"transform":  {Location: 2, Type: Mat4},
	}
	assert.NoError(t, CheckBindings(declared, matching))

	tests := map[string]map[string]ActiveUniform{
		"missing": {
			"time": {Location: 0, Type: Float},
		},
		"location": {
			"time":       {Location: 1, Type: Float},
			"resolution": {Location: 0, Type: Vec2},
		},
		"type": {
			"time":       {Location: 0, Type: Float},
			"resolution": {Location: 1, Type: Vec3},
		},
	}

	for name, active := range tests {
		err := CheckBindings(declared, active)
		assert.ErrorIs(t, err, ErrBindingMismatch, name)
	}
}

func TestUniformTypeString(t *testing.T) {
	assert.Equal(t, "vec2", Vec2.String())
	assert.Equal(t, "unknown", UniformType(99).String())
}
