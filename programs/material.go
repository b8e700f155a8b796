package programs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

const (
	QuadVertexShader    = "shaders/quad.vert"
	ShadeFragmentShader = "shaders/shade.frag"
)

//go:embed shaders
var Shaders embed.FS

// ShaderRef points at shader source inside a filesystem.
type ShaderRef struct {
	FS   fs.FS
	Path string
}

func (r ShaderRef) String() string {
	return r.Path
}

// Source reads the referenced shader source.
func (r ShaderRef) Source() (string, error) {
	if r.FS == nil || r.Path == "" {
		return "", errors.New("empty shader reference")
	}

	source, err := fs.ReadFile(r.FS, r.Path)
	if err != nil {
		return "", fmt.Errorf("reading shader %v failed: %w", r.Path, err)
	}
	return string(source), nil
}

// Material is a surface drawn by a fragment shader.
type Material interface {
	FragmentShader() ShaderRef
}

var _ Material = (*ShadeMaterial)(nil)

// ShadeMaterial is the full-screen effect material.
// A zero Shader uses the embedded shade.frag.
type ShadeMaterial struct {
	Uniforms
	Shader ShaderRef
}

func (m *ShadeMaterial) FragmentShader() ShaderRef {
	if m.Shader.Path == "" {
		return ShaderRef{FS: Shaders, Path: ShadeFragmentShader}
	}
	return m.Shader
}
