package programs

import "fmt"

// Program is the source and uniform layout of a material ready for compilation.
type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	Bindings       []Binding
}

// Build resolves the shader sources of a material and the slot layout of its uniform block.
func Build(material Material, uniforms any) (Program, error) {
	vertex, err := ShaderRef{FS: Shaders, Path: QuadVertexShader}.Source()
	if err != nil {
		return Program{}, err
	}

	ref := material.FragmentShader()
	fragment, err := ref.Source()
	if err != nil {
		return Program{}, err
	}

	bindings, err := Bindings(uniforms)
	if err != nil {
		return Program{}, fmt.Errorf("%w: %v", ErrBindingMismatch, err)
	}

	return Program{
		Name:           ref.String(),
		VertexShader:   vertex,
		FragmentShader: fragment,
		Bindings:       bindings,
	}, nil
}
