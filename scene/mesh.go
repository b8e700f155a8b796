package scene

// Mesh is a list of 2D triangle vertices.
type Mesh struct {
	Vertices []float32
}

func (m *Mesh) VertexCount() int32 {
	return int32(len(m.Vertices) / 2)
}

var unitRectangle = &Mesh{
	Vertices: []float32{
		-0.5, -0.5,
		0.5, -0.5,
		0.5, 0.5,

		-0.5, -0.5,
		0.5, 0.5,
		-0.5, 0.5,
	},
}

// UnitRectangle returns the shared 1x1 rectangle centred on the origin.
// It must not be modified.
func UnitRectangle() *Mesh {
	return unitRectangle
}
