package meshing

// Mesh is a renderable triangle mesh in chunk-local space: flat position,
// normal and per-vertex color buffers plus a triangle index buffer. The
// renderer places it in the world by offsetting with the chunk transform.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Indices   []uint32
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// QuadCount is the number of merged quads; every quad contributes two
// triangles and four vertices.
func (m *Mesh) QuadCount() int {
	return len(m.Indices) / 6
}
