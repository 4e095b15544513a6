package meshing

import (
	"github.com/MarvinIG/projectrube/internal/terrain"
)

// faceDir is one of the six canonical face directions.
type faceDir struct {
	axis int // 0=X, 1=Y, 2=Z
	sign int // +1 or -1
	nx   float32
	ny   float32
	nz   float32
}

var faceDirs = [6]faceDir{
	{0, +1, 1, 0, 0},
	{0, -1, -1, 0, 0},
	{1, +1, 0, 1, 0},
	{1, -1, 0, -1, 0},
	{2, +1, 0, 0, 1},
	{2, -1, 0, 0, -1},
}

// cell maps (layer, u, v) in a direction's sweep space back to padded
// grid coordinates. The in-plane axes follow a fixed order per axis:
// X → (Y,Z), Y → (X,Z), Z → (X,Y).
func (d faceDir) cell(a, u, v int) (int, int, int) {
	switch d.axis {
	case 0:
		return a, u, v
	case 1:
		return u, a, v
	default:
		return u, v, a
	}
}

// BuildGreedy converts a padded voxel grid into a merged-quad surface
// mesh. Adjacent coplanar faces of voxels with the same block type are
// combined into the largest possible rectangle; every quad carries the
// fixed palette color of the block at its minimum corner. Faces are only
// emitted on solid/empty boundaries of working cells; the skirt is read
// for neighbor occupancy and never meshed itself. Deterministic for a
// given grid.
func BuildGreedy(g *terrain.Grid) *Mesh {
	mesh := &Mesh{}
	for _, dir := range faceDirs {
		buildDirection(g, dir, mesh)
	}
	return mesh
}

func buildDirection(g *terrain.Grid, dir faceDir, mesh *Mesh) {
	size := g.WorkingSize()

	// One mask per layer along the sweep axis; mask cells hold the block
	// type whose face is visible, Empty where nothing is emitted.
	mask := make([]terrain.BlockType, size*size)

	for a := terrain.Skirt; a < terrain.Skirt+size; a++ {
		for i := range mask {
			mask[i] = terrain.Empty
		}
		for u := terrain.Skirt; u < terrain.Skirt+size; u++ {
			for v := terrain.Skirt; v < terrain.Skirt+size; v++ {
				x, y, z := dir.cell(a, u, v)
				b := g.At(x, y, z)
				if !b.Solid() {
					continue
				}
				nxc, nyc, nzc := dir.cell(a+dir.sign, u, v)
				if g.At(nxc, nyc, nzc).Solid() {
					continue
				}
				mask[(u-terrain.Skirt)*size+(v-terrain.Skirt)] = b
			}
		}
		greedyMergeLayer(g, dir, a, mask, size, mesh)
	}
}

// greedyMergeLayer merges the layer mask into maximal rectangles and
// emits one quad per rectangle, consuming the mask as it goes.
func greedyMergeLayer(g *terrain.Grid, dir faceDir, a int, mask []terrain.BlockType, size int, mesh *Mesh) {
	i := 0
	for i < size*size {
		b := mask[i]
		if b == terrain.Empty {
			i++
			continue
		}
		u0 := i / size
		v0 := i % size

		// Grow along v first, then along u while every row cell matches.
		width := 1
		for v1 := v0 + 1; v1 < size && mask[u0*size+v1] == b; v1++ {
			width++
		}
		height := 1
	grow:
		for u1 := u0 + 1; u1 < size; u1++ {
			for v1 := v0; v1 < v0+width; v1++ {
				if mask[u1*size+v1] != b {
					break grow
				}
			}
			height++
		}

		emitQuad(g, dir, a, u0+terrain.Skirt, v0+terrain.Skirt, width, height, b, mesh)

		for uu := u0; uu < u0+height; uu++ {
			for vv := v0; vv < v0+width; vv++ {
				mask[uu*size+vv] = terrain.Empty
			}
		}
	}
}

// emitQuad appends four vertices and two CCW triangles for a merged
// rectangle. Coordinates are shifted by the skirt and scaled by the LOD
// edge length so vertex positions land in [0, ChunkSize] local space.
func emitQuad(g *terrain.Grid, dir faceDir, a, u0, v0, width, height int, b terrain.BlockType, mesh *Mesh) {
	plane := a
	if dir.sign > 0 {
		plane = a + 1
	}

	u1 := u0 + height
	v1 := v0 + width

	// Corner order gives counter-clockwise winding for the outward
	// normal in every direction.
	var corners [4][3]int
	switch {
	case dir.axis == 0 && dir.sign > 0:
		corners = quadCorners(dir, plane, [4][2]int{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}})
	case dir.axis == 0:
		corners = quadCorners(dir, plane, [4][2]int{{u0, v0}, {u0, v1}, {u1, v1}, {u1, v0}})
	case dir.axis == 1 && dir.sign > 0:
		corners = quadCorners(dir, plane, [4][2]int{{u0, v0}, {u0, v1}, {u1, v1}, {u1, v0}})
	case dir.axis == 1:
		corners = quadCorners(dir, plane, [4][2]int{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}})
	case dir.sign > 0:
		corners = quadCorners(dir, plane, [4][2]int{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}})
	default:
		corners = quadCorners(dir, plane, [4][2]int{{u0, v0}, {u0, v1}, {u1, v1}, {u1, v0}})
	}

	base := uint32(mesh.VertexCount())
	color := b.Color()
	lod := float32(g.Lod)

	for _, c := range corners {
		mesh.Positions = append(mesh.Positions,
			float32(c[0]-terrain.Skirt)*lod,
			float32(c[1]-terrain.Skirt)*lod,
			float32(c[2]-terrain.Skirt)*lod,
		)
		mesh.Normals = append(mesh.Normals, dir.nx, dir.ny, dir.nz)
		mesh.Colors = append(mesh.Colors, color.X(), color.Y(), color.Z())
	}
	mesh.Indices = append(mesh.Indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)
}

func quadCorners(dir faceDir, plane int, uv [4][2]int) [4][3]int {
	var out [4][3]int
	for i, p := range uv {
		x, y, z := dir.cell(plane, p[0], p[1])
		out[i] = [3]int{x, y, z}
	}
	return out
}
