package meshing

import (
	"testing"

	"github.com/MarvinIG/projectrube/internal/terrain"
)

// faceKey identifies one unit face: the direction index plus the padded
// coordinates of the solid cell it belongs to.
type faceKey struct {
	dir     int
	x, y, z int
}

// coveredFaces decomposes a mesh back into the set of unit faces its
// quads cover, in padded grid units.
func coveredFaces(t *testing.T, m *Mesh, lod int) map[faceKey]bool {
	t.Helper()
	faces := make(map[faceKey]bool)

	for q := 0; q < m.QuadCount(); q++ {
		base := q * 4

		dirIdx := -1
		nx, ny, nz := m.Normals[base*3], m.Normals[base*3+1], m.Normals[base*3+2]
		for i, d := range faceDirs {
			if d.nx == nx && d.ny == ny && d.nz == nz {
				dirIdx = i
				break
			}
		}
		if dirIdx < 0 {
			t.Fatalf("Quad %d has non-canonical normal (%f,%f,%f)", q, nx, ny, nz)
		}
		dir := faceDirs[dirIdx]

		var lo, hi [3]int
		for v := 0; v < 4; v++ {
			for axis := 0; axis < 3; axis++ {
				p := m.Positions[(base+v)*3+axis]
				unit := int(p)/lod + terrain.Skirt
				if float32(int(p)) != p || int(p)%lod != 0 {
					t.Fatalf("Quad %d vertex not on the lod lattice: %f", q, p)
				}
				if v == 0 || unit < lo[axis] {
					lo[axis] = unit
				}
				if v == 0 || unit > hi[axis] {
					hi[axis] = unit
				}
			}
		}

		if lo[dir.axis] != hi[dir.axis] {
			t.Fatalf("Quad %d is not coplanar on its normal axis", q)
		}
		layer := lo[dir.axis]
		if dir.sign > 0 {
			layer--
		}

		u, v := inPlaneAxes(dir.axis)
		for cu := lo[u]; cu < hi[u]; cu++ {
			for cv := lo[v]; cv < hi[v]; cv++ {
				var cell [3]int
				cell[dir.axis] = layer
				cell[u] = cu
				cell[v] = cv
				key := faceKey{dirIdx, cell[0], cell[1], cell[2]}
				if faces[key] {
					t.Fatalf("Unit face covered twice: %+v", key)
				}
				faces[key] = true
			}
		}
	}
	return faces
}

func inPlaneAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// expectedFaces enumerates solid/empty boundaries of working cells
// straight from the grid.
func expectedFaces(g *terrain.Grid) map[faceKey]bool {
	faces := make(map[faceKey]bool)
	size := g.WorkingSize()
	for i, dir := range faceDirs {
		for x := terrain.Skirt; x < terrain.Skirt+size; x++ {
			for y := terrain.Skirt; y < terrain.Skirt+size; y++ {
				for z := terrain.Skirt; z < terrain.Skirt+size; z++ {
					if !g.At(x, y, z).Solid() {
						continue
					}
					var n [3]int
					n[0], n[1], n[2] = x, y, z
					n[dir.axis] += dir.sign
					if g.At(n[0], n[1], n[2]).Solid() {
						continue
					}
					faces[faceKey{i, x, y, z}] = true
				}
			}
		}
	}
	return faces
}

func assertCoverageMatches(t *testing.T, g *terrain.Grid) {
	t.Helper()
	mesh := BuildGreedy(g)
	got := coveredFaces(t, mesh, g.Lod)
	want := expectedFaces(g)

	if len(got) != len(want) {
		t.Fatalf("Covered %d unit faces, expected %d", len(got), len(want))
	}
	for key := range want {
		if !got[key] {
			t.Fatalf("Missing unit face %+v", key)
		}
	}
}

func TestEmptyGridProducesEmptyMesh(t *testing.T) {
	mesh := BuildGreedy(terrain.NewGrid(1))
	if mesh.VertexCount() != 0 || mesh.TriangleCount() != 0 {
		t.Errorf("Empty grid meshed to %d vertices", mesh.VertexCount())
	}
}

func TestSingleVoxel(t *testing.T) {
	g := terrain.NewGrid(1)
	g.Set(5, 5, 5, terrain.Grass)

	mesh := BuildGreedy(g)
	if mesh.QuadCount() != 6 {
		t.Fatalf("Single voxel should emit 6 quads, got %d", mesh.QuadCount())
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("Expected 12 triangles, got %d", mesh.TriangleCount())
	}

	grass := terrain.Grass.Color()
	for i := 0; i < mesh.VertexCount(); i++ {
		if mesh.Colors[i*3] != grass.X() || mesh.Colors[i*3+1] != grass.Y() || mesh.Colors[i*3+2] != grass.Z() {
			t.Fatal("Single grass voxel should carry the grass palette color")
		}
	}
	assertCoverageMatches(t, g)
}

func TestFullSlabMergesToSixQuads(t *testing.T) {
	g := terrain.NewGrid(1)
	size := g.WorkingSize()
	for x := terrain.Skirt; x < terrain.Skirt+size; x++ {
		for z := terrain.Skirt; z < terrain.Skirt+size; z++ {
			g.Set(x, 3, z, terrain.Stone)
		}
	}

	mesh := BuildGreedy(g)
	// One maximal rectangle per face of the slab.
	if mesh.QuadCount() != 6 {
		t.Errorf("Uniform slab should merge to 6 quads, got %d", mesh.QuadCount())
	}
	assertCoverageMatches(t, g)
}

func TestNoFacesBetweenSolidVoxels(t *testing.T) {
	g := terrain.NewGrid(1)
	g.Set(4, 4, 4, terrain.Stone)
	g.Set(5, 4, 4, terrain.Stone)

	mesh := BuildGreedy(g)
	// Two touching cubes share one hidden face pair: 10 quads, not 12.
	if mesh.QuadCount() != 10 {
		t.Errorf("Expected 10 quads for a 2-voxel bar, got %d", mesh.QuadCount())
	}
	assertCoverageMatches(t, g)
}

func TestSkirtIsNeverMeshed(t *testing.T) {
	g := terrain.NewGrid(1)
	// Fill only skirt cells; nothing inside the working volume.
	for i := 0; i < g.Dim; i++ {
		for j := 0; j < g.Dim; j++ {
			g.Set(0, i, j, terrain.Stone)
			g.Set(i, j, g.Dim-1, terrain.Stone)
		}
	}

	mesh := BuildGreedy(g)
	if mesh.VertexCount() != 0 {
		t.Errorf("Skirt-only grid emitted %d vertices", mesh.VertexCount())
	}
}

func TestSkirtOccludesBoundaryFaces(t *testing.T) {
	g := terrain.NewGrid(1)
	// A solid working cell against a solid skirt neighbor: the outward
	// face toward the skirt must not be emitted.
	g.Set(terrain.Skirt, 4, 4, terrain.Stone)
	g.Set(terrain.Skirt-1, 4, 4, terrain.Stone)

	mesh := BuildGreedy(g)
	if mesh.QuadCount() != 5 {
		t.Errorf("Expected 5 quads with one face occluded by the skirt, got %d", mesh.QuadCount())
	}
	assertCoverageMatches(t, g)
}

func TestMergeStopsAtBlockTypeChange(t *testing.T) {
	g := terrain.NewGrid(1)
	g.Set(4, 4, 4, terrain.Grass)
	g.Set(4, 4, 5, terrain.Dirt)

	mesh := BuildGreedy(g)
	// Top faces cannot merge across the type change.
	grass := terrain.Grass.Color()
	dirt := terrain.Dirt.Color()
	seenGrass, seenDirt := false, false
	for i := 0; i < mesh.VertexCount(); i++ {
		c := [3]float32{mesh.Colors[i*3], mesh.Colors[i*3+1], mesh.Colors[i*3+2]}
		if c == [3]float32{grass.X(), grass.Y(), grass.Z()} {
			seenGrass = true
		}
		if c == [3]float32{dirt.X(), dirt.Y(), dirt.Z()} {
			seenDirt = true
		}
	}
	if !seenGrass || !seenDirt {
		t.Error("Both palette colors should appear in the mesh")
	}
	assertCoverageMatches(t, g)
}

func TestGeneratedChunkCoverage(t *testing.T) {
	gen := terrain.NewGenerator(terrain.DefaultGeneratorConfig())
	for _, lod := range []int{1, 2} {
		grid := gen.Generate(2, 2, -1, lod)
		assertCoverageMatches(t, grid)
	}
}

func TestMeshingIdempotent(t *testing.T) {
	gen := terrain.NewGenerator(terrain.DefaultGeneratorConfig())
	grid := gen.Generate(0, 2, 0, 1)

	a := BuildGreedy(grid)
	b := BuildGreedy(grid)

	fa := coveredFaces(t, a, grid.Lod)
	fb := coveredFaces(t, b, grid.Lod)
	if len(fa) != len(fb) {
		t.Fatalf("Re-meshing covered %d faces vs %d", len(fb), len(fa))
	}
	for key := range fa {
		if !fb[key] {
			t.Fatalf("Re-meshing lost unit face %+v", key)
		}
	}
}

func TestVertexBounds(t *testing.T) {
	gen := terrain.NewGenerator(terrain.DefaultGeneratorConfig())
	for _, lod := range []int{1, 2} {
		mesh := BuildGreedy(gen.Generate(-3, 1, 4, lod))
		for i := 0; i < len(mesh.Positions); i++ {
			p := mesh.Positions[i]
			if p < 0 || p > terrain.ChunkSize {
				t.Fatalf("Vertex component %f outside [0, %d] at lod %d", p, terrain.ChunkSize, lod)
			}
		}
		if mesh.TriangleCount() != 2*mesh.QuadCount() {
			t.Errorf("Triangle count should be twice the quad count")
		}
		if len(mesh.Indices)%6 != 0 {
			t.Errorf("Index buffer should hold whole quads")
		}
	}
}
