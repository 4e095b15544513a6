package terrain

// World layout constants. A chunk is a cube of ChunkSize world units;
// the world is WorldChunksY chunk layers tall.
const (
	ChunkSize    = 16
	MaxHeight    = 128
	WorldChunksY = MaxHeight / ChunkSize

	// Skirt is the extra border around the working cells so the mesher
	// can read neighbor occupancy without cross-chunk lookups. One voxel
	// below/left plus two above/right of the working range.
	Skirt = 1
	pad   = 3
)

// Grid is a dense voxel volume for one chunk at one LOD, padded by the
// skirt on every face. It is an arena-style flat array with a fixed
// row-major linearization; the dimensions never change after
// construction.
type Grid struct {
	Dim int // voxels per axis, including padding
	Lod int

	blocks []BlockType
}

// NewGrid allocates an all-Empty grid for the given LOD tier.
func NewGrid(lod int) *Grid {
	dim := ChunkSize/lod + pad
	return &Grid{
		Dim:    dim,
		Lod:    lod,
		blocks: make([]BlockType, dim*dim*dim),
	}
}

// WorkingSize is the number of cells per axis that belong to the chunk
// itself, i.e. the grid minus its skirt.
func (g *Grid) WorkingSize() int {
	return ChunkSize / g.Lod
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.Dim+y)*g.Dim + z
}

// At returns the block at padded-local coordinates. Out-of-range reads
// yield Empty, matching open space beyond the skirt.
func (g *Grid) At(x, y, z int) BlockType {
	if x < 0 || y < 0 || z < 0 || x >= g.Dim || y >= g.Dim || z >= g.Dim {
		return Empty
	}
	return g.blocks[g.index(x, y, z)]
}

// Set writes the block at padded-local coordinates. Out-of-range writes
// are dropped silently; decorations spilling into a neighboring chunk
// are clipped, not merged across chunks.
func (g *Grid) Set(x, y, z int, b BlockType) {
	if x < 0 || y < 0 || z < 0 || x >= g.Dim || y >= g.Dim || z >= g.Dim {
		return
	}
	g.blocks[g.index(x, y, z)] = b
}

// Equal reports whether two grids hold bit-identical volumes.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Dim != other.Dim || g.Lod != other.Lod {
		return false
	}
	for i := range g.blocks {
		if g.blocks[i] != other.blocks[i] {
			return false
		}
	}
	return true
}
