package terrain

import "github.com/go-gl/mathgl/mgl32"

// BlockType is the closed set of voxel variants. Empty is the only
// non-solid kind; everything else is an opaque solid consumed by meshing.
type BlockType uint8

const (
	Empty BlockType = iota
	Grass
	Dirt
	Stone
	Wood
	Leaf
	Snow
)

// Solid reports whether the block occludes faces during meshing.
func (b BlockType) Solid() bool {
	return b != Empty
}

func (b BlockType) String() string {
	switch b {
	case Empty:
		return "Empty"
	case Grass:
		return "Grass"
	case Dirt:
		return "Dirt"
	case Stone:
		return "Stone"
	case Wood:
		return "Wood"
	case Leaf:
		return "Leaf"
	case Snow:
		return "Snow"
	default:
		return "Unknown"
	}
}

// Color returns the fixed face color for the block. Empty maps to black;
// it never reaches the mesher output.
func (b BlockType) Color() mgl32.Vec3 {
	switch b {
	case Grass:
		return mgl32.Vec3{0.33, 0.55, 0.18}
	case Dirt:
		return mgl32.Vec3{0.45, 0.32, 0.18}
	case Stone:
		return mgl32.Vec3{0.52, 0.52, 0.55}
	case Wood:
		return mgl32.Vec3{0.40, 0.26, 0.12}
	case Leaf:
		return mgl32.Vec3{0.16, 0.38, 0.12}
	case Snow:
		return mgl32.Vec3{0.92, 0.94, 0.96}
	default:
		return mgl32.Vec3{0, 0, 0}
	}
}
