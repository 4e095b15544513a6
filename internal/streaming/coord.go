package streaming

import (
	"math"

	"github.com/MarvinIG/projectrube/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord identifies one cubic chunk of edge terrain.ChunkSize. It is
// the unique key for residency, pending-work and cache maps.
type ChunkCoord struct {
	X, Y, Z int
}

// WorldToChunk maps a world position to its containing chunk coordinate.
func WorldToChunk(p mgl32.Vec3) ChunkCoord {
	return ChunkCoord{
		X: floorDiv(int(math.Floor(float64(p.X()))), terrain.ChunkSize),
		Y: floorDiv(int(math.Floor(float64(p.Y()))), terrain.ChunkSize),
		Z: floorDiv(int(math.Floor(float64(p.Z()))), terrain.ChunkSize),
	}
}

// Origin is the minimum world-space corner of the chunk.
func (c ChunkCoord) Origin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X * terrain.ChunkSize),
		float32(c.Y * terrain.ChunkSize),
		float32(c.Z * terrain.ChunkSize),
	}
}

// RingDistance is the horizontal Chebyshev distance in chunk units.
// Vertical layers never influence LOD or eviction.
func (c ChunkCoord) RingDistance(o ChunkCoord) int {
	dx := abs(c.X - o.X)
	dz := abs(c.Z - o.Z)
	if dx > dz {
		return dx
	}
	return dz
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
