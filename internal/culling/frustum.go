package culling

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum is the six camera planes, normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// FromViewProjection extracts the frustum planes from a combined
// view-projection matrix (Gribb/Hartmann row combinations).
func FromViewProjection(vp mgl32.Mat4) Frustum {
	var frustum Frustum

	// Left
	frustum.Planes[0] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8]},
		Distance: vp[15] + vp[12],
	}
	// Right
	frustum.Planes[1] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8]},
		Distance: vp[15] - vp[12],
	}
	// Bottom
	frustum.Planes[2] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9]},
		Distance: vp[15] + vp[13],
	}
	// Top
	frustum.Planes[3] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9]},
		Distance: vp[15] - vp[13],
	}
	// Near
	frustum.Planes[4] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10]},
		Distance: vp[15] + vp[14],
	}
	// Far
	frustum.Planes[5] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10]},
		Distance: vp[15] - vp[14],
	}

	for i := 0; i < 6; i++ {
		length := frustum.Planes[i].Normal.Len()
		frustum.Planes[i].Normal = frustum.Planes[i].Normal.Mul(1.0 / length)
		frustum.Planes[i].Distance /= length
	}

	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsAABB tests an axis-aligned box against the frustum. The box
// is outside only when its most favorable corner is behind some plane,
// so the test can report intersection for a few fully-outside boxes near
// frustum corners; that conservatism only ever shows extra chunks.
func (f *Frustum) IntersectsAABB(min, max mgl32.Vec3) bool {
	for _, plane := range f.Planes {
		corner := mgl32.Vec3{min.X(), min.Y(), min.Z()}
		if plane.Normal.X() >= 0 {
			corner[0] = max.X()
		}
		if plane.Normal.Y() >= 0 {
			corner[1] = max.Y()
		}
		if plane.Normal.Z() >= 0 {
			corner[2] = max.Z()
		}
		if plane.DistanceToPoint(corner) < 0 {
			return false
		}
	}
	return true
}
