package culling

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 4.0/3.0, 0.1, 1000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return FromViewProjection(proj.Mul4(view))
}

func TestPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		l := p.Normal.Len()
		if l < 0.999 || l > 1.001 {
			t.Errorf("Plane %d normal not unit length: %f", i, l)
		}
	}
}

func TestSphereInFront(t *testing.T) {
	f := testFrustum()
	if !f.IntersectsSphere(mgl32.Vec3{0, 0, -50}, 1) {
		t.Error("Sphere straight ahead should intersect")
	}
}

func TestSphereBehind(t *testing.T) {
	f := testFrustum()
	if f.IntersectsSphere(mgl32.Vec3{0, 0, 50}, 1) {
		t.Error("Sphere behind the camera should not intersect")
	}
}

func TestSphereBeyondFar(t *testing.T) {
	f := testFrustum()
	if f.IntersectsSphere(mgl32.Vec3{0, 0, -5000}, 1) {
		t.Error("Sphere past the far plane should not intersect")
	}
}

func TestSphereStraddlingPlane(t *testing.T) {
	f := testFrustum()
	// Far off to the left but with a radius large enough to reach back in.
	if !f.IntersectsSphere(mgl32.Vec3{-100, 0, -50}, 200) {
		t.Error("Large sphere straddling the left plane should intersect")
	}
}

func TestAABBInFront(t *testing.T) {
	f := testFrustum()
	if !f.IntersectsAABB(mgl32.Vec3{-8, -8, -60}, mgl32.Vec3{8, 8, -44}) {
		t.Error("Box straight ahead should intersect")
	}
}

func TestAABBBehind(t *testing.T) {
	f := testFrustum()
	if f.IntersectsAABB(mgl32.Vec3{-8, -8, 44}, mgl32.Vec3{8, 8, 60}) {
		t.Error("Box behind the camera should not intersect")
	}
}

func TestAABBStraddlingNearPlane(t *testing.T) {
	f := testFrustum()
	if !f.IntersectsAABB(mgl32.Vec3{-1, -1, -5}, mgl32.Vec3{1, 1, 5}) {
		t.Error("Box straddling the near plane should intersect")
	}
}
