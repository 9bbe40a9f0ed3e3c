package bspmesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // radians
	Near   float64
	Far    float64
}

func NewCameraLookAt(eye, target, up mgl64.Vec3) *Camera {
	dist := eye.Sub(target).Len()
	if dist < 1 {
		dist = 1
	}
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     up,
		FovY:   mgl64.DegToRad(45),
		Near:   dist / 100,
		Far:    dist * 10,
	}
}

// FitCamera places a camera above and to the side of b, far enough back that
// the whole box is in view.
func FitCamera(b Bounds) *Camera {
	radius := b.Size().Len() / 2
	if radius < 1e-6 {
		radius = 1
	}
	fov := mgl64.DegToRad(45)
	dist := radius / math.Sin(fov/2) * 1.1
	dir := mgl64.Vec3{1, 0.8, 1.4}.Normalize()
	c := NewCameraLookAt(b.Center().Add(dir.Mul(dist)), b.Center(), mgl64.Vec3{0, 1, 0})
	c.Near = (dist - radius) / 10
	c.Far = dist + radius*4
	return c
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// Project maps p to pixel coordinates of a w by h image, y pointing down.
// depth is the distance along the view direction. ok is false for points
// closer than the near plane.
func (c *Camera) Project(p mgl64.Vec3, w, h int) (x, y, depth float64, ok bool) {
	return projectWith(c.Projection(float64(w)/float64(h)).Mul4(c.View()), c.Near, p, w, h)
}

// Projector returns Project bound to one image size, so the matrices are
// built once per frame.
func (c *Camera) Projector(w, h int) func(p mgl64.Vec3) (float64, float64, float64, bool) {
	m := c.Projection(float64(w) / float64(h)).Mul4(c.View())
	return func(p mgl64.Vec3) (float64, float64, float64, bool) {
		return projectWith(m, c.Near, p, w, h)
	}
}

func projectWith(m mgl64.Mat4, near float64, p mgl64.Vec3, w, h int) (x, y, depth float64, ok bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip[3] < near {
		return 0, 0, clip[3], false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x = (ndc[0] + 1) / 2 * float64(w)
	y = (1 - ndc[1]) / 2 * float64(h)
	return x, y, clip[3], true
}

// Orbit swings the eye around the target by yaw radians about Up and pitch
// radians about the camera's right axis. Pitch stops short of looking
// straight along Up.
func (c *Camera) Orbit(yaw, pitch float64) {
	up := c.Up.Normalize()
	offset := mgl64.QuatRotate(yaw, up).Rotate(c.Eye.Sub(c.Target))

	right := normalize(offset.Cross(up))
	if right != (mgl64.Vec3{}) {
		pitched := mgl64.QuatRotate(pitch, right).Rotate(offset)
		if math.Abs(pitched.Normalize().Dot(up)) < 0.99 {
			offset = pitched
		}
	}
	c.Eye = c.Target.Add(offset)
}

// Zoom scales the eye's distance from the target by factor.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Eye = c.Target.Add(c.Eye.Sub(c.Target).Mul(factor))
}
