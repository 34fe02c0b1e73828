package diorama

import "github.com/mokiat/gomath/dprec"

const (
	// frustumScale is the number of viewport pixels per world unit at zoom 1.
	frustumScale = 50.0

	DefaultMaxPixelRatio = 2.0
)

// Viewport describes the drawing surface in CSS pixels.
type Viewport struct {
	Width            int
	Height           int
	DevicePixelRatio float64
}

// PixelRatio returns the device pixel ratio capped at limit. A missing or
// invalid ratio counts as 1.
func (v Viewport) PixelRatio(limit float64) float64 {
	ratio := v.DevicePixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return min(ratio, limit)
}

// Camera is an orthographic camera. Projection parameters only take effect
// after UpdateProjection, which bumps ProjectionVersion.
type Camera struct {
	Node
	Left, Right       float64
	Top, Bottom       float64
	Near, Far         float64
	Zoom              float64
	Target            dprec.Vec3
	ProjectionVersion int
}

func NewCamera(viewport Viewport) *Camera {
	result := &Camera{
		Node: newNode("Camera"),
		Near: -500,
		Far:  1000,
		Zoom: 3.5,
	}
	result.Position = dprec.NewVec3(1.5, 1, 1.5)
	result.SetViewport(viewport)
	return result
}

// SetViewport recomputes the frustum for the given viewport and updates the
// projection.
func (c *Camera) SetViewport(viewport Viewport) {
	halfWidth := float64(viewport.Width) / frustumScale
	halfHeight := float64(viewport.Height) / frustumScale
	c.Left = -halfWidth
	c.Right = halfWidth
	c.Top = halfHeight
	c.Bottom = -halfHeight
	c.UpdateProjection()
}

func (c *Camera) UpdateProjection() {
	c.ProjectionVersion++
}

// Aspect returns the width to height ratio of the frustum.
func (c *Camera) Aspect() float64 {
	height := c.Top - c.Bottom
	if height == 0 {
		return 0
	}
	return (c.Right - c.Left) / height
}
