package diorama

import (
	"math"
	"time"

	"github.com/mokiat/gomath/dprec"
)

const polarEpsilon = 1e-6

// OrbitController rotates a camera around a fixed target on a sphere. Pan
// and zoom are not supported; the radius stays at its initial value.
type OrbitController struct {
	Target dprec.Vec3

	// MinPolar and MaxPolar bound the angle measured from the up axis.
	MinPolar dprec.Angle
	MaxPolar dprec.Angle

	RotateSpeed float64

	AutoRotate bool
	// AutoRotateSpeed of 1 completes a turn every 60 seconds.
	AutoRotateSpeed float64

	radius  float64
	azimuth dprec.Angle
	polar   dprec.Angle

	deltaAzimuth dprec.Angle
	deltaPolar   dprec.Angle
	dragging     bool
}

// NewOrbitController derives the spherical coordinates from the camera's
// current position relative to the origin.
func NewOrbitController(camera *Camera) *OrbitController {
	result := &OrbitController{
		Target:          camera.Target,
		MinPolar:        dprec.Radians(math.Pi / 3),
		MaxPolar:        dprec.Radians(math.Pi / 3),
		RotateSpeed:     1,
		AutoRotate:      true,
		AutoRotateSpeed: 2,
	}
	offset := dprec.Vec3Diff(camera.Position, result.Target)
	result.radius = offset.Length()
	if result.radius > 0 {
		result.azimuth = dprec.Radians(math.Atan2(offset.X, offset.Z))
		cos := max(-1, min(1, offset.Y/result.radius))
		result.polar = dprec.Radians(math.Acos(cos))
	}
	return result
}

func (c *OrbitController) Radius() float64 {
	return c.radius
}

func (c *OrbitController) Azimuth() dprec.Angle {
	return c.azimuth
}

func (c *OrbitController) Polar() dprec.Angle {
	return c.polar
}

func (c *OrbitController) Dragging() bool {
	return c.dragging
}

func (c *OrbitController) BeginDrag() {
	c.dragging = true
}

func (c *OrbitController) EndDrag() {
	c.dragging = false
}

// HandleDrag queues a rotation for a pointer movement of dx, dy pixels on a
// surface that is height pixels tall. A drag across the full height turns
// the camera once.
func (c *OrbitController) HandleDrag(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	turn := 2 * math.Pi * c.RotateSpeed / float64(height)
	c.deltaAzimuth -= dprec.Radians(turn * dx)
	c.deltaPolar -= dprec.Radians(turn * dy)
}

// Update applies queued rotation and auto rotation for the elapsed time and
// moves the camera. It reports whether the camera moved.
func (c *OrbitController) Update(camera *Camera, elapsed time.Duration) bool {
	if c.AutoRotate && !c.dragging {
		c.deltaAzimuth -= c.autoRotateAngle(elapsed)
	}

	azimuth := c.azimuth + c.deltaAzimuth
	polar := c.polar + c.deltaPolar
	polar = max(c.MinPolar, min(c.MaxPolar, polar))
	polar = max(dprec.Radians(polarEpsilon), min(dprec.Radians(math.Pi-polarEpsilon), polar))
	c.deltaAzimuth = 0
	c.deltaPolar = 0

	sinPolar := math.Sin(polar.Radians())
	position := dprec.Vec3Sum(c.Target, dprec.NewVec3(
		c.radius*sinPolar*math.Sin(azimuth.Radians()),
		c.radius*math.Cos(polar.Radians()),
		c.radius*sinPolar*math.Cos(azimuth.Radians()),
	))

	changed := azimuth != c.azimuth || polar != c.polar || camera.Position != position
	c.azimuth = azimuth
	c.polar = polar
	camera.Position = position
	camera.Target = c.Target
	return changed
}

func (c *OrbitController) autoRotateAngle(elapsed time.Duration) dprec.Angle {
	return dprec.Radians(2 * math.Pi / 60 * c.AutoRotateSpeed * elapsed.Seconds())
}
