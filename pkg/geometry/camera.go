package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// CameraConfig contains the user-facing parameters of a depth-of-field camera
type CameraConfig struct {
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64   // Distance to the plane in perfect focus
	VFov          float64   // Vertical field of view in degrees
	Position      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction
}

// Camera generates rays for rendering. It is immutable once built and safe to
// share between goroutines as long as each caller supplies its own random source.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	focusDistance   float64
}

// NewSimpleCamera creates a pinhole camera at the origin looking down -Z with
// a focal length of 1 and the given viewport height.
func NewSimpleCamera(aspectRatio, viewportHeight float64) *Camera {
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
		u:               core.NewVec3(1, 0, 0),
		v:               core.NewVec3(0, 1, 0),
		w:               core.NewVec3(0, 0, 1),
		focusDistance:   focalLength,
	}
}

// NewCamera creates a positionable camera with depth of field
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis
	w := config.Position.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * config.FocusDistance)
	vertical := v.Multiply(viewportHeight * config.FocusDistance)
	lowerLeftCorner := config.Position.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          config.Position,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		focusDistance:   config.FocusDistance,
	}
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1.
// t=0 is the bottom of the viewport. The origin is jittered within the lens disk.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Origin returns the lens center
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}
