package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
)

// ShadowEpsilon is the minimum hit distance for every traced ray. It keeps a
// scattered ray from re-hitting the surface it just left due to rounding.
const ShadowEpsilon = 0.001

// SkyGradient is the background seen by rays that escape the scene. It blends
// from Bottom (straight down) to Top (straight up) on the ray's unit Y component.
type SkyGradient struct {
	Bottom core.Vec3
	Top    core.Vec3
}

// DefaultSky returns the white-to-sky-blue gradient
func DefaultSky() SkyGradient {
	return SkyGradient{
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
		Top:    core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the background color in the direction of ray
func (s SkyGradient) Color(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return s.Bottom.Lerp(s.Top, t)
}

// PathTracingIntegrator implements unidirectional path tracing against a sky background
type PathTracingIntegrator struct {
	sky SkyGradient
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(sky SkyGradient) *PathTracingIntegrator {
	return &PathTracingIntegrator{sky: sky}
}

// RayColor estimates the radiance arriving along ray.
//
// Recursion stops with black once depth reaches zero. Paths still bouncing at
// that point lose their energy, so deep glass or mirror chains render slightly
// darker than the true solution. Raising the depth reduces the bias.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.World, random *rand.Rand, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return pt.sky.Color(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, world, random, depth-1))
}
