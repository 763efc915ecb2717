package material

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: max(0.0, min(1.0, fuzzness))}
}

// Scatter implements the Material interface for metal scattering.
// Fuzzed reflections that end up below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzzness))
	}

	scattered := core.NewRay(hit.Point, reflected)
	result := ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}
	return result, scattered.Direction.Dot(hit.Normal) > 0
}
