package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Vec3 // Tint applied to every bounce; white for clear glass
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// NewClearDielectric creates an untinted dielectric
func NewClearDielectric(refractiveIndex float64) *Dielectric {
	return NewDielectric(core.NewVec3(1, 1, 1), refractiveIndex)
}

// Scatter implements the Material interface for dielectric scattering.
// Reflection is chosen under total internal reflection or with Schlick
// probability, refraction otherwise. Dielectrics never absorb.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	refractionRatio := d.RefractionRatio(hit.FrontFace)

	unitDirection := rayIn.Direction.Normalize()
	normal := hit.Normal.Normalize()

	cosTheta := math.Min(normal.Dot(unitDirection.Negate()), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if CannotRefract(sinTheta, refractionRatio) || Reflectance(cosTheta, refractionRatio) > random.Float64() {
		direction = unitDirection.Reflect(normal)
	} else {
		direction = unitDirection.Refract(normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: d.Albedo,
	}, true
}

// RefractionRatio returns the incident-over-transmitted index ratio. Rays
// entering through the front face go from air into the material.
func (d *Dielectric) RefractionRatio(frontFace bool) float64 {
	if frontFace {
		return 1.0 / d.RefractiveIndex
	}
	return d.RefractiveIndex
}

// CannotRefract reports total internal reflection
func CannotRefract(sinTheta, refractionRatio float64) bool {
	return sinTheta*refractionRatio > 1.0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
