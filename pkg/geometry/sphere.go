package geometry

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. Only the magnitude of Radius affects the
// surface and its normals; a negative radius is accepted so scenes can mark the
// inner wall of a hollow shell.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Quadratic equation coefficients: a*t² + 2*halfB*t + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	// Zero-length directions and zero radii never hit
	if a == 0 || s.Radius == 0 {
		return nil, false
	}

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Face orientation comes from the geometric normal, whatever the radius sign
	outwardNormal := hitRecord.Point.Subtract(s.Center).Multiply(1.0 / math.Abs(s.Radius))
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
