package geometry

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit reports the intersection with ray closest to its origin whose
	// parameter lies within [tMin, tMax].
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// World answers intersection queries against a whole scene
type World interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
