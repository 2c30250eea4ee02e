package geometry

import (
	"sort"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Intersection records where along a ray an object was crossed
type Intersection struct {
	T      float64
	Object *Object
}

// HitInfo holds the values needed to shade a hit
type HitInfo struct {
	T      float64
	Object *Object
	Point  core.Tuple4 // World-space hit point
	Eye    core.Tuple4 // Unit vector from the point back toward the ray origin
	Normal core.Tuple4 // Unit surface normal, facing the eye
	Inside bool        // True when the ray started inside the object
}

// SortIntersections orders intersections by ascending t in place
func SortIntersections(xs []Intersection) {
	sort.SliceStable(xs, func(i, j int) bool {
		return xs[i].T < xs[j].T
	})
}

// Hit returns the intersection with the smallest non-negative t.
// Intersections behind the ray origin are ignored. ok is false when none remain.
func Hit(xs []Intersection) (hit Intersection, ok bool) {
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !ok || x.T < hit.T {
			hit = x
			ok = true
		}
	}
	return hit, ok
}

// PrepareHit computes the shading values for a hit found along ray
func PrepareHit(hit Intersection, ray core.Ray) HitInfo {
	point := ray.At(hit.T)
	info := HitInfo{
		T:      hit.T,
		Object: hit.Object,
		Point:  point,
		Eye:    ray.Direction.Negate().Normalize(),
		Normal: hit.Object.NormalAt(point),
	}

	if info.Normal.Dot(info.Eye) < 0 {
		info.Inside = true
		info.Normal = info.Normal.Negate()
	}
	return info
}
