package world

import "collide3d/internal/physics"

// RaycastOptions narrows a world ray query. A zero value queries every
// body at any distance.
type RaycastOptions struct {
	MaxDistance  float32 // 0 means unlimited
	Ignore       []*Body
	IgnoreLayers physics.LayerMask
}

// RaycastHit is the closest body hit by a ray.
type RaycastHit struct {
	Body *Body
	physics.RayCollision
}

// Raycast returns the nearest hit along ray. Bodies on the IgnoreRaycast
// layer are never hit.
func (w *World) Raycast(ray physics.Ray, opts RaycastOptions) (RaycastHit, bool) {
	var closest RaycastHit
	found := false

	for _, b := range w.bodies {
		if !rayTarget(b, opts) {
			continue
		}
		hit, ok := physics.RayIntersection(ray, b.Collider)
		if !ok {
			continue
		}
		if opts.MaxDistance > 0 && hit.Distance > opts.MaxDistance {
			continue
		}
		if !found || hit.Distance < closest.Distance {
			closest = RaycastHit{Body: b, RayCollision: hit}
			found = true
		}
	}
	return closest, found
}

// RaycastAll returns every hit along ray, unsorted.
func (w *World) RaycastAll(ray physics.Ray, opts RaycastOptions) []RaycastHit {
	var hits []RaycastHit
	for _, b := range w.bodies {
		if !rayTarget(b, opts) {
			continue
		}
		hit, ok := physics.RayIntersection(ray, b.Collider)
		if !ok || (opts.MaxDistance > 0 && hit.Distance > opts.MaxDistance) {
			continue
		}
		hits = append(hits, RaycastHit{Body: b, RayCollision: hit})
	}
	return hits
}

func rayTarget(b *Body, opts RaycastOptions) bool {
	if b.Layer == physics.LayerIgnoreRaycast || opts.IgnoreLayers.Has(b.Layer) {
		return false
	}
	for _, ignored := range opts.Ignore {
		if ignored == b {
			return false
		}
	}
	return true
}
