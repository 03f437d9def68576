package physics

// Outcome is the result of a narrow-phase query.
type Outcome uint8

const (
	Separated Outcome = iota
	Colliding
	// Unsupported means no algorithm exists for the pair of shape kinds.
	Unsupported
)

func (o Outcome) String() string {
	switch o {
	case Separated:
		return "separated"
	case Colliding:
		return "colliding"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// PairTest is the signature shared by every pair handler. A and B arrive in
// the order the handler expects; contacts are appended to info on success.
type PairTest func(a, b Collider, info *CollisionInfo) bool

type dispatchEntry struct {
	test PairTest
	swap bool // handler expects the arguments the other way round
}

// dispatch covers every ordered pair of kinds. Capsule vs capsule has no
// handler.
var dispatch = [numKinds][numKinds]dispatchEntry{
	KindAABB: {
		KindAABB:    {test: AABBIntersection},
		KindOBB:     {test: OBBIntersection},
		KindSphere:  {test: AABBSphereIntersection},
		KindCapsule: {test: OBBCapsuleIntersection},
	},
	KindOBB: {
		KindAABB:    {test: OBBIntersection},
		KindOBB:     {test: OBBIntersection},
		KindSphere:  {test: OBBSphereIntersection},
		KindCapsule: {test: OBBCapsuleIntersection},
	},
	KindSphere: {
		KindAABB:    {test: AABBSphereIntersection, swap: true},
		KindOBB:     {test: OBBSphereIntersection, swap: true},
		KindSphere:  {test: SphereIntersection},
		KindCapsule: {test: CapsuleSphereIntersection, swap: true},
	},
	KindCapsule: {
		KindAABB:   {test: OBBCapsuleIntersection, swap: true},
		KindOBB:    {test: OBBCapsuleIntersection, swap: true},
		KindSphere: {test: CapsuleSphereIntersection},
	},
}

// Supported reports whether the narrow phase can test the two kinds.
func Supported(a, b ShapeKind) bool {
	return a < numKinds && b < numKinds && dispatch[a][b].test != nil
}

// ObjectIntersection resets info and tests a against b. When the handler
// for the pair expects the other order, info.A and info.B hold the colliders
// swapped and info.Swapped is set; the contact normal always points from
// info.A toward info.B.
func ObjectIntersection(a, b Collider, info *CollisionInfo) Outcome {
	info.Reset()

	if !Supported(a.Shape.Kind, b.Shape.Kind) {
		info.A, info.B = a, b
		return Unsupported
	}

	entry := dispatch[a.Shape.Kind][b.Shape.Kind]
	if entry.swap {
		a, b = b, a
		info.Swapped = true
	}
	info.A, info.B = a, b

	if entry.test(a, b, info) {
		return Colliding
	}
	return Separated
}

// Intersects reports whether a and b overlap. Unsupported pairs never do.
func Intersects(a, b Collider) bool {
	var info CollisionInfo
	return ObjectIntersection(a, b, &info) == Colliding
}
