package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// MaxContacts is the capacity of a CollisionInfo. The narrow phase reports a
// single contact per pair; the extra room keeps the call contract stable if
// manifolds grow later.
const MaxContacts = 4

// ContactPoint is one contact between the participants of a CollisionInfo.
// LocalA and LocalB are offsets from each participant's position, expressed
// in world-aligned axes. Normal is unit length and points from A toward B.
type ContactPoint struct {
	LocalA      rl.Vector3
	LocalB      rl.Vector3
	Normal      rl.Vector3
	Penetration float32
}

// WorldPointA returns the contact point on A in world space.
func (c ContactPoint) WorldPointA(a Collider) rl.Vector3 {
	return rl.Vector3Add(a.Position(), c.LocalA)
}

// WorldPointB returns the contact point on B in world space.
func (c ContactPoint) WorldPointB(b Collider) rl.Vector3 {
	return rl.Vector3Add(b.Position(), c.LocalB)
}

// CollisionInfo records the participants of a tested pair in the order the
// narrow phase evaluated them, plus the contacts found.
type CollisionInfo struct {
	A, B Collider
	// Swapped is set when dispatch exchanged the caller's argument order, so
	// A is the caller's second collider.
	Swapped bool

	contacts [MaxContacts]ContactPoint
	count    int
}

// Reset clears the record for reuse.
func (c *CollisionInfo) Reset() {
	*c = CollisionInfo{}
}

// AddContactPoint appends a contact. Contacts beyond MaxContacts are dropped.
func (c *CollisionInfo) AddContactPoint(localA, localB, normal rl.Vector3, penetration float32) {
	if c.count >= MaxContacts {
		return
	}
	c.contacts[c.count] = ContactPoint{
		LocalA:      localA,
		LocalB:      localB,
		Normal:      normal,
		Penetration: penetration,
	}
	c.count++
}

// Contacts returns the recorded contacts. The slice aliases the record.
func (c *CollisionInfo) Contacts() []ContactPoint {
	return c.contacts[:c.count]
}

func (c *CollisionInfo) ContactCount() int {
	return c.count
}

// Best returns the deepest contact.
func (c *CollisionInfo) Best() (ContactPoint, bool) {
	if c.count == 0 {
		return ContactPoint{}, false
	}
	best := c.contacts[0]
	for _, cp := range c.contacts[1:c.count] {
		if cp.Penetration > best.Penetration {
			best = cp
		}
	}
	return best, true
}

// Oriented returns the best contact expressed in the caller's argument
// order: when dispatch swapped the pair, the normal is negated and the
// local points exchanged.
func (c *CollisionInfo) Oriented() (ContactPoint, bool) {
	cp, ok := c.Best()
	if !ok || !c.Swapped {
		return cp, ok
	}
	return ContactPoint{
		LocalA:      cp.LocalB,
		LocalB:      cp.LocalA,
		Normal:      rl.Vector3Negate(cp.Normal),
		Penetration: cp.Penetration,
	}, true
}
