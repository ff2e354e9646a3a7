package geom

// AABB is an axis-aligned bounding box in world or local space.
// A zero-extent box (Min == Max on some axis) is a legal value and
// represents flat geometry.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB returns a box spanning the two points, swapping components as
// needed so Min <= Max on every axis.
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// AABBFromPoints accumulates a box over a point set.
// Returns ok == false for an empty set.
func AABBFromPoints(points []Vec3) (box AABB, ok bool) {
	if len(points) == 0 {
		return AABB{}, false
	}
	box = AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Extend(p)
	}
	return box, true
}

// Extend grows the box to contain the point.
func (b AABB) Extend(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Size returns the extent along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// HalfDiagonal returns the distance from the center to a corner. The
// sphere of this radius around Center contains the whole box.
func (b AABB) HalfDiagonal() float32 {
	return b.Size().Length() / 2
}

// Intersects reports whether the boxes overlap or touch. Separation on
// any single axis is enough to rule out overlap.
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// IntersectsSphere reports whether the box intersects the sphere of the
// given radius around center, by clamping the center onto the box and
// comparing the squared distance.
func (b AABB) IntersectsSphere(center Vec3, radius float32) bool {
	closest := center.Max(b.Min).Min(b.Max)
	d := closest.Sub(center)
	return d.Dot(d) <= radius*radius
}

// Corners returns the eight corner points of the box.
func (b AABB) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Transformed places a local-space box in world space by scaling,
// rotating, and translating its corners, then re-wrapping them in a new
// axis-aligned box. Negative scales are handled by the re-wrap.
func (b AABB) Transformed(position Vec3, rotation Quat, scale Vec3) AABB {
	corners := b.Corners()
	var out AABB
	for i, c := range corners {
		p := rotation.Rotate(c.MulComponents(scale)).Add(position)
		if i == 0 {
			out = AABB{Min: p, Max: p}
		} else {
			out = out.Extend(p)
		}
	}
	return out
}
