package geom

import "math"

// TriangleArea returns the area of the triangle (a, b, c) as half the
// magnitude of the cross product of two edge vectors. The cross product
// and magnitude are accumulated in float64 so near-degenerate triangles
// do not lose the low bits that distinguish them from true zero.
func TriangleArea(a, b, c Vec3) float64 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	abz := float64(b.Z - a.Z)
	acx := float64(c.X - a.X)
	acy := float64(c.Y - a.Y)
	acz := float64(c.Z - a.Z)

	cx := aby*acz - abz*acy
	cy := abz*acx - abx*acz
	cz := abx*acy - aby*acx

	return math.Sqrt(cx*cx+cy*cy+cz*cz) / 2
}

// TriangleCentroid returns the centroid of the triangle (a, b, c).
func TriangleCentroid(a, b, c Vec3) Vec3 {
	return Vec3{
		(a.X + b.X + c.X) / 3,
		(a.Y + b.Y + c.Y) / 3,
		(a.Z + b.Z + c.Z) / 3,
	}
}

// EdgeKey packs an unordered vertex-index pair into a single uint64 key
// with the smaller index in the high 32 bits. (i, j) and (j, i) produce
// the same key, so edge-occurrence maps need no string building.
func EdgeKey(i, j uint32) uint64 {
	if i > j {
		i, j = j, i
	}
	return uint64(i)<<32 | uint64(j)
}
