// Package model defines the building-model snapshot the validation
// pipeline reads: placed elements, materials, and referenced assets.
// The pipeline only ever reads these collections; it never mutates them.
package model

import (
	"strings"

	"github.com/hausbuild/hausbuild/pkg/geom"
)

// ElementKind classifies a placed building element.
type ElementKind int

const (
	ElementOther ElementKind = iota
	ElementWall
	ElementFloor
	ElementDoor
	ElementWindow
	ElementRoof
	ElementCeiling
	ElementStairs
	ElementColumn
	ElementBeam
)

var elementKindNames = map[ElementKind]string{
	ElementOther:   "other",
	ElementWall:    "wall",
	ElementFloor:   "floor",
	ElementDoor:    "door",
	ElementWindow:  "window",
	ElementRoof:    "roof",
	ElementCeiling: "ceiling",
	ElementStairs:  "stairs",
	ElementColumn:  "column",
	ElementBeam:    "beam",
}

// String returns the lowercase tag for the kind.
func (k ElementKind) String() string {
	if name, ok := elementKindNames[k]; ok {
		return name
	}
	return "other"
}

// ParseElementKind maps a tag to its kind. Unknown tags map to
// ElementOther so snapshots from newer tool versions stay loadable.
func ParseElementKind(tag string) ElementKind {
	for kind, name := range elementKindNames {
		if name == strings.ToLower(tag) {
			return kind
		}
	}
	return ElementOther
}

// MarshalYAML encodes the kind as its tag.
func (k ElementKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a tag, tolerating unknown values.
func (k *ElementKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tag string
	if err := unmarshal(&tag); err != nil {
		return err
	}
	*k = ParseElementKind(tag)
	return nil
}

// TriangleBuffer is one indexed triangle soup inside a mesh payload.
// An empty Indices slice means the positions are consumed three at a
// time as unindexed triangles.
type TriangleBuffer struct {
	Positions []geom.Vec3 `yaml:"positions"`
	Indices   []uint32    `yaml:"indices,omitempty"`
}

// VertexCount returns the number of position entries.
func (b *TriangleBuffer) VertexCount() int {
	return len(b.Positions)
}

// TriangleCount returns the number of triangles the buffer encodes.
func (b *TriangleBuffer) TriangleCount() int {
	if len(b.Indices) > 0 {
		return len(b.Indices) / 3
	}
	return len(b.Positions) / 3
}

// MeshPayload is the flattened list of triangle buffers an element owns.
// Validators iterate the list directly instead of walking a scene graph.
type MeshPayload struct {
	Buffers []TriangleBuffer `yaml:"buffers"`
}

// BuildingElement is a placed instance in the model. A nil Mesh means
// the element carries no geometry; the geometry validator reports that
// as a critical error rather than assuming any default shape.
type BuildingElement struct {
	ID         string       `yaml:"id"`
	Kind       ElementKind  `yaml:"kind"`
	Name       string       `yaml:"name,omitempty"`
	Mesh       *MeshPayload `yaml:"mesh,omitempty"`
	Position   geom.Vec3    `yaml:"position"`
	Rotation   geom.Vec3    `yaml:"rotation"` // Euler angles in degrees, XYZ order
	Scale      geom.Vec3    `yaml:"scale"`
	MaterialID string       `yaml:"material_id,omitempty"`
	Width      float32      `yaml:"width,omitempty"`
	Height     float32      `yaml:"height,omitempty"`
	Thickness  float32      `yaml:"thickness,omitempty"`
}

// EffectiveScale returns the element scale with zero components promoted
// to 1, so snapshots that omit scale behave as unscaled.
func (e *BuildingElement) EffectiveScale() geom.Vec3 {
	s := e.Scale
	if s.X == 0 && s.Y == 0 && s.Z == 0 {
		return geom.Vec3{X: 1, Y: 1, Z: 1}
	}
	return s
}

// WorldBounds computes the element's world-space bounding box over all
// buffer vertices. Returns ok == false when the element has no mesh or
// the mesh has no vertices.
func (e *BuildingElement) WorldBounds() (geom.AABB, bool) {
	if e.Mesh == nil {
		return geom.AABB{}, false
	}
	var local geom.AABB
	found := false
	for i := range e.Mesh.Buffers {
		box, ok := geom.AABBFromPoints(e.Mesh.Buffers[i].Positions)
		if !ok {
			continue
		}
		if !found {
			local = box
			found = true
		} else {
			local = local.Union(box)
		}
	}
	if !found {
		return geom.AABB{}, false
	}
	rot := geom.QuatFromEuler(e.Rotation)
	return local.Transformed(e.Position, rot, e.EffectiveScale()), true
}
