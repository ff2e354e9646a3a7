package validation

import (
	"github.com/hausbuild/hausbuild/internal/model"
	"github.com/hausbuild/hausbuild/pkg/geom"
)

// unitCubeBuffer returns a closed, manifold unit cube: 8 vertices,
// 12 triangles. Every edge is shared by exactly two triangles.
func unitCubeBuffer() model.TriangleBuffer {
	return model.TriangleBuffer{
		Positions: []geom.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
		Indices: []uint32{
			0, 1, 5, 0, 5, 4, // bottom
			3, 7, 6, 3, 6, 2, // top
			4, 5, 6, 4, 6, 7, // front
			0, 3, 2, 0, 2, 1, // back
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
}

// cubeElement returns a valid wall-kind unit cube at the given position.
func cubeElement(id string, position geom.Vec3) model.BuildingElement {
	return model.BuildingElement{
		ID:       id,
		Kind:     model.ElementWall,
		Mesh:     &model.MeshPayload{Buffers: []model.TriangleBuffer{unitCubeBuffer()}},
		Position: position,
		Scale:    geom.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// flatWallElement returns a wall with a zero x-extent: an open quad in
// the yz plane sized (0, 2, 0.2).
func flatWallElement(id string) model.BuildingElement {
	return model.BuildingElement{
		ID:   id,
		Kind: model.ElementWall,
		Mesh: &model.MeshPayload{Buffers: []model.TriangleBuffer{{
			Positions: []geom.Vec3{
				{X: 0, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}, {X: 0, Y: 2, Z: 0.2}, {X: 0, Y: 0, Z: 0.2},
			},
			Indices: []uint32{0, 1, 2, 0, 2, 3},
		}}},
		Scale: geom.Vec3{X: 1, Y: 1, Z: 1},
	}
}

func hasGeometryError(errors []GeometryError, typ GeometryErrorType) bool {
	for _, e := range errors {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func countGeometryErrors(errors []GeometryError, typ GeometryErrorType) int {
	n := 0
	for _, e := range errors {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func hasGeometryWarning(warnings []GeometryWarning, typ GeometryWarningType) bool {
	for _, w := range warnings {
		if w.Type == typ {
			return true
		}
	}
	return false
}
