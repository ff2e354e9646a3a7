package validation

import (
	"sync"

	"github.com/hausbuild/hausbuild/internal/model"
	"github.com/hausbuild/hausbuild/pkg/geom"
)

type indexedElement struct {
	element *model.BuildingElement
	bounds  geom.AABB
}

// SpatialIndex precomputes world-space bounding boxes keyed by element
// id for fast nearby-element queries. It is a candidate filter only:
// box-vs-sphere tests admit false positives, and callers do the final
// box-vs-box check themselves.
type SpatialIndex struct {
	mu      sync.RWMutex
	entries map[string]indexedElement
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex {
	return &SpatialIndex{
		entries: make(map[string]indexedElement),
	}
}

// Add computes and stores the element's world bounding box. Elements
// without a mesh payload are silently skipped; they have no box to
// query against.
func (s *SpatialIndex) Add(el *model.BuildingElement) {
	bounds, ok := el.WorldBounds()
	if !ok {
		return
	}
	s.mu.Lock()
	s.entries[el.ID] = indexedElement{element: el, bounds: bounds}
	s.mu.Unlock()
}

// FindNearby returns all stored elements whose box intersects the
// sphere of the given radius around position. Result order is
// unspecified.
func (s *SpatialIndex) FindNearby(position geom.Vec3, radius float32) []*model.BuildingElement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []*model.BuildingElement
	for _, entry := range s.entries {
		if entry.bounds.IntersectsSphere(position, radius) {
			found = append(found, entry.element)
		}
	}
	return found
}

// Bounds returns the stored box for an element id.
func (s *SpatialIndex) Bounds(id string) (geom.AABB, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry.bounds, ok
}

// Clear drops all entries. Call before re-indexing a new collection;
// the index keeps no versioning of its own.
func (s *SpatialIndex) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]indexedElement)
	s.mu.Unlock()
}

// Len returns the number of indexed elements.
func (s *SpatialIndex) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
