package validation

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hausbuild/hausbuild/internal/model"
	"github.com/hausbuild/hausbuild/pkg/geom"
)

// Settings controls the geometry validator's thresholds and optional
// checks. The value is copied on construction and on update; a running
// validation always sees one consistent snapshot.
type Settings struct {
	// Tolerance is the numeric floor below which an extent or triangle
	// area counts as zero.
	Tolerance float32
	// MinDimension is the smallest extent (in meters) considered
	// buildable; smaller extents warn.
	MinDimension float32
	// MaxDimension is the largest extent before a size warning.
	MaxDimension float32
	// MaxPolygonCount is the per-buffer triangle budget before a
	// polygon-count warning.
	MaxPolygonCount int

	CheckIntersections   bool
	CheckManifold        bool
	CheckDegenerateFaces bool

	// PerformanceMode skips the aggregate complexity checks.
	PerformanceMode bool
}

// DefaultSettings returns the thresholds the tool ships with.
func DefaultSettings() Settings {
	return Settings{
		Tolerance:            1e-6,
		MinDimension:         0.01, // one centimeter
		MaxDimension:         1000,
		MaxPolygonCount:      100000,
		CheckIntersections:   true,
		CheckManifold:        true,
		CheckDegenerateFaces: true,
		PerformanceMode:      false,
	}
}

// Aggregate complexity thresholds for the per-element performance
// check. These are fixed, not settings.
const (
	perfMaxTriangles = 100000
	perfMaxBuffers   = 50
	perfMaxVertices  = 50000
)

// maxAspectRatio is the largest allowed ratio between the longest and
// shortest bounding-box extent before an aspect-ratio warning.
const maxAspectRatio = 100

// GeometryValidator checks element dimensions, mesh integrity, and
// pairwise overlap. Settings updates and validation calls on the same
// instance may come from different goroutines; the RWMutex gives
// updates a happens-before edge over later validations.
type GeometryValidator struct {
	mu       sync.RWMutex
	settings Settings
	log      *zap.Logger
}

// NewGeometryValidator creates a validator with the given settings.
func NewGeometryValidator(settings Settings) *GeometryValidator {
	return &GeometryValidator{settings: settings, log: zap.NewNop()}
}

// SetLogger attaches a logger for per-phase debug output. Nil restores
// the no-op default.
func (g *GeometryValidator) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	g.mu.Lock()
	g.log = log
	g.mu.Unlock()
}

func (g *GeometryValidator) logger() *zap.Logger {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.log
}

// Settings returns a copy of the current settings.
func (g *GeometryValidator) Settings() Settings {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.settings
}

// UpdateSettings replaces the settings for all subsequent calls.
func (g *GeometryValidator) UpdateSettings(settings Settings) {
	g.mu.Lock()
	g.settings = settings
	g.mu.Unlock()
}

// geometryRun accumulates findings for one validation call with
// result-local sequential issue ids.
type geometryRun struct {
	settings Settings
	errors   []GeometryError
	warnings []GeometryWarning
}

func (r *geometryRun) addError(e GeometryError) {
	e.ID = fmt.Sprintf("geo-err-%03d", len(r.errors)+1)
	r.errors = append(r.errors, e)
}

func (r *geometryRun) addWarning(w GeometryWarning) {
	w.ID = fmt.Sprintf("geo-warn-%03d", len(r.warnings)+1)
	r.warnings = append(r.warnings, w)
}

// ValidateElements validates the whole collection, including the
// cross-element overlap check.
func (g *GeometryValidator) ValidateElements(elements []model.BuildingElement) GeometryValidationResult {
	run := &geometryRun{settings: g.Settings()}
	log := g.logger()

	log.Debug("geometry: element checks", zap.Int("elements", len(elements)))
	for i := range elements {
		run.checkElement(&elements[i])
	}
	if run.settings.CheckIntersections {
		log.Debug("geometry: overlap scan", zap.Int("elements", len(elements)))
		run.checkOverlaps(elements)
	}

	res := run.result()
	log.Debug("geometry: done",
		zap.Int("errors", len(res.Errors)),
		zap.Int("warnings", len(res.Warnings)))
	return res
}

// ValidateElement validates a single element plus its overlap against
// the supplied collection. No checks run beyond what is passed in.
func (g *GeometryValidator) ValidateElement(el *model.BuildingElement, all []model.BuildingElement) GeometryValidationResult {
	run := &geometryRun{settings: g.Settings()}

	run.checkElement(el)
	if run.settings.CheckIntersections {
		if bounds, ok := el.WorldBounds(); ok {
			for i := range all {
				other := &all[i]
				if other.ID == el.ID {
					continue
				}
				otherBounds, ok := other.WorldBounds()
				if !ok {
					continue
				}
				if bounds.Intersects(otherBounds) {
					run.addOverlapError(el, other)
				}
			}
		}
	}
	return run.result()
}

func (r *geometryRun) result() GeometryValidationResult {
	return GeometryValidationResult{
		IsValid:     len(r.errors) == 0,
		Errors:      r.errors,
		Warnings:    r.warnings,
		Suggestions: r.suggestions(),
	}
}

// checkElement runs the per-element pipeline: missing mesh, dimensions,
// mesh integrity, degenerate faces, manifoldness, complexity.
func (r *geometryRun) checkElement(el *model.BuildingElement) {
	if el.Mesh == nil {
		r.addError(GeometryError{
			Type:      ErrInvalidGeometry,
			Message:   fmt.Sprintf("element %q (%s) has no mesh payload", el.ID, el.Kind),
			ElementID: el.ID,
			Severity:  SeverityCritical,
			Fixable:   false,
		})
		return
	}

	r.checkDimensions(el)
	for i := range el.Mesh.Buffers {
		r.checkBufferIntegrity(el, i, &el.Mesh.Buffers[i])
	}
	if r.settings.CheckDegenerateFaces {
		for i := range el.Mesh.Buffers {
			r.checkDegenerateFaces(el, &el.Mesh.Buffers[i])
		}
	}
	if r.settings.CheckManifold {
		r.checkManifold(el)
	}
	if !r.settings.PerformanceMode {
		r.checkComplexity(el)
	}
}

// checkDimensions validates bounding-box extents. The four checks are
// independent: a zero extent can fire the dimension error and the
// aspect-ratio warning for the same element.
func (r *geometryRun) checkDimensions(el *model.BuildingElement) {
	bounds, ok := el.WorldBounds()
	if !ok {
		// Vertex-less buffers are reported by the integrity check.
		return
	}
	size := bounds.Size()
	extents := [3]float32{size.X, size.Y, size.Z}
	axes := [3]string{"x", "y", "z"}

	for i, extent := range extents {
		if extent < r.settings.Tolerance {
			r.addError(GeometryError{
				Type:      ErrInvalidDimensions,
				Message:   fmt.Sprintf("element %q has a zero %s-axis extent", el.ID, axes[i]),
				ElementID: el.ID,
				Severity:  SeverityMajor,
				Fixable:   true,
			})
		} else if extent < r.settings.MinDimension {
			r.addWarning(GeometryWarning{
				Type:      WarnSmallDimensions,
				Message:   fmt.Sprintf("element %q %s-axis extent %.4f is below the %.2fm minimum", el.ID, axes[i], extent, r.settings.MinDimension),
				ElementID: el.ID,
			})
		}
	}
	for i, extent := range extents {
		if extent > r.settings.MaxDimension {
			r.addWarning(GeometryWarning{
				Type:      WarnLargeDimensions,
				Message:   fmt.Sprintf("element %q %s-axis extent %.1f exceeds the %.0fm maximum", el.ID, axes[i], extent, r.settings.MaxDimension),
				ElementID: el.ID,
			})
		}
	}

	smallest := min(extents[0], extents[1], extents[2])
	largest := max(extents[0], extents[1], extents[2])
	// IEEE division: a zero smallest extent yields +Inf, which fires
	// the warning whenever the largest extent is nonzero.
	if largest/smallest > maxAspectRatio {
		r.addWarning(GeometryWarning{
			Type:      WarnPoorAspectRatio,
			Message:   fmt.Sprintf("element %q extent ratio exceeds %d:1", el.ID, maxAspectRatio),
			ElementID: el.ID,
		})
	}
}

// checkBufferIntegrity validates one triangle buffer: non-empty
// positions, in-bounds indices, and the polygon budget.
func (r *geometryRun) checkBufferIntegrity(el *model.BuildingElement, bufIdx int, buf *model.TriangleBuffer) {
	if buf.VertexCount() == 0 {
		r.addError(GeometryError{
			Type:      ErrMissingVertices,
			Message:   fmt.Sprintf("element %q buffer %d has an empty position attribute", el.ID, bufIdx),
			ElementID: el.ID,
			Severity:  SeverityCritical,
			Fixable:   false,
		})
		return
	}

	vertexCount := uint32(buf.VertexCount())
	for _, idx := range buf.Indices {
		if idx >= vertexCount {
			// Only the first offending index is reported; the rest of
			// the buffer is unreliable past this point.
			r.addError(GeometryError{
				Type:      ErrInvalidGeometry,
				Message:   fmt.Sprintf("element %q buffer %d index %d is out of bounds (%d vertices)", el.ID, bufIdx, idx, vertexCount),
				ElementID: el.ID,
				Severity:  SeverityCritical,
				Fixable:   false,
			})
			break
		}
	}

	if buf.TriangleCount() > r.settings.MaxPolygonCount {
		r.addWarning(GeometryWarning{
			Type:      WarnHighPolygonCount,
			Message:   fmt.Sprintf("element %q buffer %d has %d triangles (budget %d)", el.ID, bufIdx, buf.TriangleCount(), r.settings.MaxPolygonCount),
			ElementID: el.ID,
		})
	}
}

// forEachTriangle visits every complete, in-bounds triangle of the
// buffer. Out-of-bounds indices are skipped here; the integrity check
// already reported them.
func forEachTriangle(buf *model.TriangleBuffer, visit func(a, b, c geom.Vec3, ia, ib, ic uint32)) {
	vertexCount := uint32(buf.VertexCount())
	if len(buf.Indices) > 0 {
		for i := 0; i+2 < len(buf.Indices); i += 3 {
			ia, ib, ic := buf.Indices[i], buf.Indices[i+1], buf.Indices[i+2]
			if ia >= vertexCount || ib >= vertexCount || ic >= vertexCount {
				continue
			}
			visit(buf.Positions[ia], buf.Positions[ib], buf.Positions[ic], ia, ib, ic)
		}
		return
	}
	for i := 0; i+2 < buf.VertexCount(); i += 3 {
		ia, ib, ic := uint32(i), uint32(i+1), uint32(i+2)
		visit(buf.Positions[ia], buf.Positions[ib], buf.Positions[ic], ia, ib, ic)
	}
}

// checkDegenerateFaces reports every triangle whose area is numerically
// zero, positioned at the triangle centroid. No early exit.
func (r *geometryRun) checkDegenerateFaces(el *model.BuildingElement, buf *model.TriangleBuffer) {
	forEachTriangle(buf, func(a, b, c geom.Vec3, _, _, _ uint32) {
		if geom.TriangleArea(a, b, c) < float64(r.settings.Tolerance) {
			centroid := geom.TriangleCentroid(a, b, c)
			r.addError(GeometryError{
				Type:      ErrDegenerateFaces,
				Message:   fmt.Sprintf("element %q has a degenerate face near (%.3f, %.3f, %.3f)", el.ID, centroid.X, centroid.Y, centroid.Z),
				ElementID: el.ID,
				Position:  &centroid,
				Severity:  SeverityMajor,
				Fixable:   true,
			})
		}
	})
}

// checkManifold builds an edge-occurrence map per buffer; an edge not
// shared by exactly two triangles marks a boundary or a non-manifold
// join. Only the first offending buffer is reported per element to keep
// the output from flooding on badly broken meshes.
func (r *geometryRun) checkManifold(el *model.BuildingElement) {
	for bufIdx := range el.Mesh.Buffers {
		buf := &el.Mesh.Buffers[bufIdx]
		edges := make(map[uint64]int)
		forEachTriangle(buf, func(_, _, _ geom.Vec3, ia, ib, ic uint32) {
			edges[geom.EdgeKey(ia, ib)]++
			edges[geom.EdgeKey(ib, ic)]++
			edges[geom.EdgeKey(ic, ia)]++
		})
		if len(edges) == 0 {
			continue
		}
		for _, count := range edges {
			if count != 2 {
				r.addError(GeometryError{
					Type:      ErrNonManifold,
					Message:   fmt.Sprintf("element %q buffer %d has boundary or non-manifold edges", el.ID, bufIdx),
					ElementID: el.ID,
					Severity:  SeverityMajor,
					Fixable:   true,
				})
				return
			}
		}
	}
}

// checkComplexity warns on aggregate mesh cost across the whole element.
func (r *geometryRun) checkComplexity(el *model.BuildingElement) {
	var vertices, triangles int
	buffers := len(el.Mesh.Buffers)
	for i := range el.Mesh.Buffers {
		vertices += el.Mesh.Buffers[i].VertexCount()
		triangles += el.Mesh.Buffers[i].TriangleCount()
	}

	if triangles > perfMaxTriangles {
		r.addWarning(GeometryWarning{
			Type:      WarnHighPolygonCount,
			Message:   fmt.Sprintf("element %q totals %d triangles", el.ID, triangles),
			ElementID: el.ID,
		})
	}
	if buffers > perfMaxBuffers {
		r.addWarning(GeometryWarning{
			Type:      WarnComplexity,
			Message:   fmt.Sprintf("element %q is split across %d buffers", el.ID, buffers),
			ElementID: el.ID,
		})
	}
	if vertices > perfMaxVertices {
		r.addWarning(GeometryWarning{
			Type:      WarnPerformance,
			Message:   fmt.Sprintf("element %q totals %d vertices", el.ID, vertices),
			ElementID: el.ID,
		})
	}
}

// checkOverlaps reports box-vs-box overlap for every unordered pair.
// The spatial index only prunes pairs: the query sphere circumscribes
// each element's own box, so every box that intersects the element's
// box also intersects the sphere, and no overlapping pair is missed.
func (r *geometryRun) checkOverlaps(elements []model.BuildingElement) {
	index := NewSpatialIndex()
	byID := make(map[string]*model.BuildingElement, len(elements))
	order := make(map[string]int, len(elements))
	for i := range elements {
		index.Add(&elements[i])
		byID[elements[i].ID] = &elements[i]
		order[elements[i].ID] = i
	}

	for i := range elements {
		el := &elements[i]
		bounds, ok := index.Bounds(el.ID)
		if !ok {
			continue
		}
		candidates := index.FindNearby(bounds.Center(), bounds.HalfDiagonal())
		// The index returns candidates in map order; sort by the
		// caller's element order so output stays deterministic.
		sortByOrder(candidates, order)
		for _, other := range candidates {
			// Visit each unordered pair once.
			if order[other.ID] <= order[el.ID] {
				continue
			}
			otherBounds, ok := index.Bounds(other.ID)
			if !ok {
				continue
			}
			if bounds.Intersects(otherBounds) {
				r.addOverlapError(el, byID[other.ID])
			}
		}
	}
}

func (r *geometryRun) addOverlapError(a, b *model.BuildingElement) {
	r.addError(GeometryError{
		Type:      ErrOverlappingElems,
		Message:   fmt.Sprintf("elements %q and %q have overlapping bounding boxes", a.ID, b.ID),
		ElementID: a.ID,
		Severity:  SeverityMajor,
		Fixable:   true,
	})
}

func sortByOrder(elements []*model.BuildingElement, order map[string]int) {
	for i := 1; i < len(elements); i++ {
		for j := i; j > 0 && order[elements[j].ID] < order[elements[j-1].ID]; j-- {
			elements[j], elements[j-1] = elements[j-1], elements[j]
		}
	}
}

// suggestions synthesizes free-text repair hints from the fixable issue
// types present. Suggestions are advice only; nothing is applied.
func (r *geometryRun) suggestions() []string {
	var out []string
	add := func(hint string) {
		if !containsString(out, hint) {
			out = append(out, hint)
		}
	}
	for _, e := range r.errors {
		switch e.Type {
		case ErrInvalidDimensions:
			add("Give flat elements a nonzero thickness before exporting.")
		case ErrDegenerateFaces:
			add("Remove zero-area faces with a mesh cleanup pass.")
		case ErrNonManifold:
			add("Close open boundaries or split non-manifold joins.")
		case ErrOverlappingElems:
			add("Move or resize overlapping elements so they no longer intersect.")
		case ErrInvalidGeometry, ErrMissingVertices:
			add("Re-import or rebuild elements with missing or corrupt geometry.")
		}
	}
	return out
}
