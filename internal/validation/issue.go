// Package validation implements the pre-export/pre-save validation
// pipeline: spatial indexing, geometry and export validators, and the
// service that merges their findings into one gated verdict.
//
// Domain problems (bad geometry, missing textures) are never returned
// as Go errors; they are data inside the result types below. The result
// shapes are a contract with the UI layer and the automated tests, so
// field names are fixed via json tags.
package validation

import "github.com/hausbuild/hausbuild/pkg/geom"

// Severity ranks how strongly an error gates downstream operations.
// Warnings carry no severity; they are always advisory.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityMajor    Severity = "major"
	SeverityMinor    Severity = "minor"
)

// GeometryErrorType tags geometry errors.
type GeometryErrorType string

const (
	ErrInvalidDimensions GeometryErrorType = "INVALID_DIMENSIONS"
	ErrSelfIntersection  GeometryErrorType = "SELF_INTERSECTION"
	ErrOverlappingElems  GeometryErrorType = "OVERLAPPING_ELEMENTS"
	ErrInvalidGeometry   GeometryErrorType = "INVALID_GEOMETRY"
	ErrMissingVertices   GeometryErrorType = "MISSING_VERTICES"
	ErrDegenerateFaces   GeometryErrorType = "DEGENERATE_FACES"
	ErrNonManifold       GeometryErrorType = "NON_MANIFOLD"
	ErrFloatingPoint     GeometryErrorType = "FLOATING_POINT_PRECISION"
)

// GeometryWarningType tags geometry warnings.
type GeometryWarningType string

const (
	WarnSmallDimensions  GeometryWarningType = "SMALL_DIMENSIONS"
	WarnLargeDimensions  GeometryWarningType = "LARGE_DIMENSIONS"
	WarnHighPolygonCount GeometryWarningType = "HIGH_POLYGON_COUNT"
	WarnPoorAspectRatio  GeometryWarningType = "POOR_ASPECT_RATIO"
	WarnComplexity       GeometryWarningType = "UNNECESSARY_COMPLEXITY"
	WarnPerformance      GeometryWarningType = "PERFORMANCE_IMPACT"
)

// ExportErrorType tags export errors.
type ExportErrorType string

const (
	ErrUnsupportedFormat ExportErrorType = "UNSUPPORTED_FORMAT"
	ErrMissingAsset      ExportErrorType = "MISSING_ASSET"
)

// ExportWarningType tags export warnings.
type ExportWarningType string

const (
	WarnMissingMaterial ExportWarningType = "MISSING_MATERIAL"
	WarnInvalidOpacity  ExportWarningType = "INVALID_OPACITY"
)

// GeometryError is a blocking or reportable geometry finding.
type GeometryError struct {
	ID        string            `json:"id"`
	Type      GeometryErrorType `json:"type"`
	Message   string            `json:"message"`
	ElementID string            `json:"elementId,omitempty"`
	Position  *geom.Vec3        `json:"position,omitempty"`
	Severity  Severity          `json:"severity"`
	Fixable   bool              `json:"fixable"`
}

// GeometryWarning is an advisory geometry finding. Warnings never
// affect validity.
type GeometryWarning struct {
	ID        string              `json:"id"`
	Type      GeometryWarningType `json:"type"`
	Message   string              `json:"message"`
	ElementID string              `json:"elementId,omitempty"`
	Position  *geom.Vec3          `json:"position,omitempty"`
}

// ExportError is a blocking export finding.
type ExportError struct {
	ID               string          `json:"id"`
	Type             ExportErrorType `json:"type"`
	Message          string          `json:"message"`
	MaterialID       string          `json:"materialId,omitempty"`
	AssetID          string          `json:"assetId,omitempty"`
	Severity         Severity        `json:"severity"`
	Fixable          bool            `json:"fixable"`
	AutoFixAvailable bool            `json:"autoFixAvailable"`
}

// ExportWarning is an advisory export finding.
type ExportWarning struct {
	ID         string            `json:"id"`
	Type       ExportWarningType `json:"type"`
	Message    string            `json:"message"`
	MaterialID string            `json:"materialId,omitempty"`
	ElementID  string            `json:"elementId,omitempty"`
}

// MissingAsset records one unresolved asset reference. Multiple
// materials referencing the same missing id share a single entry with a
// merged UsedBy list.
type MissingAsset struct {
	ID     string   `json:"id"`
	Kind   string   `json:"type"`
	UsedBy []string `json:"usedBy"`
}

// PerformanceRating buckets export-side material cost.
type PerformanceRating string

const (
	RatingExcellent PerformanceRating = "excellent"
	RatingGood      PerformanceRating = "good"
	RatingFair      PerformanceRating = "fair"
	RatingPoor      PerformanceRating = "poor"
)

// PerformanceMetrics summarizes export-side cost indicators.
type PerformanceMetrics struct {
	TotalMaterials    int               `json:"totalMaterials"`
	TexturedMaterials int               `json:"texturedMaterials"`
	MissingAssets     int               `json:"missingAssets"`
	PerformanceRating PerformanceRating `json:"performanceRating"`
}

// GeometryValidationResult is the geometry validator's verdict.
// IsValid is true exactly when Errors is empty.
type GeometryValidationResult struct {
	IsValid     bool              `json:"isValid"`
	Errors      []GeometryError   `json:"errors"`
	Warnings    []GeometryWarning `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
}

// ExportValidationResult is the export validator's verdict.
// CanExport is true exactly when Errors is empty; IsValid mirrors it.
type ExportValidationResult struct {
	IsValid            bool               `json:"isValid"`
	CanExport          bool               `json:"canExport"`
	Errors             []ExportError      `json:"errors"`
	Warnings           []ExportWarning    `json:"warnings"`
	MissingAssets      []MissingAsset     `json:"missingAssets"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics"`
}

// Summary counts combined findings by severity. TotalIssues always
// equals CriticalErrors + MajorErrors + MinorErrors + Warnings.
type Summary struct {
	TotalIssues    int `json:"totalIssues"`
	CriticalErrors int `json:"criticalErrors"`
	MajorErrors    int `json:"majorErrors"`
	MinorErrors    int `json:"minorErrors"`
	Warnings       int `json:"warnings"`
}

// ComprehensiveValidationResult merges both validators' verdicts.
// IsValid requires zero critical and zero major errors across both;
// CanProceed requires only zero critical errors.
type ComprehensiveValidationResult struct {
	IsValid    bool                     `json:"isValid"`
	CanProceed bool                     `json:"canProceed"`
	Geometry   GeometryValidationResult `json:"geometry"`
	Export     ExportValidationResult   `json:"export"`
	Summary    Summary                  `json:"summary"`
	ReportIDs  []string                 `json:"reportIds"`
}
