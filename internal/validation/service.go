package validation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hausbuild/hausbuild/internal/model"
	"github.com/hausbuild/hausbuild/internal/report"
)

// ValidationType selects how thorough a project validation runs. Both
// types run the geometry and the export validator; Quick only drops the
// expensive per-triangle and cross-element geometry checks.
type ValidationType string

const (
	ValidationQuick         ValidationType = "quick"
	ValidationComprehensive ValidationType = "comprehensive"
)

// ValidationService fans a project snapshot out to the geometry and
// export validators and merges their findings into one gated verdict.
// A Reporter may be attached to register findings with the reporting
// system; registration is best-effort and never changes the result.
type ValidationService struct {
	geometry *GeometryValidator
	export   *ExportValidator
	reporter report.Reporter
	log      *zap.Logger
}

// NewValidationService creates a service with the given geometry
// settings. reporter may be nil to skip report registration; log may be
// nil for silent operation.
func NewValidationService(settings Settings, reporter report.Reporter, log *zap.Logger) *ValidationService {
	if log == nil {
		log = zap.NewNop()
	}
	geometry := NewGeometryValidator(settings)
	geometry.SetLogger(log)
	export := NewExportValidator()
	export.SetLogger(log)
	return &ValidationService{
		geometry: geometry,
		export:   export,
		reporter: reporter,
		log:      log,
	}
}

// Geometry exposes the underlying geometry validator, mainly so callers
// can update its settings.
func (s *ValidationService) Geometry() *GeometryValidator {
	return s.geometry
}

// ValidateProject runs both validators over the snapshot and derives
// the combined gating verdict:
//
//	isValid    — no critical and no major errors anywhere
//	canProceed — no critical errors (majors invalidate but do not block)
func (s *ValidationService) ValidateProject(elements []model.BuildingElement, materials []model.Material, assets []model.Asset, typ ValidationType) ComprehensiveValidationResult {
	s.log.Debug("validating project",
		zap.Int("elements", len(elements)),
		zap.Int("materials", len(materials)),
		zap.Int("assets", len(assets)),
		zap.String("type", string(typ)))

	geomValidator := s.geometry
	if typ == ValidationQuick {
		// Quick runs drop the per-triangle and cross-element scans.
		// A throwaway validator keeps the override off the shared
		// settings, so concurrent comprehensive calls are unaffected.
		settings := s.geometry.Settings()
		settings.CheckDegenerateFaces = false
		settings.CheckManifold = false
		settings.CheckIntersections = false
		geomValidator = NewGeometryValidator(settings)
		geomValidator.SetLogger(s.log)
	}

	geometry := geomValidator.ValidateElements(elements)
	export := s.export.ValidateForExport(elements, materials, assets)

	summary := Summary{
		Warnings: len(geometry.Warnings) + len(export.Warnings),
	}
	countSeverity := func(sev Severity) {
		switch sev {
		case SeverityCritical:
			summary.CriticalErrors++
		case SeverityMajor:
			summary.MajorErrors++
		case SeverityMinor:
			summary.MinorErrors++
		}
	}
	for _, e := range geometry.Errors {
		countSeverity(e.Severity)
	}
	for _, e := range export.Errors {
		countSeverity(e.Severity)
	}
	summary.TotalIssues = summary.CriticalErrors + summary.MajorErrors + summary.MinorErrors + summary.Warnings

	result := ComprehensiveValidationResult{
		IsValid:    summary.CriticalErrors == 0 && summary.MajorErrors == 0,
		CanProceed: summary.CriticalErrors == 0,
		Geometry:   geometry,
		Export:     export,
		Summary:    summary,
		ReportIDs:  s.registerIssues(&geometry, &export),
	}

	s.log.Info("project validated",
		zap.Bool("isValid", result.IsValid),
		zap.Bool("canProceed", result.CanProceed),
		zap.Int("totalIssues", summary.TotalIssues),
		zap.Int("critical", summary.CriticalErrors),
		zap.Int("major", summary.MajorErrors),
		zap.Int("warnings", summary.Warnings))

	return result
}

// registerIssues forwards every finding to the reporting collaborator.
// Failures are logged and swallowed; the validation result must not
// depend on the reporter.
func (s *ValidationService) registerIssues(geometry *GeometryValidationResult, export *ExportValidationResult) []string {
	if s.reporter == nil {
		return nil
	}

	var ids []string
	register := func(category report.Category, severity report.Severity, title, description string, context map[string]string) {
		id, err := s.reporter.ReportCustomError(category, severity, title, description, context)
		if err != nil {
			s.log.Warn("issue registration failed", zap.String("title", title), zap.Error(err))
			return
		}
		ids = append(ids, id)
	}

	for _, e := range geometry.Errors {
		register(report.CategoryGeometry, reportSeverity(e.Severity),
			fmt.Sprintf("Geometry: %s", e.Type), e.Message,
			map[string]string{"elementId": e.ElementID, "issueId": e.ID})
	}
	for _, w := range geometry.Warnings {
		register(report.CategoryGeometry, report.SeverityInfo,
			fmt.Sprintf("Geometry: %s", w.Type), w.Message,
			map[string]string{"elementId": w.ElementID, "issueId": w.ID})
	}
	for _, e := range export.Errors {
		register(report.CategoryExport, reportSeverity(e.Severity),
			fmt.Sprintf("Export: %s", e.Type), e.Message,
			map[string]string{"materialId": e.MaterialID, "assetId": e.AssetID, "issueId": e.ID})
	}
	for _, w := range export.Warnings {
		register(report.CategoryExport, report.SeverityInfo,
			fmt.Sprintf("Export: %s", w.Type), w.Message,
			map[string]string{"materialId": w.MaterialID, "issueId": w.ID})
	}
	return ids
}

// reportSeverity maps issue severities onto the reporting system's
// scale. Warnings are mapped by the callers directly to SeverityInfo.
func reportSeverity(sev Severity) report.Severity {
	switch sev {
	case SeverityCritical:
		return report.SeverityCritical
	case SeverityMajor:
		return report.SeverityMajor
	case SeverityMinor:
		return report.SeverityMinor
	default:
		return report.SeverityInfo
	}
}
