package validation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hausbuild/hausbuild/internal/model"
	"github.com/hausbuild/hausbuild/internal/report"
	"github.com/hausbuild/hausbuild/pkg/geom"
)

func TestValidateProjectValid(t *testing.T) {
	s := NewValidationService(DefaultSettings(), nil, nil)
	elements := []model.BuildingElement{
		cubeElement("wall_1", geom.Vec3{}),
		cubeElement("wall_2", geom.Vec3{X: 3}),
	}
	materials := []model.Material{pbrMaterial("mat_1")}

	result := s.ValidateProject(elements, materials, nil, ValidationComprehensive)
	if !result.IsValid {
		t.Fatalf("expected valid project, geometry errors %+v export errors %+v",
			result.Geometry.Errors, result.Export.Errors)
	}
	if !result.CanProceed {
		t.Error("valid project must be able to proceed")
	}
	if result.Summary.TotalIssues != 0 {
		t.Errorf("expected zero issues, got %+v", result.Summary)
	}
}

// The service's logger reaches both validators, so a debug-level run
// records every validation phase.
func TestPhaseDebugLogging(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	s := NewValidationService(DefaultSettings(), nil, zap.New(core))

	elements := []model.BuildingElement{cubeElement("wall_1", geom.Vec3{})}
	s.ValidateProject(elements, []model.Material{pbrMaterial("mat_1")}, nil, ValidationComprehensive)

	for _, msg := range []string{
		"geometry: element checks",
		"geometry: overlap scan",
		"geometry: done",
		"export: material checks",
		"export: done",
	} {
		if observed.FilterMessage(msg).Len() == 0 {
			t.Errorf("expected debug entry %q, got %d entries total", msg, observed.Len())
		}
	}

	// Quick runs use a throwaway geometry validator; it must log too,
	// minus the overlap scan it skips.
	observed.TakeAll()
	s.ValidateProject(elements, nil, nil, ValidationQuick)
	if observed.FilterMessage("geometry: element checks").Len() == 0 {
		t.Error("expected quick run to log its element checks")
	}
	if observed.FilterMessage("geometry: overlap scan").Len() != 0 {
		t.Error("quick run must not run the overlap scan")
	}
}

func TestSummaryAdditivity(t *testing.T) {
	s := NewValidationService(DefaultSettings(), nil, nil)
	elements := []model.BuildingElement{
		{ID: "ghost", Kind: model.ElementDoor}, // critical
		flatWallElement("wall_flat"),           // major + warnings
	}
	mat := pbrMaterial("mat_x")
	mat.AlbedoMap = "tex_gone" // major export error

	result := s.ValidateProject(elements, []model.Material{mat}, nil, ValidationComprehensive)
	sum := result.Summary
	if sum.TotalIssues != sum.CriticalErrors+sum.MajorErrors+sum.MinorErrors+sum.Warnings {
		t.Errorf("summary not additive: %+v", sum)
	}
	if sum.CriticalErrors == 0 || sum.MajorErrors == 0 {
		t.Errorf("expected critical and major errors, got %+v", sum)
	}
	if got := len(result.Geometry.Warnings) + len(result.Export.Warnings); sum.Warnings != got {
		t.Errorf("summary warnings %d != combined %d", sum.Warnings, got)
	}
}

func TestGating(t *testing.T) {
	s := NewValidationService(DefaultSettings(), nil, nil)

	// Major-only project: overlapping walls.
	elements := []model.BuildingElement{
		cubeElement("wall_a", geom.Vec3{}),
		cubeElement("wall_b", geom.Vec3{}),
	}
	result := s.ValidateProject(elements, nil, nil, ValidationComprehensive)
	if result.Summary.CriticalErrors != 0 {
		t.Fatalf("expected no critical errors, got %+v", result.Summary)
	}
	if result.IsValid {
		t.Error("major errors must invalidate the project")
	}
	if !result.CanProceed {
		t.Error("major errors must not block proceeding")
	}

	// Critical project: element without a mesh.
	result = s.ValidateProject([]model.BuildingElement{{ID: "ghost"}}, nil, nil, ValidationComprehensive)
	if result.CanProceed {
		t.Error("critical errors must block proceeding")
	}
	if result.IsValid {
		t.Error("critical errors must invalidate the project")
	}
	if result.CanProceed != (result.Summary.CriticalErrors == 0) {
		t.Error("canProceed must equal criticalErrors == 0")
	}
}

func TestCriticalImpliesInvalid(t *testing.T) {
	s := NewValidationService(DefaultSettings(), nil, nil)
	result := s.ValidateProject([]model.BuildingElement{{ID: "ghost"}}, nil, nil, ValidationComprehensive)

	hasCritical := false
	for _, e := range result.Geometry.Errors {
		if e.Severity == SeverityCritical {
			hasCritical = true
		}
	}
	if !hasCritical {
		t.Fatal("expected a critical error in this scenario")
	}
	if result.IsValid || result.Geometry.IsValid {
		t.Error("critical errors must make results invalid")
	}
}

func TestQuickSkipsExpensiveChecks(t *testing.T) {
	s := NewValidationService(DefaultSettings(), nil, nil)
	collapsed := model.BuildingElement{
		ID:   "collapsed",
		Kind: model.ElementFloor,
		Mesh: &model.MeshPayload{Buffers: []model.TriangleBuffer{{
			Positions: []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}},
		}}},
		Scale: geom.Vec3{X: 1, Y: 1, Z: 1},
	}
	elements := []model.BuildingElement{
		collapsed,
		cubeElement("wall_a", geom.Vec3{}),
		cubeElement("wall_b", geom.Vec3{}),
	}

	full := s.ValidateProject(elements, nil, nil, ValidationComprehensive)
	if !hasGeometryError(full.Geometry.Errors, ErrDegenerateFaces) {
		t.Error("comprehensive run should report degenerate faces")
	}
	if !hasGeometryError(full.Geometry.Errors, ErrOverlappingElems) {
		t.Error("comprehensive run should report overlaps")
	}

	quick := s.ValidateProject(elements, nil, nil, ValidationQuick)
	if hasGeometryError(quick.Geometry.Errors, ErrDegenerateFaces) {
		t.Error("quick run must skip the degenerate-face scan")
	}
	if hasGeometryError(quick.Geometry.Errors, ErrOverlappingElems) {
		t.Error("quick run must skip the overlap scan")
	}
	if hasGeometryError(quick.Geometry.Errors, ErrNonManifold) {
		t.Error("quick run must skip the manifold scan")
	}

	// The quick override must not leak into the shared settings.
	if !s.Geometry().Settings().CheckDegenerateFaces {
		t.Error("quick run mutated the service's settings")
	}
}

func TestIssuesRegisteredWithReporter(t *testing.T) {
	reporter := report.NewMemoryReporter()
	s := NewValidationService(DefaultSettings(), reporter, nil)
	elements := []model.BuildingElement{
		{ID: "ghost"},
		flatWallElement("wall_flat"),
	}

	result := s.ValidateProject(elements, nil, nil, ValidationComprehensive)
	if len(result.ReportIDs) != result.Summary.TotalIssues {
		t.Errorf("expected %d report ids, got %d", result.Summary.TotalIssues, len(result.ReportIDs))
	}
	for _, id := range result.ReportIDs {
		rep, ok := reporter.GetReport(id)
		if !ok {
			t.Errorf("report %s not retrievable", id)
			continue
		}
		if rep.Category != report.CategoryGeometry && rep.Category != report.CategoryExport {
			t.Errorf("unexpected category %s", rep.Category)
		}
	}

	stats := reporter.Statistics()
	if stats.Total != result.Summary.TotalIssues {
		t.Errorf("reporter holds %d reports, expected %d", stats.Total, result.Summary.TotalIssues)
	}
	// Warnings arrive as INFO in the reporting system.
	if result.Summary.Warnings > 0 && stats.BySeverity[report.SeverityInfo] != result.Summary.Warnings {
		t.Errorf("expected %d INFO reports, got %d", result.Summary.Warnings, stats.BySeverity[report.SeverityInfo])
	}
}

type failingReporter struct{}

func (failingReporter) ReportCustomError(report.Category, report.Severity, string, string, map[string]string) (string, error) {
	return "", errors.New("reporting backend down")
}

func (failingReporter) GetReport(string) (*report.Report, bool) { return nil, false }

func TestReporterFailureDoesNotAffectResult(t *testing.T) {
	s := NewValidationService(DefaultSettings(), failingReporter{}, nil)
	broken := []model.BuildingElement{{ID: "ghost"}}

	result := s.ValidateProject(broken, nil, nil, ValidationComprehensive)
	if result.Summary.CriticalErrors != 1 {
		t.Errorf("reporter failure changed the verdict: %+v", result.Summary)
	}
	if len(result.ReportIDs) != 0 {
		t.Errorf("expected no report ids from a failing reporter, got %v", result.ReportIDs)
	}
}

func TestProjectDeterminism(t *testing.T) {
	s := NewValidationService(DefaultSettings(), nil, nil)
	elements := []model.BuildingElement{
		flatWallElement("wall_flat"),
		cubeElement("wall_a", geom.Vec3{}),
		cubeElement("wall_b", geom.Vec3{}),
	}
	mat := pbrMaterial("mat_x")
	mat.AlbedoMap = "tex_gone"
	materials := []model.Material{mat}

	first := s.ValidateProject(elements, materials, nil, ValidationComprehensive)
	second := s.ValidateProject(elements, materials, nil, ValidationComprehensive)
	if first.IsValid != second.IsValid || first.CanProceed != second.CanProceed {
		t.Error("gating flags differ between identical runs")
	}
	if first.Summary != second.Summary {
		t.Errorf("summaries differ: %+v vs %+v", first.Summary, second.Summary)
	}
}

func TestLargeProjectCompletesQuickly(t *testing.T) {
	s := NewValidationService(DefaultSettings(), report.NewMemoryReporter(), nil)

	elements := make([]model.BuildingElement, 0, 50)
	for i := 0; i < 50; i++ {
		// 3m spacing on a row keeps every box separated.
		elements = append(elements, cubeElement(fmt.Sprintf("wall_%02d", i), geom.Vec3{X: float32(i) * 3}))
	}
	materials := make([]model.Material, 0, 50)
	for i := 0; i < 50; i++ {
		materials = append(materials, pbrMaterial(fmt.Sprintf("mat_%02d", i)))
	}

	start := time.Now()
	result := s.ValidateProject(elements, materials, nil, ValidationComprehensive)
	elapsed := time.Since(start)

	if elapsed > 10*time.Second {
		t.Errorf("validation took %v, expected under 10s", elapsed)
	}
	if !result.IsValid || !result.CanProceed {
		t.Errorf("expected a clean large project, got %+v", result.Summary)
	}
	if result.Summary.TotalIssues < 0 || result.Summary.Warnings < 0 {
		t.Errorf("malformed summary %+v", result.Summary)
	}
	if result.Export.PerformanceMetrics.TotalMaterials != 50 {
		t.Errorf("expected 50 materials in metrics, got %d", result.Export.PerformanceMetrics.TotalMaterials)
	}
	if result.Export.PerformanceMetrics.PerformanceRating == "" {
		t.Error("expected a performance rating")
	}
}
