package validation

import (
	"testing"

	"github.com/hausbuild/hausbuild/internal/model"
)

func pbrMaterial(id string) model.Material {
	return model.Material{
		ID:        id,
		Kind:      model.MaterialPBR,
		BaseColor: [4]float32{0.8, 0.8, 0.8, 1},
		Roughness: 0.5,
		Opacity:   1,
	}
}

func TestExportAllValid(t *testing.T) {
	v := NewExportValidator()
	materials := []model.Material{pbrMaterial("mat_1"), pbrMaterial("mat_2")}

	result := v.ValidateForExport(nil, materials, nil)
	if !result.CanExport {
		t.Fatalf("expected exportable result, got errors %+v", result.Errors)
	}
	if result.IsValid != result.CanExport {
		t.Error("IsValid must mirror CanExport")
	}
	if len(result.MissingAssets) != 0 {
		t.Errorf("expected no missing assets, got %+v", result.MissingAssets)
	}
	if result.PerformanceMetrics.TotalMaterials != 2 {
		t.Errorf("expected totalMaterials 2, got %d", result.PerformanceMetrics.TotalMaterials)
	}
}

func TestUnsupportedMaterialKind(t *testing.T) {
	v := NewExportValidator()
	bad := pbrMaterial("mat_custom")
	bad.Kind = model.MaterialOther

	result := v.ValidateForExport(nil, []model.Material{bad}, nil)
	if result.CanExport {
		t.Error("unsupported material kind must block export")
	}
	if len(result.Errors) != 1 || result.Errors[0].Type != ErrUnsupportedFormat {
		t.Fatalf("expected one UNSUPPORTED_FORMAT, got %+v", result.Errors)
	}
	if result.Errors[0].MaterialID != "mat_custom" {
		t.Errorf("error should be tagged with the material id, got %q", result.Errors[0].MaterialID)
	}
}

func TestUnresolvedTexture(t *testing.T) {
	v := NewExportValidator()
	mat := pbrMaterial("mat_brick")
	mat.AlbedoMap = "missing_texture_id"

	result := v.ValidateForExport(nil, []model.Material{mat}, nil)
	if len(result.MissingAssets) != 1 {
		t.Fatalf("expected exactly one missing asset, got %+v", result.MissingAssets)
	}
	entry := result.MissingAssets[0]
	if entry.ID != "missing_texture_id" {
		t.Errorf("expected id missing_texture_id, got %q", entry.ID)
	}
	if entry.Kind != "texture" {
		t.Errorf("expected kind texture, got %q", entry.Kind)
	}
	if len(entry.UsedBy) != 1 || entry.UsedBy[0] != "mat_brick" {
		t.Errorf("expected usedBy [mat_brick], got %v", entry.UsedBy)
	}
	if result.CanExport {
		t.Error("missing texture must block export")
	}
}

func TestResolvedTextureIsNotMissing(t *testing.T) {
	v := NewExportValidator()
	mat := pbrMaterial("mat_brick")
	mat.AlbedoMap = "tex_brick"
	assets := []model.Asset{{ID: "tex_brick", Kind: model.AssetTexture, Path: "textures/brick.png"}}

	result := v.ValidateForExport(nil, []model.Material{mat}, assets)
	if len(result.MissingAssets) != 0 {
		t.Errorf("expected no missing assets, got %+v", result.MissingAssets)
	}
	if !result.CanExport {
		t.Errorf("expected exportable result, got errors %+v", result.Errors)
	}
}

func TestMissingAssetEntriesMerge(t *testing.T) {
	v := NewExportValidator()
	a := pbrMaterial("mat_a")
	a.AlbedoMap = "tex_gone"
	b := pbrMaterial("mat_b")
	b.NormalMap = "tex_gone"

	result := v.ValidateForExport(nil, []model.Material{a, b}, nil)
	if len(result.MissingAssets) != 1 {
		t.Fatalf("expected a single merged entry, got %+v", result.MissingAssets)
	}
	usedBy := result.MissingAssets[0].UsedBy
	if len(usedBy) != 2 || usedBy[0] != "mat_a" || usedBy[1] != "mat_b" {
		t.Errorf("expected usedBy [mat_a mat_b], got %v", usedBy)
	}
	// Merged entries still yield only one error for the shared id.
	n := 0
	for _, e := range result.Errors {
		if e.Type == ErrMissingAsset {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected one MISSING_ASSET error for the shared id, got %d", n)
	}
}

func TestPureColorMaterialNeverMissing(t *testing.T) {
	v := NewExportValidator()
	mat := pbrMaterial("mat_plain")

	result := v.ValidateForExport(nil, []model.Material{mat}, nil)
	for _, entry := range result.MissingAssets {
		for _, id := range entry.UsedBy {
			if id == "mat_plain" {
				t.Error("texture-less material must not appear in missingAssets")
			}
		}
	}
}

func TestDanglingMaterialReferenceWarns(t *testing.T) {
	v := NewExportValidator()
	elements := []model.BuildingElement{{ID: "wall_1", Kind: model.ElementWall, MaterialID: "mat_gone"}}

	result := v.ValidateForExport(elements, nil, nil)
	if len(result.Warnings) != 1 || result.Warnings[0].Type != WarnMissingMaterial {
		t.Fatalf("expected one MISSING_MATERIAL warning, got %+v", result.Warnings)
	}
	if !result.CanExport {
		t.Error("warnings must not block export")
	}
}

func TestOpacityWarning(t *testing.T) {
	v := NewExportValidator()
	mat := pbrMaterial("mat_glass")
	mat.Opacity = 1.4

	result := v.ValidateForExport(nil, []model.Material{mat}, nil)
	if len(result.Warnings) != 1 || result.Warnings[0].Type != WarnInvalidOpacity {
		t.Fatalf("expected one INVALID_OPACITY warning, got %+v", result.Warnings)
	}
	if !result.CanExport {
		t.Error("opacity warning must not block export")
	}
}

func TestPerformanceRatingBuckets(t *testing.T) {
	tests := []struct {
		materials int
		missing   int
		want      PerformanceRating
	}{
		{0, 0, RatingExcellent},
		{16, 0, RatingExcellent},
		{17, 0, RatingGood},
		{48, 0, RatingGood},
		{49, 0, RatingFair},
		{96, 0, RatingFair},
		{97, 0, RatingPoor},
		{10, 1, RatingGood}, // missing assets degrade one bucket
		{50, 2, RatingPoor},
		{5, 5, RatingPoor}, // too many missing is poor outright
	}
	for _, tt := range tests {
		if got := rateMaterials(tt.materials, tt.missing); got != tt.want {
			t.Errorf("rateMaterials(%d, %d) = %s, want %s", tt.materials, tt.missing, got, tt.want)
		}
	}
}

func TestExportDeterminism(t *testing.T) {
	v := NewExportValidator()
	a := pbrMaterial("mat_a")
	a.AlbedoMap = "tex_1"
	b := pbrMaterial("mat_b")
	b.NormalMap = "tex_2"
	b.Kind = model.MaterialOther
	materials := []model.Material{a, b}

	first := v.ValidateForExport(nil, materials, nil)
	second := v.ValidateForExport(nil, materials, nil)
	if first.CanExport != second.CanExport {
		t.Error("CanExport differs between identical runs")
	}
	if len(first.Errors) != len(second.Errors) {
		t.Errorf("error count differs: %d vs %d", len(first.Errors), len(second.Errors))
	}
	if len(first.MissingAssets) != len(second.MissingAssets) {
		t.Errorf("missing asset count differs: %d vs %d", len(first.MissingAssets), len(second.MissingAssets))
	}
	for i := range first.MissingAssets {
		if first.MissingAssets[i].ID != second.MissingAssets[i].ID {
			t.Errorf("missing asset order differs at %d", i)
		}
	}
}
