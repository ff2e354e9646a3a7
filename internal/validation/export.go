package validation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hausbuild/hausbuild/internal/model"
)

// Performance-rating bucket thresholds over the material count. Missing
// assets degrade the bucket by one step, and more than
// ratingMissingLimit missing assets is poor outright.
const (
	ratingExcellentMax = 16
	ratingGoodMax      = 48
	ratingFairMax      = 96
	ratingMissingLimit = 4
)

// ExportValidator checks materials and their asset references before an
// export is attempted. Every call works purely on its inputs.
type ExportValidator struct {
	log *zap.Logger
}

// NewExportValidator creates an export validator.
func NewExportValidator() *ExportValidator {
	return &ExportValidator{log: zap.NewNop()}
}

// SetLogger attaches a logger for per-phase debug output. Nil restores
// the no-op default.
func (v *ExportValidator) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	v.log = log
}

// ValidateForExport classifies material formats, resolves texture
// references against the asset library, and computes export-readiness
// metrics. The element collection is consulted only for dangling
// material references; it is never modified.
func (v *ExportValidator) ValidateForExport(elements []model.BuildingElement, materials []model.Material, assets []model.Asset) ExportValidationResult {
	v.log.Debug("export: material checks",
		zap.Int("materials", len(materials)),
		zap.Int("assets", len(assets)))

	assetIDs := make(map[string]bool, len(assets))
	for i := range assets {
		assetIDs[assets[i].ID] = true
	}

	var errors []ExportError
	var warnings []ExportWarning
	addError := func(e ExportError) {
		e.ID = fmt.Sprintf("exp-err-%03d", len(errors)+1)
		errors = append(errors, e)
	}
	addWarning := func(w ExportWarning) {
		w.ID = fmt.Sprintf("exp-warn-%03d", len(warnings)+1)
		warnings = append(warnings, w)
	}

	// Missing references merge by asset id; missingOrder keeps the
	// output in first-seen order.
	missingByID := make(map[string]*MissingAsset)
	var missingOrder []string

	texturedMaterials := 0
	for i := range materials {
		mat := &materials[i]

		switch mat.Kind {
		case model.MaterialPBR, model.MaterialStandard, model.MaterialUnlit:
		default:
			addError(ExportError{
				Type:       ErrUnsupportedFormat,
				Message:    fmt.Sprintf("material %q has unsupported type %q", mat.ID, mat.Kind),
				MaterialID: mat.ID,
				Severity:   SeverityMajor,
				Fixable:    true,
			})
		}

		refs := mat.TextureRefs()
		if len(refs) > 0 {
			texturedMaterials++
		}
		// Pure-color materials have no refs and can never land in
		// missingAssets.
		for _, ref := range refs {
			if assetIDs[ref] {
				continue
			}
			entry, ok := missingByID[ref]
			if !ok {
				entry = &MissingAsset{ID: ref, Kind: "texture"}
				missingByID[ref] = entry
				missingOrder = append(missingOrder, ref)
				addError(ExportError{
					Type:             ErrMissingAsset,
					Message:          fmt.Sprintf("texture %q is referenced but not in the asset library", ref),
					AssetID:          ref,
					MaterialID:       mat.ID,
					Severity:         SeverityMajor,
					Fixable:          true,
					AutoFixAvailable: true, // a placeholder texture can stand in
				})
			}
			if !containsString(entry.UsedBy, mat.ID) {
				entry.UsedBy = append(entry.UsedBy, mat.ID)
			}
		}

		if mat.Opacity < 0 || mat.Opacity > 1 {
			addWarning(ExportWarning{
				Type:       WarnInvalidOpacity,
				Message:    fmt.Sprintf("material %q opacity %.2f is outside [0, 1]", mat.ID, mat.Opacity),
				MaterialID: mat.ID,
			})
		}
	}

	materialIDs := make(map[string]bool, len(materials))
	for i := range materials {
		materialIDs[materials[i].ID] = true
	}
	for i := range elements {
		el := &elements[i]
		if el.MaterialID != "" && !materialIDs[el.MaterialID] {
			addWarning(ExportWarning{
				Type:       WarnMissingMaterial,
				Message:    fmt.Sprintf("element %q references unknown material %q", el.ID, el.MaterialID),
				MaterialID: el.MaterialID,
				ElementID:  el.ID,
			})
		}
	}

	missing := make([]MissingAsset, 0, len(missingOrder))
	for _, id := range missingOrder {
		missing = append(missing, *missingByID[id])
	}

	canExport := len(errors) == 0
	v.log.Debug("export: done",
		zap.Int("errors", len(errors)),
		zap.Int("warnings", len(warnings)),
		zap.Int("missingAssets", len(missing)))
	return ExportValidationResult{
		IsValid:       canExport,
		CanExport:     canExport,
		Errors:        errors,
		Warnings:      warnings,
		MissingAssets: missing,
		PerformanceMetrics: PerformanceMetrics{
			TotalMaterials:    len(materials),
			TexturedMaterials: texturedMaterials,
			MissingAssets:     len(missing),
			PerformanceRating: rateMaterials(len(materials), len(missing)),
		},
	}
}

// rateMaterials buckets the material count, degraded by missing assets.
// Always yields one of the four enumerated ratings.
func rateMaterials(totalMaterials, missingAssets int) PerformanceRating {
	if missingAssets > ratingMissingLimit {
		return RatingPoor
	}
	bucket := 0
	switch {
	case totalMaterials <= ratingExcellentMax:
		bucket = 0
	case totalMaterials <= ratingGoodMax:
		bucket = 1
	case totalMaterials <= ratingFairMax:
		bucket = 2
	default:
		bucket = 3
	}
	if missingAssets > 0 && bucket < 3 {
		bucket++
	}
	return [...]PerformanceRating{RatingExcellent, RatingGood, RatingFair, RatingPoor}[bucket]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
