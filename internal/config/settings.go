package config

import "github.com/hausbuild/hausbuild/internal/validation"

// Settings converts the validation section into the validator's own
// settings value, so the CLI and tests share one mapping.
func (v ValidationConfig) Settings() validation.Settings {
	return validation.Settings{
		Tolerance:            v.Tolerance,
		MinDimension:         v.MinDimension,
		MaxDimension:         v.MaxDimension,
		MaxPolygonCount:      v.MaxPolygonCount,
		CheckIntersections:   v.CheckIntersections,
		CheckManifold:        v.CheckManifold,
		CheckDegenerateFaces: v.CheckDegenerateFaces,
		PerformanceMode:      v.PerformanceMode,
	}
}
