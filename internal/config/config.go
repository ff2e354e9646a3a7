// Package config handles HausBuild configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ValidationConfig holds the geometry-validation thresholds and check
// toggles applied when a project is validated.
type ValidationConfig struct {
	Tolerance            float32 `yaml:"tolerance"`
	MinDimension         float32 `yaml:"min_dimension"`
	MaxDimension         float32 `yaml:"max_dimension"`
	MaxPolygonCount      int     `yaml:"max_polygon_count"`
	CheckIntersections   bool    `yaml:"check_intersections"`
	CheckManifold        bool    `yaml:"check_manifold"`
	CheckDegenerateFaces bool    `yaml:"check_degenerate_faces"`
	PerformanceMode      bool    `yaml:"performance_mode"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The validation
// defaults match the validator's own DefaultSettings.
func Default() *Config {
	return &Config{
		Validation: ValidationConfig{
			Tolerance:            1e-6,
			MinDimension:         0.01, // one centimeter
			MaxDimension:         1000,
			MaxPolygonCount:      100000,
			CheckIntersections:   true,
			CheckManifold:        true,
			CheckDegenerateFaces: true,
			PerformanceMode:      false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
