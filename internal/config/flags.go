package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagPerfMode  = flag.Bool("perf-mode", false, "Skip aggregate complexity checks")
	flagTolerance = flag.Float64("tolerance", 0, "Zero-extent tolerance override")
	flagMaxPolys  = flag.Int("max-polygons", 0, "Per-buffer triangle budget override")
)

// ParseArgs parses the given arguments against the registered flags.
// Call it before Load so flag overrides take effect; the remaining
// positional arguments are available via Args.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left over after ParseArgs.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPerfMode {
		cfg.Validation.PerformanceMode = true
	}
	if *flagTolerance > 0 {
		cfg.Validation.Tolerance = float32(*flagTolerance)
	}
	if *flagMaxPolys > 0 {
		cfg.Validation.MaxPolygonCount = *flagMaxPolys
	}
}
