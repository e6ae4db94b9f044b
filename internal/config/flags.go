package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSpans   = flag.Int("spans", 0, "Default loop cuts (Sx) for the patch grid")
	flagOffset  = flag.Int("offset", -1, "Default boundary rotation offset")
	flagWeldTol = flag.Float64("weld-tolerance", 0, "Seam weld distance tolerance")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagSpans > 0 {
		cfg.Fill.DefaultSpans = *flagSpans
	}
	if *flagOffset >= 0 {
		cfg.Fill.DefaultOffset = *flagOffset
	}
	if *flagWeldTol > 0 {
		cfg.Fill.WeldTolerance = *flagWeldTol
	}
}
