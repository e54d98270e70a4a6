package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagRows       = flag.Int("rows", 0, "Grid rows")
	flagColumns    = flag.Int("columns", 0, "Grid columns")
	flagHeightmap  = flag.String("heightmap", "", "Path to a YAML heightmap")
	flagOutput     = flag.String("o", "", "Export output path")
	flagFullscreen = flag.Bool("fullscreen", false, "Run the viewer fullscreen")
	flagWidth      = flag.Int("width", 0, "Viewer window width")
	flagHeight     = flag.Int("height", 0, "Viewer window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
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
	if *flagRows > 0 {
		cfg.Grid.Rows = *flagRows
	}
	if *flagColumns > 0 {
		cfg.Grid.Columns = *flagColumns
	}
	if *flagHeightmap != "" {
		cfg.Grid.Heightmap = *flagHeightmap
	}
	if *flagOutput != "" {
		cfg.Export.Output = *flagOutput
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
