package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-datasheet/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // DATASHEETS_CONFIG: config file path
	Style      string        // DATASHEETS_STYLE: CSS style name or path
	Timeout    time.Duration // DATASHEETS_TIMEOUT: per-document timeout

	// Tier 2 - Layout
	ProjectRoot string // DATASHEETS_ROOT: project root
	InputDir    string // DATASHEETS_INPUT_DIR: Markdown tree
	OutputDir   string // DATASHEETS_OUTPUT_DIR: PDF tree
	AssetsDir   string // DATASHEETS_ASSETS_DIR: image directory

	// Tier 3 - Naming
	TitleHeading  string   // DATASHEETS_TITLE_HEADING: heading label
	TitlePrefix   string   // DATASHEETS_TITLE_PREFIX: token prefix
	TitleDisplay  string   // DATASHEETS_TITLE_DISPLAY: display name
	AssetPrefixes []string // DATASHEETS_ASSET_PREFIXES: comma-separated
}

// knownEnvVars lists valid DATASHEETS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"DATASHEETS_CONFIG":  true,
	"DATASHEETS_STYLE":   true,
	"DATASHEETS_TIMEOUT": true,
	// Tier 2 - Layout
	"DATASHEETS_ROOT":       true,
	"DATASHEETS_INPUT_DIR":  true,
	"DATASHEETS_OUTPUT_DIR": true,
	"DATASHEETS_ASSETS_DIR": true,
	// Tier 3 - Naming
	"DATASHEETS_TITLE_HEADING":  true,
	"DATASHEETS_TITLE_PREFIX":   true,
	"DATASHEETS_TITLE_DISPLAY":  true,
	"DATASHEETS_ASSET_PREFIXES": true,
	// Doctor
	"DATASHEETS_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized DATASHEETS_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("DATASHEETS_CONFIG"),
		Style:      os.Getenv("DATASHEETS_STYLE"),
		// Tier 2
		ProjectRoot: os.Getenv("DATASHEETS_ROOT"),
		InputDir:    os.Getenv("DATASHEETS_INPUT_DIR"),
		OutputDir:   os.Getenv("DATASHEETS_OUTPUT_DIR"),
		AssetsDir:   os.Getenv("DATASHEETS_ASSETS_DIR"),
		// Tier 3
		TitleHeading: os.Getenv("DATASHEETS_TITLE_HEADING"),
		TitlePrefix:  os.Getenv("DATASHEETS_TITLE_PREFIX"),
		TitleDisplay: os.Getenv("DATASHEETS_TITLE_DISPLAY"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("DATASHEETS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Split comma-separated prefixes, dropping empty entries
	if prefixes := os.Getenv("DATASHEETS_ASSET_PREFIXES"); prefixes != "" {
		for _, p := range strings.Split(prefixes, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.AssetPrefixes = append(cfg.AssetPrefixes, p)
			}
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DATASHEETS_* variables.
// Helps catch typos like DATASHEETS_INPUTDIR instead of DATASHEETS_INPUT_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "DATASHEETS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable overrides the config file value.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}

	// Tier 2
	if env.ProjectRoot != "" {
		cfg.ProjectRoot = env.ProjectRoot
	}
	if env.InputDir != "" {
		cfg.InputDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.OutputDir = env.OutputDir
	}
	if env.AssetsDir != "" {
		cfg.AssetsDir = env.AssetsDir
	}

	// Tier 3
	if env.TitleHeading != "" {
		cfg.Title.Heading = env.TitleHeading
	}
	if env.TitlePrefix != "" {
		cfg.Title.Prefix = env.TitlePrefix
	}
	if env.TitleDisplay != "" {
		cfg.Title.Display = env.TitleDisplay
	}
	if len(env.AssetPrefixes) > 0 {
		cfg.AssetPrefixes = append([]string(nil), env.AssetPrefixes...)
	}
}
