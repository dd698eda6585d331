package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-datasheet/internal/fileutil"
	"github.com/alnah/go-datasheet/internal/pipeline"
	"github.com/alnah/go-datasheet/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxStyleLength   = 4096 // name or CSS file path
	MaxTimeoutLength = 20   // "2m30s"
	MaxHeadingLength = 100  // "Datasheet"
	MaxPrefixLength  = 50   // "trencadis"
	MaxDisplayLength = 100  // "Trencadís"
	MaxAssetPrefixes = 20
)

// Default layout under the project root.
const (
	DefaultInputDir  = "doc/datasheets_md"
	DefaultOutputDir = "doc/datasheets_pdf"
	DefaultAssetsDir = "doc/assets"
	DefaultTimeout   = 30 * time.Second
	DefaultHeading   = "Datasheet"
	DefaultPrefix    = "trencadis"
	DefaultDisplay   = "Trencadís"
)

// prefixPattern restricts the title prefix to word characters.
var prefixPattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)

// Config holds all configuration for datasheet generation.
type Config struct {
	ProjectRoot   string      `yaml:"projectRoot"`   // Empty = current directory
	InputDir      string      `yaml:"inputDir"`      // Relative to projectRoot unless absolute
	OutputDir     string      `yaml:"outputDir"`     // Relative to projectRoot unless absolute
	AssetsDir     string      `yaml:"assetsDir"`     // Relative to projectRoot unless absolute
	Style         string      `yaml:"style"`         // Embedded style name or .css path (empty = material-teal)
	Timeout       string      `yaml:"timeout"`       // Go duration per document (empty = 30s)
	Title         TitleConfig `yaml:"title"`         // Title token rewrite rule
	AssetPrefixes []string    `yaml:"assetPrefixes"` // Relative src prefixes resolved against assetsDir
}

// TitleConfig defines the datasheet title rewrite rule.
type TitleConfig struct {
	Heading string `yaml:"heading"` // Heading label after "# ", e.g. "Datasheet"
	Prefix  string `yaml:"prefix"`  // Token prefix before the first underscore
	Display string `yaml:"display"` // Replacement for the prefix
}

// Paths holds absolute directories resolved from a Config.
type Paths struct {
	ProjectRoot string
	InputDir    string
	OutputDir   string
	AssetsDir   string
}

// DefaultConfig returns the configuration matching the conventional
// doc/ layout with the Material Teal theme.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every empty field with its default value.
func (c *Config) ApplyDefaults() {
	if c.InputDir == "" {
		c.InputDir = filepath.FromSlash(DefaultInputDir)
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.FromSlash(DefaultOutputDir)
	}
	if c.AssetsDir == "" {
		c.AssetsDir = filepath.FromSlash(DefaultAssetsDir)
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout.String()
	}
	if c.Title.Heading == "" {
		c.Title.Heading = DefaultHeading
	}
	if c.Title.Prefix == "" {
		c.Title.Prefix = DefaultPrefix
	}
	if c.Title.Display == "" {
		c.Title.Display = DefaultDisplay
	}
	if len(c.AssetPrefixes) == 0 {
		c.AssetPrefixes = append([]string(nil), pipeline.DefaultAssetPrefixes...)
	}
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"projectRoot", c.ProjectRoot, MaxPathLength},
		{"inputDir", c.InputDir, MaxPathLength},
		{"outputDir", c.OutputDir, MaxPathLength},
		{"assetsDir", c.AssetsDir, MaxPathLength},
		{"style", c.Style, MaxStyleLength},
		{"timeout", c.Timeout, MaxTimeoutLength},
		{"title.heading", c.Title.Heading, MaxHeadingLength},
		{"title.prefix", c.Title.Prefix, MaxPrefixLength},
		{"title.display", c.Title.Display, MaxDisplayLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: timeout: %q is not a positive duration", ErrInvalidValue, c.Timeout)
		}
	}

	if c.Title.Prefix != "" && !prefixPattern.MatchString(c.Title.Prefix) {
		return fmt.Errorf("%w: title.prefix: %q must contain only letters and digits", ErrInvalidValue, c.Title.Prefix)
	}
	if strings.ContainsAny(c.Title.Heading, "\n\r") {
		return fmt.Errorf("%w: title.heading: must be a single line", ErrInvalidValue)
	}

	if len(c.AssetPrefixes) > MaxAssetPrefixes {
		return fmt.Errorf("%w: assetPrefixes: %d entries, max %d", ErrInvalidValue, len(c.AssetPrefixes), MaxAssetPrefixes)
	}
	for i, p := range c.AssetPrefixes {
		field := fmt.Sprintf("assetPrefixes[%d]", i)
		if err := validateFieldLength(field, p, MaxPathLength); err != nil {
			return err
		}
		if p == "" || fileutil.IsURL(p) || strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
			return fmt.Errorf("%w: %s: %q must be a non-empty relative prefix", ErrInvalidValue, field, p)
		}
	}

	return nil
}

// TimeoutDuration returns the per-document timeout, or DefaultTimeout when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: timeout: %q is not a positive duration", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// ResolvePaths turns the configured directories into absolute paths.
// An empty ProjectRoot resolves to cwd, or to its parent when cwd is itself
// a "doc" directory without a nested doc/ (the layout of a script run from doc/).
// Relative directories are joined to the project root.
func (c *Config) ResolvePaths(cwd string) (Paths, error) {
	root := c.ProjectRoot
	if root == "" {
		root = detectProjectRoot(cwd)
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("resolving project root: %w", err)
	}

	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = filepath.FromSlash(fallback)
		}
		if filepath.IsAbs(dir) {
			return filepath.Clean(dir)
		}
		return filepath.Join(root, dir)
	}

	return Paths{
		ProjectRoot: root,
		InputDir:    resolve(c.InputDir, DefaultInputDir),
		OutputDir:   resolve(c.OutputDir, DefaultOutputDir),
		AssetsDir:   resolve(c.AssetsDir, DefaultAssetsDir),
	}, nil
}

// detectProjectRoot returns the parent of cwd when cwd looks like the doc/
// directory itself, otherwise cwd.
func detectProjectRoot(cwd string) string {
	if filepath.Base(cwd) == "doc" && !fileutil.DirExists(filepath.Join(cwd, "doc")) {
		return filepath.Dir(cwd)
	}
	return cwd
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file are left empty; call ApplyDefaults after
// layering environment and flag overrides.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the candidate files for a config name, in lookup order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-datasheet/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-datasheet", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
