package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-datasheet/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds the project directory flags.
type layoutFlags struct {
	root   string
	input  string
	output string
	assets string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common        commonFlags
	layout        layoutFlags
	style         string
	timeout       string
	assetPrefixes []string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show browser and timing diagnostics")
}

// addLayoutFlags adds directory flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.root, "root", "r", "", "project root (default: current directory)")
	fs.StringVarP(&f.input, "input", "i", "", "Markdown directory, relative to the root")
	fs.StringVarP(&f.output, "output", "o", "", "PDF directory, relative to the root")
	fs.StringVarP(&f.assets, "assets", "a", "", "assets directory, relative to the root")
}

// parseGenerateFlags parses generate command flags and returns positional args.
// Usage goes to w when parsing fails or --help is given.
func parseGenerateFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &generateFlags{}

	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	fs.StringVar(&f.style, "style", "", "embedded style name or CSS file path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.StringSliceVar(&f.assetPrefixes, "asset-prefix", nil, "relative image prefix mapped to the assets directory (repeatable)")

	fs.Usage = func() { printGenerateUsage(w) }

	// With ContinueOnError pflag reports parse errors only through the
	// return value; -h already printed usage.
	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(w, "error: %v\n", err)
			printGenerateUsage(w)
		}
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// mergeFlags applies explicitly set flags over the config.
func mergeFlags(f *generateFlags, cfg *config.Config) {
	if f.layout.root != "" {
		cfg.ProjectRoot = f.layout.root
	}
	if f.layout.input != "" {
		cfg.InputDir = f.layout.input
	}
	if f.layout.output != "" {
		cfg.OutputDir = f.layout.output
	}
	if f.layout.assets != "" {
		cfg.AssetsDir = f.layout.assets
	}
	if f.style != "" {
		cfg.Style = f.style
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if len(f.assetPrefixes) > 0 {
		cfg.AssetPrefixes = append([]string(nil), f.assetPrefixes...)
	}
}
