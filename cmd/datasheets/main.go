package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	datasheet "github.com/alnah/go-datasheet"
	"github.com/alnah/go-datasheet/internal/assets"
	"github.com/alnah/go-datasheet/internal/config"
	"github.com/alnah/go-datasheet/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches the command in args (args[0] is the program name) and
// returns the process exit code. With no command, generate runs.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		return runGenerateCmd(nil, env)
	}

	cmd, rest := args[1], args[2:]
	if strings.HasPrefix(cmd, "-") {
		return runGenerateCmd(args[1:], env)
	}

	switch cmd {
	case "generate":
		return runGenerateCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-datasheet %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runGenerateCmd parses generate flags, runs the generator and maps the
// outcome to an exit code.
func runGenerateCmd(args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return exitCodeFor(fmt.Errorf("%w: %v", ErrUsage, err))
	}
	if len(positional) > 0 {
		fmt.Fprintf(env.Stderr, "unexpected argument: %s\n", positional[0])
		printGenerateUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runGenerate(ctx, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate resolves configuration and runs one generation pass.
// Priority: flags > environment > config file > defaults.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfigFile(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	cwd, err := env.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	paths, err := cfg.ResolvePaths(cwd)
	if err != nil {
		return err
	}

	css, err := assets.ResolveStyle(cfg.Style)
	if err != nil {
		return err
	}

	stdout := env.Stdout
	if flags.common.quiet {
		stdout = io.Discard
	}
	logger := slog.New(slog.DiscardHandler)
	if flags.common.verbose {
		logger = slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []datasheet.Option{
		datasheet.WithStdout(stdout),
		datasheet.WithStderr(env.Stderr),
		datasheet.WithLogger(logger),
		datasheet.WithTimeout(timeout),
		datasheet.WithTitleRule(datasheet.TitleRule{
			Heading: cfg.Title.Heading,
			Prefix:  cfg.Title.Prefix,
			Display: cfg.Title.Display,
		}),
		datasheet.WithStylesheet(css),
		datasheet.WithAssetPrefixes(cfg.AssetPrefixes...),
	}
	if env.Renderer != nil {
		opts = append(opts, datasheet.WithRenderer(env.Renderer))
	}

	gen, err := datasheet.NewGenerator(datasheet.Paths{
		ProjectRoot: paths.ProjectRoot,
		InputDir:    paths.InputDir,
		OutputDir:   paths.OutputDir,
		AssetsDir:   paths.AssetsDir,
	}, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := gen.Close(); closeErr != nil {
			logger.Debug("closing generator", "error", closeErr)
		}
	}()

	logger.Debug("starting generation",
		"root", paths.ProjectRoot, "input", paths.InputDir, "output", paths.OutputDir,
		"assets", paths.AssetsDir, "timeout", timeout)

	report, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	if report.InputMissing && !flags.common.quiet {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForInputDirectory(), "\n"))
	}
	return nil
}

// loadConfigFile loads the config named by the flag, else by the environment.
// With neither set, an empty config is returned for defaults to fill.
func loadConfigFile(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return &config.Config{}, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}
