package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: datasheets [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Convert Markdown datasheets to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check Chrome and the project layout")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'datasheets help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: datasheets [generate] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every Markdown file under the input directory into a PDF at the")
	fmt.Fprintln(w, "same relative path under the output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -r, --root <dir>          Project root (default: current directory)")
	fmt.Fprintln(w, "  -i, --input <dir>         Markdown directory (default: doc/datasheets_md)")
	fmt.Fprintln(w, "  -o, --output <dir>        PDF directory (default: doc/datasheets_pdf)")
	fmt.Fprintln(w, "  -a, --assets <dir>        Assets directory (default: doc/assets)")
	fmt.Fprintln(w, "      --asset-prefix <p>    Image prefix mapped to the assets directory")
	fmt.Fprintln(w, "                            (repeatable; default: assets/, doc/assets/)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --style <s>           Embedded style name or CSS file path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show browser and timing diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DATASHEETS_CONFIG, DATASHEETS_ROOT, DATASHEETS_INPUT_DIR,")
	fmt.Fprintln(w, "  DATASHEETS_OUTPUT_DIR, DATASHEETS_ASSETS_DIR, DATASHEETS_STYLE,")
	fmt.Fprintln(w, "  DATASHEETS_TIMEOUT, DATASHEETS_TITLE_HEADING, DATASHEETS_TITLE_PREFIX,")
	fmt.Fprintln(w, "  DATASHEETS_TITLE_DISPLAY, DATASHEETS_ASSET_PREFIXES")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Priority: flags > environment > config file > defaults.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: datasheets doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that Chrome is available and that the project layout exists.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (env: DATASHEETS_CONFIG)")
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp prints help for a specific command.
// Returns ExitUsage for an unknown topic.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: datasheets version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: datasheets help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
