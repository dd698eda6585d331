// Package datasheet converts a tree of Markdown datasheets into styled PDF
// files using headless Chrome.
//
// # Quick Start
//
// Point a generator at the project layout, run it, and close when done:
//
//	gen, err := datasheet.NewGenerator(datasheet.Paths{
//	    ProjectRoot: root,
//	    InputDir:    filepath.Join(root, "doc", "datasheets_md"),
//	    OutputDir:   filepath.Join(root, "doc", "datasheets_pdf"),
//	    AssetsDir:   filepath.Join(root, "doc", "assets"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	report, err := gen.Run(ctx)
//
// Every Markdown file under InputDir becomes a PDF at the same relative path
// under OutputDir. A failing document is reported and skipped; the Report
// lists each failure as a *DocumentError.
//
// # Conversion Pipeline
//
// Each document goes through these stages, one document at a time:
//
//  1. Preprocessing (byte order mark, line endings)
//  2. Title formatting: "# Datasheet: trencadis_example_module" becomes
//     "# Datasheet: Trencadís Example Module" (see FormatTitle)
//  3. Markdown to HTML via Goldmark (tables, highlighted fenced code,
//     no intra-word emphasis)
//  4. Composition: asset paths rewritten to file:// URLs, document template,
//     Roboto font link, Material theme and highlight stylesheets
//  5. PDF rendering via headless Chrome (go-rod): A4, 1-inch margins,
//     "Page N of M" footer
//  6. Validation with pdfcpu and an atomic write to the output tree
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := datasheet.NewGenerator(paths,
//	    datasheet.WithTimeout(2*time.Minute),
//	    datasheet.WithTitleRule(datasheet.TitleRule{
//	        Heading: "Datasheet", Prefix: "acme", Display: "ACME",
//	    }),
//	    datasheet.WithAssetPrefixes("assets/", "doc/assets/", "img/"),
//	    datasheet.WithLogger(slog.Default()),
//	)
//
// Image sources that start with a relative prefix other than the configured
// ones are left untouched and reported as warnings.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package datasheet
