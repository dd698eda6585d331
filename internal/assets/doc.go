// Package assets provides the CSS stylesheets used to style datasheet PDFs.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (material-teal)
//	    ├── FilesystemLoader  - loads {name}.css from a directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// ResolveStyle is the entry point used by the generator: an empty reference
// selects the built-in Material Teal theme, a bare name selects an embedded
// style, and a path ending in .css loads that file from disk.
//
// # Security
//
// Style names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
