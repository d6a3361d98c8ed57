package types

// ConversionBackend identifies what a batch conversion writes.
type ConversionBackend string

const (
	// BackendMarkdown writes Pandoc Markdown with fenced-div admonitions.
	BackendMarkdown ConversionBackend = "markdown"
	// BackendHTML writes an HTML preview rendered in-process.
	BackendHTML ConversionBackend = "html"
	// BackendPandoc pipes the converted Markdown through a pandoc container.
	BackendPandoc ConversionBackend = "pandoc"
)

// ConversionConfig holds settings for batch conversion of a Markdown tree.
type ConversionConfig struct {
	// Backend selects the output: markdown, html, or pandoc.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// SourceDir is the root of the Markdown tree to convert.
	SourceDir string `json:"source_dir" yaml:"source_dir" mapstructure:"source_dir"`

	// OutputDir receives converted files, mirroring SourceDir's layout.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Extensions lists the source file extensions to convert (default [".md"]).
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`

	// OutputExt replaces the source extension when non-empty (e.g. ".html").
	OutputExt string `json:"output_ext,omitempty" yaml:"output_ext,omitempty" mapstructure:"output_ext"`

	// Force reconverts files even when the manifest shows them unchanged.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// ManifestConfig holds settings for the conversion manifest database.
type ManifestConfig struct {
	// Dir is the directory containing manifest.db (default ".admonish").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled turns off manifest tracking; batch runs then skip only files
	// whose output already exists.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// PandocConfig holds settings for containerized pandoc rendering.
type PandocConfig struct {
	// Image is the pandoc container image (default "pandoc/core:latest").
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// To is the pandoc output format (default "html5").
	To string `json:"to" yaml:"to" mapstructure:"to"`

	// Standalone asks pandoc for a complete document with header and footer.
	Standalone bool `json:"standalone" yaml:"standalone" mapstructure:"standalone"`
}

// Config groups all admonish settings.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Manifest   ManifestConfig   `json:"manifest" yaml:"manifest" mapstructure:"manifest"`
	Pandoc     PandocConfig     `json:"pandoc" yaml:"pandoc" mapstructure:"pandoc"`
}

// DefaultConfig returns the settings used when no config file or flag
// overrides them.
func DefaultConfig() Config {
	return Config{
		Conversion: ConversionConfig{
			Backend:    BackendMarkdown,
			SourceDir:  "docs",
			OutputDir:  "build/docs",
			Extensions: []string{".md"},
		},
		Manifest: ManifestConfig{
			Dir: ".admonish",
		},
		Pandoc: PandocConfig{
			Image: "pandoc/core:latest",
			To:    "html5",
		},
	}
}
