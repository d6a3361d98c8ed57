// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one source document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// DocumentRecord is the manifest entry for one converted source document.
type DocumentRecord struct {
	// Path is the source document path.
	Path string `json:"path" yaml:"path"`

	// OutputPath is where the converted document was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// SHA256 is the hex digest of the source content at conversion time.
	SHA256 string `json:"sha256" yaml:"sha256"`

	// Admonitions is the number of admonition blocks in the source.
	Admonitions int `json:"admonitions" yaml:"admonitions"`

	// Types counts admonitions per type (e.g. {"note": 2, "tip": 1}).
	Types map[string]int `json:"types,omitempty" yaml:"types,omitempty"`

	// Backend is the conversion backend that produced OutputPath.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Status is the outcome of the last conversion.
	Status ConversionStatus `json:"status" yaml:"status"`

	// ConvertedAt is when the last conversion ran.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
