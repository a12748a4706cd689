package ir

// Version constants for the slug format and the tool.
const (
	// SlugFormatVersion changes whenever the same input would render a
	// different class name. Stored with every recorded compilation.
	SlugFormatVersion = "1"

	// ToolVersion is the stylec release version.
	ToolVersion = "0.1.0"
)
