// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultSeparator joins sanitized ancestor titles in flat page names.
	DefaultSeparator = "_"

	// DefaultMaxNameLength bounds the flat name stem in runes. Chains that
	// exceed it lose their oldest ancestors first.
	DefaultMaxNameLength = 150
)

// WalkConfig holds settings for the input tree walk.
type WalkConfig struct {
	// Exclude lists doublestar glob patterns matched against slash-separated
	// paths relative to the input root. Matching files and directories are
	// skipped.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// NameConfig holds settings for flat name resolution.
type NameConfig struct {
	// Separator joins ancestry tokens in flat page names (default "_").
	Separator string `json:"separator" yaml:"separator"`

	// MaxNameLength bounds the flat name stem in runes (default 150).
	MaxNameLength int `json:"max_name_length" yaml:"max_name_length"`

	// FlatTitles disables ancestry encoding: flat page names carry the page
	// title alone and duplicates receive numeric suffixes.
	FlatTitles bool `json:"flat_titles" yaml:"flat_titles"`
}

// RestructureConfig groups all settings for one restructuring run.
type RestructureConfig struct {
	Walk  WalkConfig `json:"walk" yaml:"walk"`
	Names NameConfig `json:"names" yaml:"names"`

	// SpaceKey, when set, is injected into page frontmatter that carries no
	// space key of its own.
	SpaceKey string `json:"space_key,omitempty" yaml:"space_key,omitempty"`

	// ReportFile is the run report filename under the output root
	// (default "README.md").
	ReportFile string `json:"report_file" yaml:"report_file"`

	// ManifestFile is the rename manifest filename under the output root
	// (default "manifest.yaml"). Empty disables the manifest.
	ManifestFile string `json:"manifest_file" yaml:"manifest_file"`

	// IndexDB is an optional path for a SQLite rename index. Empty disables it.
	IndexDB string `json:"index_db,omitempty" yaml:"index_db,omitempty"`
}
