// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the value types shared between restructuring stages.
package types

// PageNode is one exported wiki page found in the input tree.
type PageNode struct {
	// SourcePath is the slash-separated path relative to the input root.
	// Unique within one snapshot.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Title is the human-readable page title, taken from the content file's
	// frontmatter when present. Not guaranteed unique.
	Title string `json:"title" yaml:"title"`

	// Ancestry lists ancestor titles from the space root down to the page's
	// parent. Empty for root-level pages.
	Ancestry []string `json:"ancestry,omitempty" yaml:"ancestry,omitempty"`

	// Content is the raw page body including any frontmatter block.
	Content string `json:"-" yaml:"-"`

	// AttachmentRefs lists the source paths of attachments stored in this
	// page's own attachments folder.
	AttachmentRefs []string `json:"attachment_refs,omitempty" yaml:"attachment_refs,omitempty"`
}

// Attachment is one asset file found in an attachments folder.
type Attachment struct {
	// SourcePath is the slash-separated path relative to the input root.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OwnerPage is the directory whose attachments folder held the file.
	// Provenance only; output placement does not depend on it.
	OwnerPage string `json:"owner_page" yaml:"owner_page"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// StructureProblem records a page folder that could not be treated as a page,
// typically because it holds no content file. Problems are reported and the
// node is skipped; they never abort a run.
type StructureProblem struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// Snapshot is the fully materialized result of one input tree walk. Pages and
// Attachments are in stable lexicographic traversal order; downstream stages
// rely on that order for deterministic collision suffixing.
type Snapshot struct {
	Pages       []PageNode
	Attachments []Attachment
	Problems    []StructureProblem
}
