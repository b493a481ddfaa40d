// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// BrokenLink records a relative reference whose target has no mapping entry.
// The reference is left unchanged in the output; the report points a human
// at it.
type BrokenLink struct {
	Page      string `json:"page" yaml:"page"`
	Reference string `json:"reference" yaml:"reference"`
}

// FileFailure records one page write or attachment copy that failed. The
// run continues past individual failures.
type FileFailure struct {
	Path string `json:"path" yaml:"path"`
	Err  string `json:"error" yaml:"error"`
}

// RunReport summarizes one restructuring run. It is the single source of
// truth for what needs manual follow-up after an export.
type RunReport struct {
	PagesWritten      int
	AttachmentsCopied int

	Collisions  []Collision
	Truncations []Truncation
	Problems    []StructureProblem
	BrokenLinks []BrokenLink
	Failures    []FileFailure
}

// Total returns the number of relocation attempts, successful or failed.
func (r *RunReport) Total() int {
	return r.PagesWritten + r.AttachmentsCopied + len(r.Failures)
}

// HasFailures reports whether any per-file write or copy failed.
func (r *RunReport) HasFailures() bool {
	return len(r.Failures) > 0
}

// NeedsAttention reports whether the run produced anything a human should
// review: broken links, skipped nodes, failures, or resolved collisions.
func (r *RunReport) NeedsAttention() bool {
	return len(r.BrokenLinks) > 0 || len(r.Problems) > 0 ||
		len(r.Failures) > 0 || len(r.Collisions) > 0 || len(r.Truncations) > 0
}
