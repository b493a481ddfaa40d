// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EntryKind distinguishes the two destination categories of the flat layout.
type EntryKind string

const (
	KindPage       EntryKind = "page"
	KindAttachment EntryKind = "attachment"
)

// Collision records one candidate name that was already taken and the
// suffixed name it received instead. Informational, not an error.
type Collision struct {
	SourcePath string    `json:"source_path" yaml:"source_path"`
	Candidate  string    `json:"candidate" yaml:"candidate"`
	Resolved   string    `json:"resolved" yaml:"resolved"`
	Kind       EntryKind `json:"kind" yaml:"kind"`
}

// Truncation records a flat name that had to be shortened because its
// ancestry chain exceeded the configured length bound.
type Truncation struct {
	SourcePath string `json:"source_path" yaml:"source_path"`
	Candidate  string `json:"candidate" yaml:"candidate"`
	Shortened  string `json:"shortened" yaml:"shortened"`
}

// Mapping maps every source path to its flat destination path relative to
// the output root ("pages/..." or "attachments/..."). It is built once by
// the name resolver, is complete before any rewriting begins, and must be
// treated as read-only afterwards; reads need no synchronization.
type Mapping struct {
	Pages       map[string]string
	Attachments map[string]string

	Collisions  []Collision
	Truncations []Truncation
}

// Lookup returns the destination for src in either category.
func (m *Mapping) Lookup(src string) (dest string, kind EntryKind, ok bool) {
	if d, found := m.Pages[src]; found {
		return d, KindPage, true
	}
	if d, found := m.Attachments[src]; found {
		return d, KindAttachment, true
	}
	return "", "", false
}

// Len returns the total number of mapped source paths.
func (m *Mapping) Len() int {
	return len(m.Pages) + len(m.Attachments)
}
