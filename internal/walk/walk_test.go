// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package walk

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

// writeFile creates a file and its parent directories under root.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func page(title string) string {
	return "---\ntitle: " + title + "\n---\n\nBody.\n"
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Welcome.md", page("Welcome"))
	writeFile(t, root, "Guide/Setup.md", page("Setup"))
	writeFile(t, root, "Guide/Setup/attachments/diagram.png", "png-bytes")
	writeFile(t, root, "Reference/Setup.md", page("Setup"))
	writeFile(t, root, "README.md", "# export index, not a page\n")

	snap, err := Walk(root, types.WalkConfig{})
	if err != nil {
		t.Fatal(err)
	}

	wantPages := []string{"Guide/Setup.md", "Reference/Setup.md", "Welcome.md"}
	var gotPages []string
	for _, pg := range snap.Pages {
		gotPages = append(gotPages, pg.SourcePath)
	}
	if !reflect.DeepEqual(gotPages, wantPages) {
		t.Errorf("pages = %v, want %v", gotPages, wantPages)
	}

	if len(snap.Attachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(snap.Attachments))
	}
	at := snap.Attachments[0]
	if at.SourcePath != "Guide/Setup/attachments/diagram.png" {
		t.Errorf("attachment path = %q", at.SourcePath)
	}
	if at.OwnerPage != "Guide/Setup" {
		t.Errorf("owner = %q, want Guide/Setup", at.OwnerPage)
	}
	if at.Size != int64(len("png-bytes")) {
		t.Errorf("size = %d", at.Size)
	}

	// The Guide/Setup page owns the attachment stored in its folder.
	if refs := snap.Pages[0].AttachmentRefs; len(refs) != 1 || refs[0] != at.SourcePath {
		t.Errorf("attachment refs = %v", snap.Pages[0].AttachmentRefs)
	}
}

func TestWalkTitlesAndAncestry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Guide/Advanced/Tuning.md", page("Performance Tuning"))
	writeFile(t, root, "Guide/Setup.md", "no frontmatter here\n")
	writeFile(t, root, "Guide/Guide.md", page("Guide"))

	snap, err := Walk(root, types.WalkConfig{})
	if err != nil {
		t.Fatal(err)
	}
	byPath := map[string]types.PageNode{}
	for _, pg := range snap.Pages {
		byPath[pg.SourcePath] = pg
	}

	tuning := byPath["Guide/Advanced/Tuning.md"]
	if tuning.Title != "Performance Tuning" {
		t.Errorf("title = %q, want frontmatter title", tuning.Title)
	}
	if !reflect.DeepEqual(tuning.Ancestry, []string{"Guide", "Advanced"}) {
		t.Errorf("ancestry = %v", tuning.Ancestry)
	}

	// No frontmatter: title falls back to the filename stem.
	if got := byPath["Guide/Setup.md"].Title; got != "Setup" {
		t.Errorf("fallback title = %q, want Setup", got)
	}

	// A page inside a folder named after itself is not its own ancestor.
	if got := byPath["Guide/Guide.md"].Ancestry; got != nil {
		t.Errorf("self-folder ancestry = %v, want none", got)
	}
}

func TestWalkOrderStable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Zebra.md", page("Zebra"))
	writeFile(t, root, "Alpha/One.md", page("One"))
	writeFile(t, root, "Alpha/Two.md", page("Two"))
	writeFile(t, root, "Mid.md", page("Mid"))

	first, err := Walk(root, types.WalkConfig{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Walk(root, types.WalkConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Pages, second.Pages) {
		t.Error("two walks over an unchanged tree differ")
	}

	var got []string
	for _, pg := range first.Pages {
		got = append(got, pg.SourcePath)
	}
	want := []string{"Alpha/One.md", "Alpha/Two.md", "Mid.md", "Zebra.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want lexicographic %v", got, want)
	}
}

func TestWalkStructureProblem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Good/Page.md", page("Page"))
	// A page folder holding only attachments: content file is missing.
	writeFile(t, root, "Orphan/attachments/file.bin", "bytes")

	snap, err := Walk(root, types.WalkConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Problems) != 1 {
		t.Fatalf("problems = %v, want one", snap.Problems)
	}
	if snap.Problems[0].Path != "Orphan" {
		t.Errorf("problem path = %q", snap.Problems[0].Path)
	}
	// The orphaned attachment is still collected; it must not be lost.
	if len(snap.Attachments) != 1 {
		t.Errorf("attachments = %d, want 1", len(snap.Attachments))
	}
	if len(snap.Pages) != 1 {
		t.Errorf("pages = %d, want 1", len(snap.Pages))
	}
}

func TestWalkExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Keep.md", page("Keep"))
	writeFile(t, root, "Drafts/Tmp.md", page("Tmp"))
	writeFile(t, root, "Keep/attachments/skip.tmp", "x")
	writeFile(t, root, "Keep/attachments/keep.png", "x")

	snap, err := Walk(root, types.WalkConfig{Exclude: []string{"Drafts/**", "**/*.tmp"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Pages) != 1 || snap.Pages[0].SourcePath != "Keep.md" {
		t.Errorf("pages = %v", snap.Pages)
	}
	if len(snap.Attachments) != 1 || snap.Attachments[0].SourcePath != "Keep/attachments/keep.png" {
		t.Errorf("attachments = %v", snap.Attachments)
	}
}

func TestWalkInvalidExcludePattern(t *testing.T) {
	if _, err := Walk(t.TempDir(), types.WalkConfig{Exclude: []string{"[bad"}}); err == nil {
		t.Error("expected error for invalid exclude pattern")
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "absent"), types.WalkConfig{}); err == nil {
		t.Error("expected error for unreadable input tree")
	}
}

func TestWalkSkipsMarkdownInAttachments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Page.md", page("Page"))
	writeFile(t, root, "Page/attachments/stray.md", "not an asset")

	snap, err := Walk(root, types.WalkConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Attachments) != 0 {
		t.Errorf("attachments = %v, want none", snap.Attachments)
	}
	if len(snap.Pages) != 1 {
		t.Errorf("pages = %d, want 1", len(snap.Pages))
	}
}
