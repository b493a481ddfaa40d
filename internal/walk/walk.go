// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk scans an exported space tree and materializes an ordered
// snapshot of pages and attachments. The walk is depth-first and
// lexicographic, so reruns over an unchanged tree produce an identical
// sequence; collision suffixing downstream depends on that.
package walk

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

const (
	attachmentsDir = "attachments"
	contentExt     = ".md"
	indexFile      = "README.md"
)

// Walk reads the tree rooted at root and returns a snapshot of its pages and
// attachments. Page folders without a content file are recorded as structure
// problems and skipped; any read error aborts the walk, since downstream
// stages cannot trust a partial snapshot.
func Walk(root string, cfg types.WalkConfig) (*types.Snapshot, error) {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	snap := &types.Snapshot{}
	// Directories seen outside attachments folders, and which of them hold a
	// content file directly. Used to flag page folders with no content.
	dirsSeen := map[string]bool{}
	dirsWithContent := map[string]bool{}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reading input tree at %s: %w", p, err)
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if excluded(rel, cfg.Exclude) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !underAttachments(rel) && path.Base(rel) != attachmentsDir {
				dirsSeen[rel] = true
			}
			return nil
		}

		if underAttachments(rel) {
			// The exporter drops stray Markdown into attachment folders;
			// those are not assets.
			if strings.EqualFold(path.Ext(rel), contentExt) {
				return nil
			}
			info, infoErr := d.Info()
			if infoErr != nil {
				return fmt.Errorf("reading attachment %s: %w", rel, infoErr)
			}
			snap.Attachments = append(snap.Attachments, types.Attachment{
				SourcePath: rel,
				OwnerPage:  ownerOf(rel),
				Size:       info.Size(),
			})
			return nil
		}

		if !strings.EqualFold(path.Ext(rel), contentExt) || path.Base(rel) == indexFile {
			return nil
		}

		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return fmt.Errorf("reading page %s: %w", rel, readErr)
		}
		dirsWithContent[path.Dir(rel)] = true
		// A sibling page named after a directory owns that directory too
		// (Guide/Setup.md owns Guide/Setup/).
		dirsWithContent[strings.TrimSuffix(rel, path.Ext(rel))] = true
		snap.Pages = append(snap.Pages, types.PageNode{
			SourcePath: rel,
			Title:      pageTitle(data, strings.TrimSuffix(path.Base(rel), path.Ext(rel))),
			Ancestry:   ancestryOf(rel),
			Content:    string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for dir := range dirsSeen {
		if !dirsWithContent[dir] {
			snap.Problems = append(snap.Problems, types.StructureProblem{
				Path:   dir,
				Reason: "no content file in page folder",
			})
		}
	}
	sort.Slice(snap.Problems, func(i, j int) bool {
		return snap.Problems[i].Path < snap.Problems[j].Path
	})

	assignAttachmentRefs(snap)
	return snap, nil
}

// pageTitle extracts the title from a frontmatter block, falling back to the
// filename-derived title when the block is missing or unparseable.
func pageTitle(content []byte, fallback string) string {
	var meta struct {
		Title string `yaml:"title"`
	}
	if _, err := frontmatter.Parse(bytes.NewReader(content), &meta); err == nil {
		if t := strings.TrimSpace(meta.Title); t != "" {
			return t
		}
	}
	return fallback
}

// ancestryOf derives the ancestor titles of a page from its directory
// components. The exporter names each directory after the sanitized title of
// the ancestor page it groups. When a page sits inside a folder named after
// itself (Guide/Setup/Setup.md), that folder is the page's own, not an
// ancestor.
func ancestryOf(rel string) []string {
	dir := path.Dir(rel)
	if dir == "." {
		return nil
	}
	parts := strings.Split(dir, "/")
	stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if parts[len(parts)-1] == stem {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil
	}
	return parts
}

// underAttachments reports whether rel sits inside an attachments folder.
func underAttachments(rel string) bool {
	for _, part := range strings.Split(path.Dir(rel), "/") {
		if part == attachmentsDir {
			return true
		}
	}
	return false
}

// ownerOf returns the directory that holds rel's attachments folder.
func ownerOf(rel string) string {
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if part == attachmentsDir {
			return strings.Join(parts[:i], "/")
		}
	}
	return ""
}

// assignAttachmentRefs links each attachment back to the page whose folder
// holds it, when that page exists. A page's folder is either the directory
// it lives in (when named after the page) or the sibling directory sharing
// its stem.
func assignAttachmentRefs(snap *types.Snapshot) {
	byFolder := map[string]int{}
	for i, pg := range snap.Pages {
		stem := strings.TrimSuffix(pg.SourcePath, path.Ext(pg.SourcePath))
		byFolder[stem] = i
		if dir := path.Dir(pg.SourcePath); path.Base(dir) == path.Base(stem) {
			byFolder[dir] = i
		}
	}
	for _, at := range snap.Attachments {
		if i, ok := byFolder[at.OwnerPage]; ok {
			snap.Pages[i].AttachmentRefs = append(snap.Pages[i].AttachmentRefs, at.SourcePath)
		}
	}
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
