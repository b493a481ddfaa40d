// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve computes the flat destination name for every page and
// attachment in a snapshot. Collision suffixing is an explicit sequential
// reduction over the snapshot's traversal order: the same tree always yields
// the same mapping.
package resolve

import (
	"fmt"
	"path"
	"strings"

	"github.com/xavierfonsecaphd/space-restructure/internal/sanitize"
	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

const (
	pagesDir       = "pages"
	attachmentsDir = "attachments"
	contentExt     = ".md"
)

// Resolve builds the complete rename mapping for a snapshot. The result
// covers every source path exactly once and is ready to be consulted by the
// link rewriter and the relocation executor; callers must not mutate it.
func Resolve(snap *types.Snapshot, cfg types.NameConfig) *types.Mapping {
	sep := cfg.Separator
	if sep == "" {
		sep = types.DefaultSeparator
	}
	maxLen := cfg.MaxNameLength
	if maxLen <= 0 {
		maxLen = types.DefaultMaxNameLength
	}

	m := &types.Mapping{
		Pages:       make(map[string]string, len(snap.Pages)),
		Attachments: make(map[string]string, len(snap.Attachments)),
	}

	// Pages and attachments land in separate folders, so each category gets
	// its own registry; names only need to be unique within a category.
	reg := registry{}
	for _, pg := range snap.Pages {
		tokens := pageTokens(pg, cfg.FlatTitles)
		full := strings.Join(tokens, sep)
		stem := shorten(tokens, sep, maxLen)
		if stem != full {
			m.Truncations = append(m.Truncations, types.Truncation{
				SourcePath: pg.SourcePath,
				Candidate:  full + contentExt,
				Shortened:  stem + contentExt,
			})
		}
		name, collided := reg.claim(stem, contentExt)
		if collided {
			m.Collisions = append(m.Collisions, types.Collision{
				SourcePath: pg.SourcePath,
				Candidate:  stem + contentExt,
				Resolved:   name,
				Kind:       types.KindPage,
			})
		}
		m.Pages[pg.SourcePath] = path.Join(pagesDir, name)
	}

	areg := registry{}
	for _, at := range snap.Attachments {
		base := sanitize.CleanFilename(path.Base(at.SourcePath))
		ext := path.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		name, collided := areg.claim(stem, ext)
		if collided {
			m.Collisions = append(m.Collisions, types.Collision{
				SourcePath: at.SourcePath,
				Candidate:  base,
				Resolved:   name,
				Kind:       types.KindAttachment,
			})
		}
		m.Attachments[at.SourcePath] = path.Join(attachmentsDir, name)
	}

	return m
}

// pageTokens builds the candidate flat name tokens: the sanitized ancestry
// chain, then the sanitized title. With flatTitles the chain is dropped and
// duplicates rely on numeric suffixes alone.
func pageTokens(pg types.PageNode, flatTitles bool) []string {
	var tokens []string
	if !flatTitles {
		for _, ancestor := range pg.Ancestry {
			tokens = append(tokens, sanitize.Clean(ancestor))
		}
	}
	return append(tokens, sanitize.Clean(pg.Title))
}

// shorten drops leading ancestry tokens until the joined stem fits maxLen.
// The page's own title is always kept; only a pathologically long title
// itself is cut. Ancestry encoding is a readability aid, so losing the
// oldest ancestors is the least destructive cut.
func shorten(tokens []string, sep string, maxLen int) string {
	for len([]rune(strings.Join(tokens, sep))) > maxLen && len(tokens) > 1 {
		tokens = tokens[1:]
	}
	out := strings.Join(tokens, sep)
	if r := []rune(out); len(r) > maxLen {
		out = strings.TrimRight(string(r[:maxLen]), ". ")
	}
	return out
}

// registry tracks claimed flat names during resolution and dies with it.
// Keys are lowercased so that names colliding only by case still get
// distinct suffixes; case-insensitive filesystems would merge them.
type registry map[string]int

// claim reserves the first free name for stem+ext. The first claimant gets
// the bare candidate; later ones get _2, _3, ... before the extension,
// skipping names an earlier input already occupies.
func (r registry) claim(stem, ext string) (name string, collided bool) {
	key := strings.ToLower(stem + ext)
	prior := r[key]
	r[key]++
	if prior == 0 {
		return stem + ext, false
	}
	for i := prior + 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		ckey := strings.ToLower(candidate)
		if r[ckey] == 0 {
			r[ckey] = 1
			return candidate, true
		}
	}
}
