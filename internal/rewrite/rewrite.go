// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rewrite redirects relative Markdown references at their new flat
// locations. It consults the finalized rename mapping and never touches
// external URLs, fragments, or anything it cannot resolve.
package rewrite

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

// linkRe matches Markdown inline links and image references:
// [text](target) or ![alt](target "title"). The exporter writes attachment
// filenames into targets raw, spaces included, so the target class admits
// whitespace and only parentheses terminate it.
var linkRe = regexp.MustCompile(`(!?\[[^\]]*\]\()([^()]+?)((?:\s+"[^"]*")?\))`)

// Rewrite replaces every resolvable relative reference in content with a
// path valid from the page's new flat location: sibling filenames for pages,
// ../attachments/<name> for assets. Unresolvable relative references are
// left byte-for-byte unchanged and returned as broken links. Fenced code
// blocks and inline code spans are never rewritten.
func Rewrite(content, sourcePath string, m *types.Mapping) (rewritten string, broken []string) {
	var out strings.Builder
	out.Grow(len(content))

	fence := "" // marker that opened the current fenced block, if any
	lines := strings.SplitAfter(content, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		marker := ""
		if strings.HasPrefix(trimmed, "```") {
			marker = "```"
		} else if strings.HasPrefix(trimmed, "~~~") {
			marker = "~~~"
		}
		// A fence closes only on the marker that opened it; the other
		// marker inside a block is content.
		if marker != "" && (fence == "" || fence == marker) {
			if fence == "" {
				fence = marker
			} else {
				fence = ""
			}
			out.WriteString(line)
			continue
		}
		if fence != "" {
			out.WriteString(line)
			continue
		}
		out.WriteString(rewriteLine(line, sourcePath, m, &broken))
	}
	return out.String(), broken
}

// rewriteLine applies link rewriting to the parts of a line outside inline
// code spans.
func rewriteLine(line, sourcePath string, m *types.Mapping, broken *[]string) string {
	if !strings.ContainsRune(line, '`') {
		return rewriteSegment(line, sourcePath, m, broken)
	}
	var out strings.Builder
	rest := line
	for {
		open := strings.IndexByte(rest, '`')
		if open < 0 {
			out.WriteString(rewriteSegment(rest, sourcePath, m, broken))
			return out.String()
		}
		end := strings.IndexByte(rest[open+1:], '`')
		if end < 0 {
			// Unterminated span; treat the rest as code.
			out.WriteString(rewriteSegment(rest[:open], sourcePath, m, broken))
			out.WriteString(rest[open:])
			return out.String()
		}
		out.WriteString(rewriteSegment(rest[:open], sourcePath, m, broken))
		out.WriteString(rest[open : open+end+2])
		rest = rest[open+end+2:]
	}
}

func rewriteSegment(segment, sourcePath string, m *types.Mapping, broken *[]string) string {
	return linkRe.ReplaceAllStringFunc(segment, func(match string) string {
		sub := linkRe.FindStringSubmatch(match)
		target := strings.TrimSpace(sub[2])
		if strings.HasPrefix(target, "<") && strings.HasSuffix(target, ">") {
			target = target[1 : len(target)-1]
		}
		if target == "" || external(target) {
			return match
		}
		replaced, ok := rewriteTarget(target, sourcePath, m)
		if !ok {
			*broken = append(*broken, target)
			return match
		}
		return sub[1] + replaced + sub[3]
	})
}

// rewriteTarget resolves a relative reference against the source page's
// directory, looks the result up in the mapping, and builds the reference
// valid from the flat pages folder.
func rewriteTarget(target, sourcePath string, m *types.Mapping) (string, bool) {
	ref := target
	var frag string
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		ref, frag = ref[:i], ref[i:]
	}
	if ref == "" {
		return "", false
	}

	for _, candidate := range lookupKeys(ref, sourcePath) {
		if dest, ok := m.Pages[candidate]; ok {
			// Pages share one folder; a sibling name suffices.
			return path.Base(dest) + frag, true
		}
		if dest, ok := m.Attachments[candidate]; ok {
			return "../" + dest + frag, true
		}
	}
	return "", false
}

// lookupKeys returns the mapping keys to try for a reference. Each base
// directory is tried with the percent-decoded form first, then the raw form
// when decoding changed it. The exporter writes attachment references
// relative to the page's own folder rather than its file, so that folder is
// a second base; exports that pool all attachments at the space root still
// reference them as attachments/<name> from nested pages, so the root is the
// final fallback.
func lookupKeys(ref, sourcePath string) []string {
	bases := []string{path.Dir(sourcePath)}
	if folder := strings.TrimSuffix(sourcePath, path.Ext(sourcePath)); folder != bases[0] {
		bases = append(bases, folder)
	}
	if bases[0] != "." {
		bases = append(bases, ".")
	}

	var keys []string
	decoded := ref
	if d, err := url.PathUnescape(ref); err == nil {
		decoded = d
	}
	for _, base := range bases {
		if decoded != ref {
			keys = append(keys, path.Join(base, decoded))
		}
		keys = append(keys, path.Join(base, ref))
	}
	return keys
}

// external reports whether a reference is out of rewriting scope: absolute
// URLs, protocol-relative URLs, mail links, absolute paths, and pure
// fragments all pass through untouched.
func external(target string) bool {
	if strings.Contains(target, "://") {
		return true
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "#") {
		return true
	}
	if i := strings.IndexByte(target, ':'); i > 0 && !strings.ContainsAny(target[:i], "/.") {
		// Scheme-like prefix such as mailto: or tel:.
		return true
	}
	return false
}
