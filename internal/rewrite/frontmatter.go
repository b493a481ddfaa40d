// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"regexp"
	"strings"
)

// titleLineRe matches a frontmatter block opener followed by its title line,
// anchored to the start of the document.
var titleLineRe = regexp.MustCompile(`\A(---\r?\ntitle:[^\n]*\n)`)

// EnsureSpaceKey injects a space key into page frontmatter that carries none,
// so flattened pages keep their space provenance. Content without a leading
// frontmatter title line is returned unchanged; existing keys are never
// overwritten.
func EnsureSpaceKey(content, key string) string {
	if key == "" {
		return content
	}
	if strings.Contains(content, "space_key:") || strings.Contains(content, "\nspace:") {
		return content
	}
	return titleLineRe.ReplaceAllString(content, "${1}space: "+key+"\n")
}
