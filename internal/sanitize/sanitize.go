// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize turns arbitrary page titles and filenames into tokens
// that are safe both as filesystem names and inside Markdown link targets.
package sanitize

import (
	"path"
	"regexp"
	"strings"
)

// maxToken bounds a single sanitized token in runes, matching the exporter's
// filename limit.
const maxToken = 100

var (
	// illegalRe matches characters rejected by at least one mainstream
	// filesystem, plus control characters.
	illegalRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f\x7f]`)

	// spaceRe collapses whitespace runs; spaces break relative link targets.
	spaceRe = regexp.MustCompile(`\s+`)
)

// reserved holds Windows device names that are unusable as file stems on
// case-insensitive filesystems.
var reserved = func() map[string]bool {
	names := []string{"con", "prn", "aux", "nul"}
	for i := 1; i <= 9; i++ {
		names = append(names, "com"+string(rune('0'+i)), "lpt"+string(rune('0'+i)))
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}()

// Clean sanitizes a title into a filesystem-safe token. It is deterministic
// and idempotent: Clean(Clean(x)) == Clean(x). Empty results become
// "untitled"; reserved device names get a trailing underscore; tokens are
// capped at 100 runes. Disambiguating suffixes are appended by the name
// resolver after sanitization, so truncation here can never eat one.
func Clean(title string) string {
	t := illegalRe.ReplaceAllString(title, "_")
	t = spaceRe.ReplaceAllString(t, "_")
	t = strings.Trim(t, ". ")
	t = truncate(t, maxToken)
	// Truncation can expose a trailing dot.
	t = strings.TrimRight(t, ". ")
	if t == "" {
		return "untitled"
	}
	if reserved[strings.ToLower(t)] {
		t += "_"
	}
	return t
}

// CleanFilename sanitizes a filename's stem while preserving its extension,
// so "Q3 report.xlsx" becomes "Q3_report.xlsx". Dotfiles lose their leading
// dot like any other leading dot.
func CleanFilename(name string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		return Clean(name)
	}
	ext = illegalRe.ReplaceAllString(ext, "_")
	ext = spaceRe.ReplaceAllString(ext, "_")
	return Clean(stem) + ext
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
