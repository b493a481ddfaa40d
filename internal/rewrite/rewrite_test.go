// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"strings"
	"testing"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

// testMapping mirrors a small two-space export after name resolution.
func testMapping() *types.Mapping {
	return &types.Mapping{
		Pages: map[string]string{
			"Guide/Setup.md":     "pages/Guide_Setup.md",
			"Guide/Install.md":   "pages/Guide_Install.md",
			"Reference/Setup.md": "pages/Reference_Setup.md",
			"Welcome.md":         "pages/Welcome.md",
		},
		Attachments: map[string]string{
			"Guide/Setup/attachments/diagram.png":     "attachments/diagram.png",
			"Reference/Setup/attachments/diagram.png": "attachments/diagram_2.png",
			"Guide/attachments/spec sheet.pdf":        "attachments/spec_sheet.pdf",
			"Guide/Setup/attachments/my diagram.png":  "attachments/my_diagram.png",
			"attachments/logo.png":                    "attachments/logo.png",
		},
	}
}

func TestRewrite(t *testing.T) {
	m := testMapping()
	tests := []struct {
		name       string
		source     string
		content    string
		want       string
		wantBroken []string
	}{
		{
			name:    "attachment reference crosses folders",
			source:  "Guide/Setup.md",
			content: "See ![diagram](attachments/diagram.png) for details.",
			want:    "See ![diagram](../attachments/diagram.png) for details.",
		},
		{
			name:    "twin attachment keeps its own copy",
			source:  "Reference/Setup.md",
			content: "![d](attachments/diagram.png)",
			want:    "![d](../attachments/diagram_2.png)",
		},
		{
			name:    "sibling page link becomes flat name",
			source:  "Guide/Setup.md",
			content: "Next: [Install](Install.md)",
			want:    "Next: [Install](Guide_Install.md)",
		},
		{
			name:    "parent-relative page link",
			source:  "Guide/Setup.md",
			content: "Back to [Welcome](../Welcome.md)",
			want:    "Back to [Welcome](Welcome.md)",
		},
		{
			name:    "cross-branch forward reference",
			source:  "Welcome.md",
			content: "[setup](Guide/Setup.md) and [ref](Reference/Setup.md)",
			want:    "[setup](Guide_Setup.md) and [ref](Reference_Setup.md)",
		},
		{
			name:    "fragment survives rewriting",
			source:  "Guide/Setup.md",
			content: "[section](Install.md#prereqs)",
			want:    "[section](Guide_Install.md#prereqs)",
		},
		{
			name:    "raw space in attachment target resolves",
			source:  "Guide/Setup.md",
			content: "![d](attachments/my diagram.png)",
			want:    "![d](../attachments/my_diagram.png)",
		},
		{
			name:       "space-bearing target with no mapping reported broken",
			source:     "Guide/Setup.md",
			content:    "![d](attachments/missing chart.png)",
			want:       "![d](attachments/missing chart.png)",
			wantBroken: []string{"attachments/missing chart.png"},
		},
		{
			name:    "angle-bracket target resolves",
			source:  "Guide/Setup.md",
			content: "![d](<attachments/my diagram.png>)",
			want:    "![d](../attachments/my_diagram.png)",
		},
		{
			name:    "root-pooled attachment resolves from nested page",
			source:  "Guide/Setup.md",
			content: "![logo](attachments/logo.png)",
			want:    "![logo](../attachments/logo.png)",
		},
		{
			name:    "percent-encoded target resolves",
			source:  "Guide/Setup.md",
			content: "[sheet](../Guide/attachments/spec%20sheet.pdf)",
			want:    "[sheet](../attachments/spec_sheet.pdf)",
		},
		{
			name:    "external url untouched",
			source:  "Guide/Setup.md",
			content: "[site](https://example.com/page.md) [m](mailto:a@b.c)",
			want:    "[site](https://example.com/page.md) [m](mailto:a@b.c)",
		},
		{
			name:    "pure fragment untouched",
			source:  "Guide/Setup.md",
			content: "[top](#top)",
			want:    "[top](#top)",
		},
		{
			name:       "broken link unchanged and reported",
			source:     "Guide/Setup.md",
			content:    "See [notes](../SiblingPage/notes.md) here.",
			want:       "See [notes](../SiblingPage/notes.md) here.",
			wantBroken: []string{"../SiblingPage/notes.md"},
		},
		{
			name:    "inline code span untouched",
			source:  "Guide/Setup.md",
			content: "Run `cat Install.md` then read [it](Install.md).",
			want:    "Run `cat Install.md` then read [it](Guide_Install.md).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broken := Rewrite(tt.content, tt.source, m)
			if got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
			if len(broken) != len(tt.wantBroken) {
				t.Fatalf("broken = %v, want %v", broken, tt.wantBroken)
			}
			for i := range broken {
				if broken[i] != tt.wantBroken[i] {
					t.Errorf("broken[%d] = %q, want %q", i, broken[i], tt.wantBroken[i])
				}
			}
		})
	}
}

func TestRewriteFencedBlockUntouched(t *testing.T) {
	m := testMapping()
	content := strings.Join([]string{
		"[real](Install.md)",
		"```",
		"[example](Install.md)",
		"```",
		"[again](Install.md)",
	}, "\n")

	got, broken := Rewrite(content, "Guide/Setup.md", m)

	want := strings.Join([]string{
		"[real](Guide_Install.md)",
		"```",
		"[example](Install.md)",
		"```",
		"[again](Guide_Install.md)",
	}, "\n")
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if len(broken) != 0 {
		t.Errorf("broken = %v, want none", broken)
	}
}

func TestRewriteFenceClosesOnMatchingMarkerOnly(t *testing.T) {
	m := testMapping()
	content := strings.Join([]string{
		"```",
		"~~~",
		"[example](Install.md)",
		"```",
		"[real](Install.md)",
	}, "\n")

	got, broken := Rewrite(content, "Guide/Setup.md", m)

	want := strings.Join([]string{
		"```",
		"~~~",
		"[example](Install.md)",
		"```",
		"[real](Guide_Install.md)",
	}, "\n")
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if len(broken) != 0 {
		t.Errorf("broken = %v, want none", broken)
	}
}

func TestRewritePreservesImageTitle(t *testing.T) {
	m := testMapping()
	got, _ := Rewrite(`![d](attachments/diagram.png "The diagram")`, "Guide/Setup.md", m)
	want := `![d](../attachments/diagram.png "The diagram")`
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestRewriteFrontmatterReferences(t *testing.T) {
	// Metadata passes through except for relative references inside it.
	m := testMapping()
	content := "---\ntitle: Setup\ncover: attachments/diagram.png\n---\n\nBody.\n"
	got, _ := Rewrite(content, "Guide/Setup.md", m)
	if !strings.Contains(got, "cover: attachments/diagram.png") {
		// The cover value is a bare path, not a Markdown link; it must be
		// passed through untouched.
		t.Errorf("frontmatter changed unexpectedly: %q", got)
	}
	if !strings.Contains(got, "title: Setup") {
		t.Errorf("title line lost: %q", got)
	}
}

func TestEnsureSpaceKey(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		want    string
	}{
		{
			name:    "injected after title",
			content: "---\ntitle: Setup\ncreated: 2024-01-01\n---\n\nBody.\n",
			key:     "3OV",
			want:    "---\ntitle: Setup\nspace: 3OV\ncreated: 2024-01-01\n---\n\nBody.\n",
		},
		{
			name:    "existing space key preserved",
			content: "---\ntitle: Setup\nspace_key: GEOV\n---\n",
			key:     "3OV",
			want:    "---\ntitle: Setup\nspace_key: GEOV\n---\n",
		},
		{
			name:    "no frontmatter unchanged",
			content: "# Just a heading\n",
			key:     "3OV",
			want:    "# Just a heading\n",
		},
		{
			name:    "empty key unchanged",
			content: "---\ntitle: Setup\n---\n",
			key:     "",
			want:    "---\ntitle: Setup\n---\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureSpaceKey(tt.content, tt.key); got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}
