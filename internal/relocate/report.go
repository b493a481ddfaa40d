// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relocate

import (
	"fmt"
	"strings"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

// renderReport builds the human-readable run report. It is the one document
// a person needs to review after an import: what moved, what collided, and
// what still needs hand-holding.
func renderReport(r *types.RunReport, cfg types.RestructureConfig) string {
	var b strings.Builder
	b.WriteString("# Restructured Space Import\n\n")

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Pages**: %d\n", r.PagesWritten)
	fmt.Fprintf(&b, "- **Attachments**: %d\n", r.AttachmentsCopied)
	fmt.Fprintf(&b, "- **Collisions resolved**: %d\n", len(r.Collisions))
	fmt.Fprintf(&b, "- **Broken links**: %d\n", len(r.BrokenLinks))
	fmt.Fprintf(&b, "- **Failures**: %d\n", len(r.Failures))
	if cfg.SpaceKey != "" {
		fmt.Fprintf(&b, "- **Space key**: %s\n", cfg.SpaceKey)
	}

	b.WriteString("\n## Structure\n\n")
	b.WriteString("- `pages/` - all content files, flattened; names encode the original hierarchy\n")
	b.WriteString("- `attachments/` - all assets, consolidated into one folder\n")

	if len(r.Collisions) > 0 {
		b.WriteString("\n## Collisions resolved\n\n")
		for _, c := range r.Collisions {
			fmt.Fprintf(&b, "- `%s` -> `%s` (%s, wanted `%s`)\n", c.SourcePath, c.Resolved, c.Kind, c.Candidate)
		}
	}

	if len(r.Truncations) > 0 {
		b.WriteString("\n## Names shortened\n\n")
		b.WriteString("Ancestry chains over the length bound lose their oldest ancestors first.\n\n")
		for _, t := range r.Truncations {
			fmt.Fprintf(&b, "- `%s`: `%s` -> `%s`\n", t.SourcePath, t.Candidate, t.Shortened)
		}
	}

	if len(r.BrokenLinks) > 0 {
		b.WriteString("\n## Broken links\n\n")
		b.WriteString("These references had no target in the export and were left unchanged.\n\n")
		for _, l := range r.BrokenLinks {
			fmt.Fprintf(&b, "- `%s` references `%s`\n", l.Page, l.Reference)
		}
	}

	if len(r.Problems) > 0 {
		b.WriteString("\n## Skipped folders\n\n")
		for _, p := range r.Problems {
			fmt.Fprintf(&b, "- `%s`: %s\n", p.Path, p.Reason)
		}
	}

	if len(r.Failures) > 0 {
		b.WriteString("\n## File failures\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Path, f.Err)
		}
	}

	b.WriteString("\n## Import instructions\n\n")
	b.WriteString("1. Zip this entire folder\n")
	b.WriteString("2. In the target tool, import from Markdown and upload the zip\n")
	b.WriteString("3. Map fields as needed; the original hierarchy is preserved in file names\n")
	return b.String()
}
