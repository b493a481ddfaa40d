// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relocate

import (
	"fmt"
	"os"
	"sort"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

// manifest is the on-disk YAML form of a rename mapping plus run summary.
// It is an optional convenience for tooling and audits; the mapping itself
// lives only for the duration of the run.
type manifest struct {
	Summary     manifestSummary   `yaml:"summary"`
	Pages       []manifestEntry   `yaml:"pages"`
	Attachments []manifestEntry   `yaml:"attachments"`
	Collisions  []types.Collision `yaml:"collisions,omitempty"`
}

type manifestSummary struct {
	Pages       int       `yaml:"pages"`
	Attachments int       `yaml:"attachments"`
	Collisions  int       `yaml:"collisions"`
	BrokenLinks int       `yaml:"broken_links"`
	Failures    int       `yaml:"failures"`
	Timestamp   time.Time `yaml:"timestamp"`
}

type manifestEntry struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// writeManifest saves the full rename mapping and summary as YAML next to
// the restructured output.
func writeManifest(path string, m *types.Mapping, r *types.RunReport) error {
	doc := manifest{
		Summary: manifestSummary{
			Pages:       r.PagesWritten,
			Attachments: r.AttachmentsCopied,
			Collisions:  len(r.Collisions),
			BrokenLinks: len(r.BrokenLinks),
			Failures:    len(r.Failures),
			Timestamp:   time.Now().UTC(),
		},
		Pages:       sortedEntries(m.Pages),
		Attachments: sortedEntries(m.Attachments),
		Collisions:  m.Collisions,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

func sortedEntries(mapping map[string]string) []manifestEntry {
	entries := make([]manifestEntry, 0, len(mapping))
	for src, dest := range mapping {
		entries = append(entries, manifestEntry{Source: src, Dest: dest})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })
	return entries
}
