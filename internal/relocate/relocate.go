// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relocate writes the flat output layout: rewritten pages under
// pages/, consolidated attachments under attachments/, plus the run report
// and rename manifest. Individual file failures are recorded and the run
// continues; a 500-page export is never discarded over one locked file.
package relocate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xavierfonsecaphd/space-restructure/internal/rewrite"
	"github.com/xavierfonsecaphd/space-restructure/pkg/types"
)

const (
	pagesDir       = "pages"
	attachmentsDir = "attachments"
)

// Run executes the relocation stage. inputRoot is the tree the snapshot was
// taken from; outputRoot receives the flat layout. Progress lines go to w.
// The returned report enumerates every outcome; the error is non-nil only
// when the output root itself cannot be prepared.
func Run(snap *types.Snapshot, m *types.Mapping, cfg types.RestructureConfig, inputRoot, outputRoot string, w io.Writer) (*types.RunReport, error) {
	for _, dir := range []string{
		filepath.Join(outputRoot, pagesDir),
		filepath.Join(outputRoot, attachmentsDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	report := &types.RunReport{
		Collisions:  m.Collisions,
		Truncations: m.Truncations,
		Problems:    snap.Problems,
	}

	for _, pg := range snap.Pages {
		dest := m.Pages[pg.SourcePath]
		content, broken := rewrite.Rewrite(pg.Content, pg.SourcePath, m)
		for _, ref := range broken {
			report.BrokenLinks = append(report.BrokenLinks, types.BrokenLink{
				Page:      pg.SourcePath,
				Reference: ref,
			})
		}
		content = rewrite.EnsureSpaceKey(content, cfg.SpaceKey)

		destPath := filepath.Join(outputRoot, filepath.FromSlash(dest))
		if err := os.WriteFile(destPath, []byte(content), 0o644); err != nil {
			report.Failures = append(report.Failures, types.FileFailure{
				Path: pg.SourcePath,
				Err:  err.Error(),
			})
			fmt.Fprintf(w, "failed:  %s (%v)\n", pg.SourcePath, err)
			continue
		}
		report.PagesWritten++
		fmt.Fprintf(w, "page: %s -> %s\n", pg.SourcePath, dest)
	}

	for _, at := range snap.Attachments {
		dest := m.Attachments[at.SourcePath]
		src := filepath.Join(inputRoot, filepath.FromSlash(at.SourcePath))
		destPath := filepath.Join(outputRoot, filepath.FromSlash(dest))
		if err := copyFile(src, destPath); err != nil {
			report.Failures = append(report.Failures, types.FileFailure{
				Path: at.SourcePath,
				Err:  err.Error(),
			})
			fmt.Fprintf(w, "failed:  %s (%v)\n", at.SourcePath, err)
			continue
		}
		report.AttachmentsCopied++
		fmt.Fprintf(w, "attachment: %s -> %s\n", at.SourcePath, dest)
	}

	if cfg.ReportFile != "" {
		path := filepath.Join(outputRoot, cfg.ReportFile)
		if err := os.WriteFile(path, []byte(renderReport(report, cfg)), 0o644); err != nil {
			return report, fmt.Errorf("writing run report: %w", err)
		}
	}
	if cfg.ManifestFile != "" {
		if err := writeManifest(filepath.Join(outputRoot, cfg.ManifestFile), m, report); err != nil {
			return report, err
		}
	}

	fmt.Fprintf(w, "\nRestructure summary: %d pages, %d attachments, %d collisions, %d broken links, %d failures\n",
		report.PagesWritten, report.AttachmentsCopied,
		len(report.Collisions), len(report.BrokenLinks), len(report.Failures))
	return report, nil
}

// copyFile copies src to dst with create/truncate semantics. An interrupted
// run leaves at worst a short file in the output, never a damaged input.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
