package main

import (
	"context"
	"fmt"
	"io"

	"github.com/scttfrdmn/recsim-go/pkg/fasta"
	"github.com/scttfrdmn/recsim-go/pkg/recsim"
	"github.com/spf13/cobra"
)

var statsManifest string

// fileStats summarizes a simulator output file
type fileStats struct {
	Single    int
	Double    int
	Originals int
	Bases     int64
}

var statsCmd = &cobra.Command{
	Use:   "stats <output.fasta>",
	Short: "Show statistics for a simulated FASTA",
	Long: `Count recombinant and original records in a simulator output file.

If a manifest exists next to the file (<output>.manifest.yaml) its event
headers decide which records are recombinants, and its recorded counts are
compared with the file contents. Without one, headers are parsed.

Example:
  recsim stats seqs_recombined.fasta`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		storage, err := recsim.NewStorage(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to create storage backend: %w", err)
		}

		manifestPath := statsManifest
		if manifestPath == "" {
			manifestPath = path + ".manifest.yaml"
		}
		m, found, err := loadManifest(ctx, manifestPath)
		if err != nil {
			return err
		}

		var synthetic map[string]recsim.Mode
		if found {
			synthetic = m.SyntheticHeaders()
		}
		stats, err := countRecords(storage, path, synthetic)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "===========================================")
		fmt.Fprintln(out, "Recombinant FASTA Statistics")
		fmt.Fprintln(out, "===========================================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "File: %s\n", path)
		fmt.Fprintf(out, "  Single breakpoint recombinants: %d\n", stats.Single)
		fmt.Fprintf(out, "  Double breakpoint recombinants: %d\n", stats.Double)
		fmt.Fprintf(out, "  Original sequences: %d\n", stats.Originals)
		fmt.Fprintf(out, "  Total bases: %d\n", stats.Bases)

		if !found {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Manifest:")
		fmt.Fprintf(out, "  Run: %s\n", m.RunID)
		fmt.Fprintf(out, "  Created: %s\n", m.Created.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "  Source: %s (%s)\n", m.Source.File, m.Source.Format)
		fmt.Fprintf(out, "  Mode: %s\n", m.Mode)
		fmt.Fprintf(out, "  Seed: %d\n", m.Seed)
		if m.Statistics.SyntheticRecords != stats.Single+stats.Double ||
			m.Statistics.OriginalRecords != stats.Originals {
			return fmt.Errorf("file does not match manifest: %d/%d recombinant/original records, manifest says %d/%d",
				stats.Single+stats.Double, stats.Originals,
				m.Statistics.SyntheticRecords, m.Statistics.OriginalRecords)
		}
		fmt.Fprintln(out, "  Counts match file: yes")
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsManifest, "manifest", "",
		"Manifest path (default: <output>.manifest.yaml)")
}

// countRecords classifies every record of a FASTA. With a manifest,
// synthetic lists the recombinant headers; otherwise headers are parsed.
func countRecords(storage recsim.Storage, path string, synthetic map[string]recsim.Mode) (fileStats, error) {
	var stats fileStats

	rc, err := storage.Open(path)
	if err != nil {
		return stats, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rc.Close()

	plain, err := fasta.Decompress(rc)
	if err != nil {
		return stats, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	defer plain.Close()

	r := fasta.NewReader(plain)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read %s: %w", path, err)
		}
		stats.Bases += int64(len(rec.Seq))

		mode, ok := classify(rec.ID, synthetic)
		switch {
		case !ok:
			stats.Originals++
		case mode == recsim.SingleBreakpoint:
			stats.Single++
		default:
			stats.Double++
		}
	}
	return stats, nil
}

func classify(header string, synthetic map[string]recsim.Mode) (recsim.Mode, bool) {
	if synthetic != nil {
		mode, ok := synthetic[header]
		return mode, ok
	}
	info, ok := recsim.ParseHeader(header)
	return info.Mode, ok
}

// loadManifest reads a manifest if one exists at path
func loadManifest(ctx context.Context, path string) (recsim.Manifest, bool, error) {
	storage, err := recsim.NewStorage(ctx, path)
	if err != nil {
		return recsim.Manifest{}, false, fmt.Errorf("failed to create storage backend: %w", err)
	}
	ok, err := storage.Exists(path)
	if err != nil || !ok {
		return recsim.Manifest{}, false, err
	}

	rc, err := storage.Open(path)
	if err != nil {
		return recsim.Manifest{}, false, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer rc.Close()

	m, err := recsim.ReadManifest(rc)
	if err != nil {
		return m, false, err
	}
	return m, true, nil
}
