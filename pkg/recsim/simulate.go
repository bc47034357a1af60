package recsim

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/scttfrdmn/recsim-go/pkg/fasta"
)

// Simulator runs load, plan, synthesize and emit for one configuration
type Simulator struct {
	config *RunConfig
	log    io.Writer

	// newStorage picks the backend for a path; replaced in tests
	newStorage func(ctx context.Context, path string) (Storage, error)
}

// Result describes a finished run
type Result struct {
	Manifest     Manifest
	Events       []RecombinationEvent
	IndexPath    string
	ManifestPath string
}

// NewSimulator creates a simulator that reports progress to log
func NewSimulator(config *RunConfig, log io.Writer) *Simulator {
	if config == nil {
		config = NewRunConfig()
	}
	if log == nil {
		log = io.Discard
	}
	return &Simulator{
		config:     config,
		log:        log,
		newStorage: NewStorage,
	}
}

// Run executes the pipeline. The plan is complete before the output is
// opened, so sampling failures never truncate an existing result file.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var seed uint64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = uint64(time.Now().UnixNano())
		fmt.Fprintf(s.log, "Seed: %d\n", seed)
	}

	store, err := s.load(ctx, cfg.InputPath)
	if err != nil {
		return nil, err
	}
	for _, id := range store.Duplicates() {
		fmt.Fprintf(s.log, "Warning: duplicate header %q, keeping the later sequence\n", id)
	}
	fmt.Fprintf(s.log, "Loaded %d sequences from %s\n", store.Len(), cfg.InputPath)

	events, err := NewPlanner(seed).Plan(store, cfg.EventCount, cfg.Mode, cfg.PoolSize())
	if err != nil {
		return nil, fmt.Errorf("failed to plan recombination events: %w", err)
	}
	fmt.Fprintf(s.log, "Planned %d %s breakpoint events\n", len(events), cfg.Mode)

	out, err := s.newStorage(ctx, cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}

	used := SourcesUsed(events)
	records := withContext(ctx, Synthesized(store, events))
	stats, err := EmitFile(out, cfg.OutputPath, records, store, used, cfg.Originals)
	if err != nil {
		return nil, err
	}

	result := &Result{Events: events}
	m := NewManifest(cfg, seed)
	m.Events = events
	m.Statistics = Statistics{
		SyntheticRecords: stats.Synthetic,
		OriginalRecords:  stats.Originals,
		SkippedOriginals: stats.Skipped,
		TotalBases:       stats.Bases,
		DuplicateHeaders: len(store.Duplicates()),
	}
	result.Manifest = m

	if cfg.WriteIndex {
		indexPath, err := fasta.WriteIndex(cfg.OutputPath)
		if err != nil {
			return nil, err
		}
		result.IndexPath = indexPath
	}

	if cfg.WriteManifest {
		if err := saveManifest(out, cfg.ManifestPath(), m); err != nil {
			return nil, err
		}
		result.ManifestPath = cfg.ManifestPath()
	}

	fmt.Fprintf(s.log, "Wrote %d recombinant and %d original records to %s\n",
		stats.Synthetic, stats.Originals, cfg.OutputPath)
	return result, nil
}

// load reads the whole input into a store
func (s *Simulator) load(ctx context.Context, path string) (*Store, error) {
	storage, err := s.newStorage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}
	rc, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer rc.Close()

	plain, err := fasta.Decompress(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress input: %w", err)
	}
	defer plain.Close()

	store, err := LoadStore(fastaSource{fasta.NewReader(plain)})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return store, nil
}

// fastaSource adapts fasta.Reader to SequenceSource
type fastaSource struct {
	r *fasta.Reader
}

func (f fastaSource) Read() (SequenceRecord, error) {
	rec, err := f.r.Read()
	if err != nil {
		return SequenceRecord{}, err
	}
	return SequenceRecord{ID: rec.ID, Bases: rec.Seq}, nil
}

// withContext stops the sequence with ctx.Err() once ctx is done
func withContext(ctx context.Context, seq iter.Seq2[OutputRecord, error]) iter.Seq2[OutputRecord, error] {
	return func(yield func(OutputRecord, error) bool) {
		for rec, err := range seq {
			if cerr := ctx.Err(); cerr != nil {
				yield(OutputRecord{}, cerr)
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
