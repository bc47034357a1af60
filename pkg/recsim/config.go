package recsim

import (
	"fmt"
	"io"
)

// RunConfig holds configuration for one simulation run
type RunConfig struct {
	// Input and output
	InputPath  string // FASTA of aligned sources (default: simulated.fasta)
	OutputPath string // Result FASTA (default: seqs_recombined.fasta)

	// Simulation
	Mode       Mode    // Breakpoint strategy (default: DoubleBreakpoint)
	EventCount int     // Number of recombinants (default: 50)
	PoolExtra  int     // Added to EventCount to size the single breakpoint index pool (default: 200)
	Seed       *uint64 // RNG seed; nil picks one from the clock and records it in the manifest

	// Output shaping
	Originals     OriginalsPolicy // Which sources follow the recombinants (default: all)
	WriteIndex    bool            // Write <output>.fai (local, uncompressed output only)
	WriteManifest bool            // Write <output>.manifest.yaml (default: true)
}

// NewRunConfig creates a RunConfig with defaults
func NewRunConfig() *RunConfig {
	return &RunConfig{
		InputPath:     "simulated.fasta",
		OutputPath:    "seqs_recombined.fasta",
		Mode:          DoubleBreakpoint,
		EventCount:    50,
		PoolExtra:     DefaultPoolExtra,
		Originals:     OriginalsAll,
		WriteManifest: true,
	}
}

// PoolSize is the single breakpoint index pool size
func (c *RunConfig) PoolSize() int {
	return PoolSize(c.EventCount, c.PoolExtra)
}

// ManifestPath is where the run manifest is written
func (c *RunConfig) ManifestPath() string {
	return c.OutputPath + ".manifest.yaml"
}

// Validate checks configuration
func (c *RunConfig) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if c.InputPath == c.OutputPath {
		return fmt.Errorf("output path must differ from input path")
	}
	if c.Mode != SingleBreakpoint && c.Mode != DoubleBreakpoint {
		return fmt.Errorf("invalid mode %v", c.Mode)
	}
	if c.EventCount < 0 {
		return fmt.Errorf("event count must be >= 0")
	}
	if c.PoolExtra < 0 {
		return fmt.Errorf("pool extra must be >= 0")
	}
	if c.Mode == SingleBreakpoint && c.PoolSize() < 2*c.EventCount {
		return fmt.Errorf("%w: pool %d, events %d", ErrPoolTooSmall, c.PoolSize(), c.EventCount)
	}
	if _, err := ParseOriginalsPolicy(string(c.Originals)); err != nil {
		return err
	}
	if c.WriteIndex && (IsS3URI(c.OutputPath) || CompressionForPath(c.OutputPath) != "none") {
		return fmt.Errorf("index requires a local uncompressed output")
	}
	return nil
}

// ShowConfig prints the effective configuration
func (c *RunConfig) ShowConfig(w io.Writer) {
	fmt.Fprintf(w, "Configuration:\n")
	fmt.Fprintf(w, "  Input: %s\n", c.InputPath)
	fmt.Fprintf(w, "  Output: %s\n", c.OutputPath)
	fmt.Fprintf(w, "  Mode: %s\n", c.Mode)
	fmt.Fprintf(w, "  Events: %d\n", c.EventCount)
	if c.Mode == SingleBreakpoint {
		fmt.Fprintf(w, "  Pool size: %d (events + %d)\n", c.PoolSize(), c.PoolExtra)
	}
	if c.Seed == nil {
		fmt.Fprintf(w, "  Seed: random\n")
	} else {
		fmt.Fprintf(w, "  Seed: %d\n", *c.Seed)
	}
	fmt.Fprintf(w, "  Originals: %s\n", c.Originals)
	fmt.Fprintf(w, "  Compression: %s\n", CompressionForPath(c.OutputPath))
	fmt.Fprintf(w, "  Index: %t\n", c.WriteIndex)
	fmt.Fprintf(w, "  Manifest: %t\n", c.WriteManifest)
	fmt.Fprintf(w, "\n")
}
