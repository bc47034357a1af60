package recsim

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	manifestFormat  = "recsim"
	manifestVersion = "0.1.0"
)

// NewManifest starts a manifest for a run of cfg
func NewManifest(cfg *RunConfig, seed uint64) Manifest {
	m := Manifest{
		Format:     manifestFormat,
		Version:    manifestVersion,
		RunID:      uuid.Must(uuid.NewV7()).String(),
		Created:    time.Now().UTC(),
		CreatedBy:  "recsim-go",
		Source:     Source{File: cfg.InputPath, Format: "FASTA"},
		Output:     cfg.OutputPath,
		Mode:       cfg.Mode,
		Seed:       seed,
		EventCount: cfg.EventCount,
		Originals:  cfg.Originals,
	}
	if cfg.Mode == SingleBreakpoint {
		m.PoolSize = cfg.PoolSize()
	}
	return m
}

// SyntheticHeaders maps the header of every recorded event to its mode
func (m Manifest) SyntheticHeaders() map[string]Mode {
	headers := make(map[string]Mode, len(m.Events))
	for _, ev := range m.Events {
		headers[ev.Header()] = ev.Mode
	}
	return headers
}

// WriteManifest encodes m as YAML
func WriteManifest(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return enc.Close()
}

// ReadManifest decodes a manifest written by WriteManifest
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return m, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Format != manifestFormat {
		return m, fmt.Errorf("not a recsim manifest (format %q)", m.Format)
	}
	return m, nil
}

// saveManifest writes m to path through storage
func saveManifest(storage Storage, path string, m Manifest) (err error) {
	out, err := storage.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteManifest(out, m)
}
