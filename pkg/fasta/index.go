package fasta

import (
	"fmt"
	"os"

	"github.com/biogo/hts/fai"
)

// WriteIndex builds a samtools-compatible index for the FASTA at path and
// writes it to path+".fai". It returns the index path.
func WriteIndex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	idx, err := fai.NewIndex(f)
	if err != nil {
		return "", fmt.Errorf("failed to index %s: %w", path, err)
	}

	indexPath := path + ".fai"
	out, err := os.Create(indexPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	if err := fai.WriteTo(out, idx); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write %s: %w", indexPath, err)
	}
	return indexPath, out.Close()
}

// ReadIndex loads a .fai file
func ReadIndex(indexPath string) (fai.Index, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fai.ReadFrom(f)
}
