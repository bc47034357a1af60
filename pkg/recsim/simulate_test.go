package recsim

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scttfrdmn/recsim-go/pkg/fasta"
)

// writeAlignment writes n sequences named "0".."n-1", each wrapped at 10 columns
func writeAlignment(t *testing.T, dir string, n, length int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, ">%d\n", i)
		for j := 0; j < length; j++ {
			sb.WriteByte("ACGT"[(i*7+j)%4])
			if (j+1)%10 == 0 || j == length-1 {
				sb.WriteByte('\n')
			}
		}
	}
	path := filepath.Join(dir, "simulated.fasta")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))
	return path
}

func TestSimulator_SingleBreakpointEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeAlignment(t, dir, 30, 35)

	cfg := NewRunConfig()
	cfg.InputPath = input
	cfg.OutputPath = filepath.Join(dir, "seqs_recombined.fasta")
	cfg.Mode = SingleBreakpoint
	cfg.EventCount = 5
	cfg.PoolExtra = 20
	cfg.Seed = seedOf(42)
	cfg.WriteIndex = true

	var log bytes.Buffer
	result, err := NewSimulator(cfg, &log).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Events, 5)
	assert.Contains(t, log.String(), "Loaded 30 sequences")

	f, err := os.Open(cfg.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	recs, err := fasta.ReadAll(f)
	require.NoError(t, err)
	require.Len(t, recs, 35)

	inputFile, err := os.Open(input)
	require.NoError(t, err)
	defer inputFile.Close()
	originals, err := fasta.ReadAll(inputFile)
	require.NoError(t, err)
	bases := make(map[string]string, len(originals))
	for _, rec := range originals {
		bases[rec.ID] = rec.Seq
	}

	for k, rec := range recs[:5] {
		info, ok := ParseHeader(rec.ID)
		require.True(t, ok, rec.ID)
		assert.Equal(t, SingleBreakpoint, info.Mode)

		ev := result.Events[k]
		assert.Equal(t, ev.Header(), rec.ID)
		bkp := ev.Breakpoints[0]
		assert.Equal(t, bases[ev.Left][:bkp]+bases[ev.Right][bkp:], rec.Seq)
	}
	for i, rec := range recs[5:] {
		assert.Equal(t, originals[i], rec, "originals follow in input order")
	}

	require.NotEmpty(t, result.IndexPath)
	idx, err := fasta.ReadIndex(result.IndexPath)
	require.NoError(t, err)
	assert.Len(t, idx, 35)

	mf, err := os.Open(result.ManifestPath)
	require.NoError(t, err)
	defer mf.Close()
	m, err := ReadManifest(mf)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), m.Seed)
	assert.Equal(t, SingleBreakpoint, m.Mode)
	assert.Equal(t, 25, m.PoolSize)
	assert.Equal(t, result.Events, m.Events)
	assert.Equal(t, 5, m.Statistics.SyntheticRecords)
	assert.Equal(t, 30, m.Statistics.OriginalRecords)
}

func TestSimulator_SeedIsReproducible(t *testing.T) {
	dir := t.TempDir()
	input := writeAlignment(t, dir, 20, 24)

	run := func(name string) []byte {
		cfg := NewRunConfig()
		cfg.InputPath = input
		cfg.OutputPath = filepath.Join(dir, name)
		cfg.EventCount = 4
		cfg.Seed = seedOf(7)
		cfg.WriteManifest = false
		_, err := NewSimulator(cfg, nil).Run(context.Background())
		require.NoError(t, err)
		data, err := os.ReadFile(cfg.OutputPath)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run("a.fasta"), run("b.fasta"))
}

func TestSimulator_UnseededRecordsSeed(t *testing.T) {
	dir := t.TempDir()
	cfg := NewRunConfig()
	cfg.InputPath = writeAlignment(t, dir, 10, 20)
	cfg.OutputPath = filepath.Join(dir, "out.fasta")
	cfg.EventCount = 2

	var log bytes.Buffer
	result, err := NewSimulator(cfg, &log).Run(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, result.Manifest.Seed)
	assert.Contains(t, log.String(), fmt.Sprintf("Seed: %d", result.Manifest.Seed))
}

func TestSimulator_ZeroSeed(t *testing.T) {
	dir := t.TempDir()
	input := writeAlignment(t, dir, 20, 24)

	run := func(name string) ([]byte, *Result, string) {
		cfg := NewRunConfig()
		cfg.InputPath = input
		cfg.OutputPath = filepath.Join(dir, name)
		cfg.EventCount = 4
		cfg.Seed = seedOf(0)
		var log bytes.Buffer
		result, err := NewSimulator(cfg, &log).Run(context.Background())
		require.NoError(t, err)
		data, err := os.ReadFile(cfg.OutputPath)
		require.NoError(t, err)
		return data, result, log.String()
	}

	first, result, log := run("a.fasta")
	second, _, _ := run("b.fasta")
	assert.Equal(t, first, second)
	assert.Zero(t, result.Manifest.Seed)
	assert.NotContains(t, log, "Seed:", "an explicit seed is not replaced by the clock")
}

func TestSimulator_PlanFailureKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.fasta")
	require.NoError(t, os.WriteFile(output, []byte("previous\n"), 0644))

	cfg := NewRunConfig()
	cfg.InputPath = writeAlignment(t, dir, 10, 20)
	cfg.OutputPath = output
	cfg.Mode = SingleBreakpoint
	cfg.EventCount = 5
	cfg.PoolExtra = 200

	_, err := NewSimulator(cfg, nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrPoolTooLarge)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "previous\n", string(data))
}

func TestSimulator_DuplicateHeadersWarn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.fasta")
	require.NoError(t, os.WriteFile(input, []byte(
		">a\nAAAAAAAA\n>b\nCCCCCCCC\n>a\nGGGGGGGG\n>c\nTTTTTTTT\n"), 0644))

	cfg := NewRunConfig()
	cfg.InputPath = input
	cfg.OutputPath = filepath.Join(dir, "out.fasta")
	cfg.EventCount = 0

	var log bytes.Buffer
	result, err := NewSimulator(cfg, &log).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, log.String(), `duplicate header "a"`)
	assert.Equal(t, 1, result.Manifest.Statistics.DuplicateHeaders)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, ">a\nGGGGGGGG\n>b\nCCCCCCCC\n>c\nTTTTTTTT\n", string(data))
}

func TestSimulator_CompressedInput(t *testing.T) {
	dir := t.TempDir()
	plain, err := os.ReadFile(writeAlignment(t, dir, 12, 20))
	require.NoError(t, err)

	input := filepath.Join(dir, "in.fasta.zst")
	w, err := NewLocalStorage().Create(input)
	require.NoError(t, err)
	zw, err := NewCompressWriter(w, DefaultCompressionLevel)
	require.NoError(t, err)
	_, err = zw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, w.Close())

	cfg := NewRunConfig()
	cfg.InputPath = input
	cfg.OutputPath = filepath.Join(dir, "out.fasta")
	cfg.EventCount = 3
	cfg.Seed = seedOf(1)

	result, err := NewSimulator(cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, result.Manifest.Statistics.OriginalRecords)
}

func TestSimulator_Cancelled(t *testing.T) {
	dir := t.TempDir()
	cfg := NewRunConfig()
	cfg.InputPath = writeAlignment(t, dir, 10, 20)
	cfg.OutputPath = filepath.Join(dir, "out.fasta")
	cfg.EventCount = 2
	cfg.Seed = seedOf(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(cfg, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_InvalidConfig(t *testing.T) {
	cfg := NewRunConfig()
	cfg.OutputPath = cfg.InputPath

	_, err := NewSimulator(cfg, nil).Run(context.Background())
	assert.ErrorContains(t, err, "invalid configuration")
}
