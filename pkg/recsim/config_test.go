package recsim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunConfig_Defaults(t *testing.T) {
	cfg := NewRunConfig()
	assert.Equal(t, "simulated.fasta", cfg.InputPath)
	assert.Equal(t, "seqs_recombined.fasta", cfg.OutputPath)
	assert.Equal(t, DoubleBreakpoint, cfg.Mode)
	assert.Equal(t, 50, cfg.EventCount)
	assert.Equal(t, 250, cfg.PoolSize())
	assert.Equal(t, OriginalsAll, cfg.Originals)
	assert.True(t, cfg.WriteManifest)
	assert.False(t, cfg.WriteIndex)
	assert.Equal(t, "seqs_recombined.fasta.manifest.yaml", cfg.ManifestPath())
	require.NoError(t, cfg.Validate())
}

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RunConfig)
		errMsg string
	}{
		{"same input and output", func(c *RunConfig) { c.OutputPath = c.InputPath }, "must differ"},
		{"empty input", func(c *RunConfig) { c.InputPath = "" }, "input path"},
		{"negative events", func(c *RunConfig) { c.EventCount = -1 }, "event count"},
		{"negative pool extra", func(c *RunConfig) { c.PoolExtra = -1 }, "pool extra"},
		{"bad mode", func(c *RunConfig) { c.Mode = Mode(7) }, "invalid mode"},
		{"bad policy", func(c *RunConfig) { c.Originals = "some" }, "originals policy"},
		{"single pool too small", func(c *RunConfig) {
			c.Mode = SingleBreakpoint
			c.EventCount = 10
			c.PoolExtra = 5
		}, "pool size smaller"},
		{"index on compressed output", func(c *RunConfig) {
			c.OutputPath = "out.fasta.zst"
			c.WriteIndex = true
		}, "index requires"},
		{"index on s3 output", func(c *RunConfig) {
			c.OutputPath = "s3://bucket/out.fasta"
			c.WriteIndex = true
		}, "index requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewRunConfig()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestRunConfig_ShowConfig(t *testing.T) {
	cfg := NewRunConfig()
	cfg.Mode = SingleBreakpoint
	cfg.Seed = seedOf(11)

	var buf bytes.Buffer
	cfg.ShowConfig(&buf)
	out := buf.String()
	assert.Contains(t, out, "Mode: single")
	assert.Contains(t, out, "Pool size: 250 (events + 200)")
	assert.Contains(t, out, "Seed: 11")
	assert.Contains(t, out, "Compression: none")

	cfg.Seed = seedOf(0)
	buf.Reset()
	cfg.ShowConfig(&buf)
	assert.Contains(t, buf.String(), "Seed: 0\n", "zero is a real seed")

	cfg.Seed = nil
	buf.Reset()
	cfg.ShowConfig(&buf)
	assert.Contains(t, buf.String(), "Seed: random")
}

func seedOf(n uint64) *uint64 {
	return &n
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"single":            SingleBreakpoint,
		"Double":            DoubleBreakpoint,
		"double-breakpoint": DoubleBreakpoint,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("triple")
	assert.Error(t, err)

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("single")))
	assert.Equal(t, SingleBreakpoint, m)
	_, err = Mode(9).MarshalText()
	assert.Error(t, err)
}

func TestParseOriginalsPolicy(t *testing.T) {
	p, err := ParseOriginalsPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OriginalsAll, p)

	p, err = ParseOriginalsPolicy("Unrecombined")
	require.NoError(t, err)
	assert.Equal(t, OriginalsUnrecombined, p)

	_, err = ParseOriginalsPolicy("none")
	assert.Error(t, err)
}
