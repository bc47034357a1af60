package recsim

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// DefaultCompressionLevel maps to zstd.SpeedDefault
const DefaultCompressionLevel = 2

// CompressionForPath returns "zstd" for .zst/.zstd paths and "none" otherwise
func CompressionForPath(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".zst") || strings.HasSuffix(lower, ".zstd") {
		return "zstd"
	}
	return "none"
}

// NewCompressWriter wraps w in a zstd encoder. Close must be called to
// flush the frame; it does not close w.
func NewCompressWriter(w io.Writer, level int) (*zstd.Encoder, error) {
	var encoderLevel zstd.EncoderLevel
	switch level {
	case 1:
		encoderLevel = zstd.SpeedFastest
	case 2:
		encoderLevel = zstd.SpeedDefault
	case 3:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(encoderLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return encoder, nil
}
