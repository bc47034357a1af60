package recsim

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://bucket/out.fasta", "bucket", "out.fasta", false},
		{"s3://bucket/runs/1/out.fasta.zst", "bucket", "runs/1/out.fasta.zst", false},
		{"s3://bucket", "", "", true},
		{"s3://bucket/", "", "", true},
		{"s3:///key", "", "", true},
		{"/tmp/out.fasta", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			u, err := ParseS3URI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, u.Bucket)
			assert.Equal(t, tt.key, u.Key)
		})
	}
}

func TestLocalStorage(t *testing.T) {
	s := NewLocalStorage()
	assert.False(t, s.IsS3())

	path := filepath.Join(t.TempDir(), "a", "b", "file.txt")
	ok, err := s.Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	w, err := s.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "hello")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ok, err = s.Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := s.Open(path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCompressionForPath(t *testing.T) {
	assert.Equal(t, "zstd", CompressionForPath("out.fasta.zst"))
	assert.Equal(t, "zstd", CompressionForPath("s3://b/OUT.FASTA.ZSTD"))
	assert.Equal(t, "none", CompressionForPath("out.fasta"))
	assert.Equal(t, "none", CompressionForPath("out.fasta.gz"))
}
