package bench

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
)

// MoveLogs moves every *.log file in logsDir into runDir, creating runDir
// if needed. It returns the moved file names.
func MoveLogs(logsDir, runDir string) ([]string, error) {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, pfx.Err(err)
	}

	entries, err := os.ReadDir(logsDir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var moved []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		src := filepath.Join(logsDir, e.Name())
		dst := filepath.Join(runDir, e.Name())
		if err := moveFile(src, dst); err != nil {
			return moved, pfx.Err(err)
		}
		moved = append(moved, e.Name())
	}
	sort.Strings(moved)
	return moved, nil
}

// moveFile renames src to dst, copying across filesystems when rename fails
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

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
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
