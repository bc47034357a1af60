// Package bench drives repeated detector runs over a range of thread counts.
package bench

import (
	"fmt"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

const threadsKey = "threadsCount"

// UpdateThreadsCount rewrites every line of the settings file that starts
// with threadsCount to "threadsCount <n>". Other lines are left untouched.
func UpdateThreadsCount(path string, n int) error {
	info, err := os.Stat(path)
	if err != nil {
		return pfx.Err(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pfx.Err(err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	var sb strings.Builder
	sb.Grow(len(data) + 8)
	for _, line := range lines {
		if strings.HasPrefix(line, threadsKey) {
			fmt.Fprintf(&sb, "%s %d\n", threadsKey, n)
			continue
		}
		sb.WriteString(line)
	}

	return pfx.Err(os.WriteFile(path, []byte(sb.String()), info.Mode().Perm()))
}
