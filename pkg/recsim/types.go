package recsim

import (
	"fmt"
	"strings"
	"time"
)

// SequenceRecord is one input sequence
type SequenceRecord struct {
	ID    string
	Bases string
}

// OutputRecord is one FASTA record written to the result file
type OutputRecord struct {
	Header string
	Bases  string
}

// Mode selects the breakpoint sampling strategy
type Mode int

const (
	// SingleBreakpoint splices left[:bkp] + right[bkp:]
	SingleBreakpoint Mode = iota
	// DoubleBreakpoint splices left[:bkp1] + right[bkp1:bkp2] + left[bkp2:]
	DoubleBreakpoint
)

func (m Mode) String() string {
	switch m {
	case SingleBreakpoint:
		return "single"
	case DoubleBreakpoint:
		return "double"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "single" or "double"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-breakpoint":
		return SingleBreakpoint, nil
	case "double", "double-breakpoint":
		return DoubleBreakpoint, nil
	default:
		return 0, fmt.Errorf("invalid mode %q (expected single or double)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	switch m {
	case SingleBreakpoint, DoubleBreakpoint:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// OriginalsPolicy controls which source sequences follow the recombinants
type OriginalsPolicy string

const (
	// OriginalsAll writes every loaded sequence, including recombination sources
	OriginalsAll OriginalsPolicy = "all"
	// OriginalsUnrecombined writes only sequences no event used as a source
	OriginalsUnrecombined OriginalsPolicy = "unrecombined"
)

// ParseOriginalsPolicy validates a policy name
func ParseOriginalsPolicy(s string) (OriginalsPolicy, error) {
	switch p := OriginalsPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case OriginalsAll, OriginalsUnrecombined:
		return p, nil
	case "":
		return OriginalsAll, nil
	default:
		return "", fmt.Errorf("invalid originals policy %q (expected all or unrecombined)", s)
	}
}

// RecombinationEvent describes one synthetic record
type RecombinationEvent struct {
	Index       int    `yaml:"index"`
	Mode        Mode   `yaml:"mode"`
	Left        string `yaml:"left"`
	Right       string `yaml:"right"`
	Breakpoints []int  `yaml:"breakpoints,flow"`
}

// Header renders the provenance header of the synthetic record.
// The double-breakpoint prefix has no underscore before the left id.
func (e RecombinationEvent) Header() string {
	var sb strings.Builder
	switch e.Mode {
	case SingleBreakpoint:
		sb.WriteString("r_")
	default:
		sb.WriteString("r_double")
	}
	sb.WriteString(e.Left)
	sb.WriteByte('_')
	sb.WriteString(e.Right)
	for _, b := range e.Breakpoints {
		fmt.Fprintf(&sb, "_bkp%d", b)
	}
	return sb.String()
}

// Source describes the original data source
type Source struct {
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

// Statistics summarizes one emitted file
type Statistics struct {
	SyntheticRecords int   `yaml:"synthetic_records"`
	OriginalRecords  int   `yaml:"original_records"`
	SkippedOriginals int   `yaml:"skipped_originals"`
	TotalBases       int64 `yaml:"total_bases"`
	DuplicateHeaders int   `yaml:"duplicate_headers"`
}

// Manifest records how an output file was produced
type Manifest struct {
	Format     string               `yaml:"format"`
	Version    string               `yaml:"version"`
	RunID      string               `yaml:"run_id"`
	Created    time.Time            `yaml:"created"`
	CreatedBy  string               `yaml:"created_by"`
	Source     Source               `yaml:"source"`
	Output     string               `yaml:"output"`
	Mode       Mode                 `yaml:"mode"`
	Seed       uint64               `yaml:"seed"`
	EventCount int                  `yaml:"event_count"`
	PoolSize   int                  `yaml:"pool_size,omitempty"`
	Originals  OriginalsPolicy      `yaml:"originals"`
	Statistics Statistics           `yaml:"statistics"`
	Events     []RecombinationEvent `yaml:"events"`
}
