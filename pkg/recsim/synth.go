package recsim

import (
	"fmt"
	"regexp"
	"strconv"
)

// Synthesize splices the two sources of ev into a new record.
// Breakpoints outside the planner's contract are a programming error and panic.
func Synthesize(store *Store, ev RecombinationEvent) (OutputRecord, error) {
	left, err := store.Get(ev.Left)
	if err != nil {
		return OutputRecord{}, err
	}
	right, err := store.Get(ev.Right)
	if err != nil {
		return OutputRecord{}, err
	}
	temp := min(len(left), len(right))

	var bases string
	switch ev.Mode {
	case SingleBreakpoint:
		if len(ev.Breakpoints) != 1 {
			panic(fmt.Sprintf("recsim: single breakpoint event %d has %d breakpoints", ev.Index, len(ev.Breakpoints)))
		}
		bkp := ev.Breakpoints[0]
		if bkp <= 0 || bkp >= temp {
			panic(fmt.Sprintf("recsim: event %d breakpoint %d outside (0, %d)", ev.Index, bkp, temp))
		}
		bases = left[:bkp] + right[bkp:]
	case DoubleBreakpoint:
		if len(ev.Breakpoints) != 2 {
			panic(fmt.Sprintf("recsim: double breakpoint event %d has %d breakpoints", ev.Index, len(ev.Breakpoints)))
		}
		b1, b2 := ev.Breakpoints[0], ev.Breakpoints[1]
		if b1 <= 0 || b1 >= b2 || b2 >= temp {
			panic(fmt.Sprintf("recsim: event %d breakpoints %d, %d outside 0 < b1 < b2 < %d", ev.Index, b1, b2, temp))
		}
		bases = left[:b1] + right[b1:b2] + left[b2:]
	default:
		panic(fmt.Sprintf("recsim: unsupported mode %v", ev.Mode))
	}

	return OutputRecord{Header: ev.Header(), Bases: bases}, nil
}

var (
	doubleHeaderRE = regexp.MustCompile(`^r_double(.+)_bkp(\d+)_bkp(\d+)$`)
	singleHeaderRE = regexp.MustCompile(`^r_(.+)_bkp(\d+)$`)
)

// HeaderInfo is what can be recovered from a synthetic record header
type HeaderInfo struct {
	Mode        Mode
	Pair        string // "<left>_<right>", ambiguous when ids contain '_'
	Breakpoints []int
}

// ParseHeader recognizes synthetic record headers. ok is false for anything else.
func ParseHeader(header string) (info HeaderInfo, ok bool) {
	if m := doubleHeaderRE.FindStringSubmatch(header); m != nil {
		b1, _ := strconv.Atoi(m[2])
		b2, _ := strconv.Atoi(m[3])
		return HeaderInfo{Mode: DoubleBreakpoint, Pair: m[1], Breakpoints: []int{b1, b2}}, true
	}
	if m := singleHeaderRE.FindStringSubmatch(header); m != nil {
		b, _ := strconv.Atoi(m[2])
		return HeaderInfo{Mode: SingleBreakpoint, Pair: m[1], Breakpoints: []int{b}}, true
	}
	return HeaderInfo{}, false
}
