package recsim

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolTooSmall is returned when the index pool cannot supply two sources per event
	ErrPoolTooSmall = errors.New("pool size smaller than 2 x event count")

	// ErrPoolTooLarge is returned when the index pool exceeds the store size
	ErrPoolTooLarge = errors.New("pool size exceeds number of loaded sequences")

	// ErrSampleTooLarge is returned when more sources are requested than sequences exist
	ErrSampleTooLarge = errors.New("sample larger than population")
)

// NotFoundError reports a source id absent from the store
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sequence %q not found", e.ID)
}

// InvalidRangeError reports an empty breakpoint sampling range.
// Lo and Hi describe the half-open interval [Lo, Hi) that had no members.
type InvalidRangeError struct {
	Event      int
	Left       string
	Right      string
	Temp       int
	Breakpoint string
	Lo         int
	Hi         int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("event %d (%s x %s): empty range [%d, %d) for %s (shorter source length %d)",
		e.Event, e.Left, e.Right, e.Lo, e.Hi, e.Breakpoint, e.Temp)
}
