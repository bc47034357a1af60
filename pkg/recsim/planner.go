package recsim

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// DefaultPoolExtra is added to the event count to size the index pool in
// single breakpoint mode
const DefaultPoolExtra = 200

// Planner draws recombination events from an explicit random source
type Planner struct {
	src rand.Source
	rng *rand.Rand
}

// NewPlanner creates a planner seeded with seed
func NewPlanner(seed uint64) *Planner {
	var src rand.Source = rand.NewSource(seed)
	return &Planner{
		src: src,
		rng: rand.New(src),
	}
}

// Plan draws eventCount events. poolSize bounds the index draw in single
// breakpoint mode and is ignored in double breakpoint mode.
func (p *Planner) Plan(store *Store, eventCount int, mode Mode, poolSize int) ([]RecombinationEvent, error) {
	if eventCount < 0 {
		return nil, fmt.Errorf("event count must be >= 0, got %d", eventCount)
	}
	if eventCount == 0 {
		return []RecombinationEvent{}, nil
	}

	var ids []string
	switch mode {
	case SingleBreakpoint:
		idx, err := p.drawIndices(store, eventCount, poolSize)
		if err != nil {
			return nil, err
		}
		ids = make([]string, len(idx))
		for i, n := range idx {
			ids[i] = strconv.Itoa(n)
		}
	case DoubleBreakpoint:
		all := store.IDs()
		if 2*eventCount > len(all) {
			return nil, fmt.Errorf("%w: need %d sources, have %d sequences",
				ErrSampleTooLarge, 2*eventCount, len(all))
		}
		idx := make([]int, 2*eventCount)
		sampleuv.WithoutReplacement(idx, len(all), p.src)
		ids = make([]string, len(idx))
		for i, n := range idx {
			ids[i] = all[n]
		}
	default:
		return nil, fmt.Errorf("unsupported mode %v", mode)
	}

	events := make([]RecombinationEvent, eventCount)
	for k := range events {
		ev := RecombinationEvent{
			Index: k,
			Mode:  mode,
			Left:  ids[2*k],
			Right: ids[2*k+1],
		}
		left, err := store.Get(ev.Left)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", k, err)
		}
		right, err := store.Get(ev.Right)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", k, err)
		}
		temp := min(len(left), len(right))

		if mode == SingleBreakpoint {
			bkp, err := p.uniform(ev, temp, "bkp", 1, temp)
			if err != nil {
				return nil, err
			}
			ev.Breakpoints = []int{bkp}
		} else {
			half := temp / 2
			bkp1, err := p.uniform(ev, temp, "bkp1", 1, half)
			if err != nil {
				return nil, err
			}
			bkp2, err := p.uniform(ev, temp, "bkp2", half+2, temp)
			if err != nil {
				return nil, err
			}
			ev.Breakpoints = []int{bkp1, bkp2}
		}
		events[k] = ev
	}

	return events, nil
}

// drawIndices draws 2*eventCount distinct integers from [0, poolSize)
func (p *Planner) drawIndices(store *Store, eventCount, poolSize int) ([]int, error) {
	if poolSize < 2*eventCount {
		return nil, fmt.Errorf("%w: pool %d, events %d", ErrPoolTooSmall, poolSize, eventCount)
	}
	if poolSize > store.Len() {
		return nil, fmt.Errorf("%w: pool %d, sequences %d", ErrPoolTooLarge, poolSize, store.Len())
	}
	if err := store.Indexed(poolSize); err != nil {
		return nil, fmt.Errorf("single breakpoint mode needs ids 0..%d: %w", poolSize-1, err)
	}
	idx := make([]int, 2*eventCount)
	sampleuv.WithoutReplacement(idx, poolSize, p.src)
	return idx, nil
}

// uniform draws from [lo, hi)
func (p *Planner) uniform(ev RecombinationEvent, temp int, name string, lo, hi int) (int, error) {
	if hi <= lo {
		return 0, &InvalidRangeError{
			Event:      ev.Index,
			Left:       ev.Left,
			Right:      ev.Right,
			Temp:       temp,
			Breakpoint: name,
			Lo:         lo,
			Hi:         hi,
		}
	}
	return lo + p.rng.Intn(hi-lo), nil
}

// PoolSize returns the single breakpoint index pool for eventCount events
func PoolSize(eventCount, extra int) int {
	return eventCount + extra
}
