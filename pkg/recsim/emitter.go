package recsim

import (
	"bufio"
	"fmt"
	"io"
	"iter"
)

// EmitStats counts what an emit pass wrote
type EmitStats struct {
	Synthetic int
	Originals int
	Skipped   int
	Bases     int64
}

// Emit writes synthetic records in the order produced, then the store's
// originals selected by policy. Each record is two lines: ">header" and bases.
// Nothing written before a failure is rolled back.
func Emit(w io.Writer, records iter.Seq2[OutputRecord, error], store *Store, used map[string]bool, policy OriginalsPolicy) (EmitStats, error) {
	var stats EmitStats
	bw := bufio.NewWriter(w)

	for rec, err := range records {
		if err != nil {
			bw.Flush()
			return stats, err
		}
		if err := writeRecord(bw, rec.Header, rec.Bases); err != nil {
			return stats, fmt.Errorf("failed to write record %s: %w", rec.Header, err)
		}
		stats.Synthetic++
		stats.Bases += int64(len(rec.Bases))
	}

	for _, rec := range store.Records() {
		if policy == OriginalsUnrecombined && used[rec.ID] {
			stats.Skipped++
			continue
		}
		if err := writeRecord(bw, rec.ID, rec.Bases); err != nil {
			return stats, fmt.Errorf("failed to write record %s: %w", rec.ID, err)
		}
		stats.Originals++
		stats.Bases += int64(len(rec.Bases))
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	return stats, nil
}

func writeRecord(w *bufio.Writer, header, bases string) error {
	if err := w.WriteByte('>'); err != nil {
		return err
	}
	if _, err := w.WriteString(header); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := w.WriteString(bases); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// SourcesUsed returns the set of ids referenced by events
func SourcesUsed(events []RecombinationEvent) map[string]bool {
	used := make(map[string]bool, 2*len(events))
	for _, ev := range events {
		used[ev.Left] = true
		used[ev.Right] = true
	}
	return used
}

// Synthesized lazily splices each event in order
func Synthesized(store *Store, events []RecombinationEvent) iter.Seq2[OutputRecord, error] {
	return func(yield func(OutputRecord, error) bool) {
		for _, ev := range events {
			rec, err := Synthesize(store, ev)
			if err != nil {
				yield(OutputRecord{}, fmt.Errorf("event %d: %w", ev.Index, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// EmitFile opens path through storage, truncating it, and runs Emit.
// A ".zst" suffix compresses the stream. The handle is closed on every path.
func EmitFile(storage Storage, path string, records iter.Seq2[OutputRecord, error], store *Store, used map[string]bool, policy OriginalsPolicy) (stats EmitStats, err error) {
	out, err := storage.Create(path)
	if err != nil {
		return stats, fmt.Errorf("failed to create output %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output %s: %w", path, cerr)
		}
	}()

	var w io.Writer = out
	if CompressionForPath(path) == "zstd" {
		zw, zerr := NewCompressWriter(out, DefaultCompressionLevel)
		if zerr != nil {
			return stats, zerr
		}
		defer func() {
			if cerr := zw.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to finish zstd stream: %w", cerr)
			}
		}()
		w = zw
	}

	return Emit(w, records, store, used, policy)
}
