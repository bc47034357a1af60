// Package fasta reads FASTA input for the simulator and indexes its output.
package fasta

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	biogofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record is one parsed FASTA entry. ID is the full header line without '>'.
type Record struct {
	ID  string
	Seq string
}

// Reader yields records one at a time, in file order
type Reader struct {
	r   *biogofasta.Reader
	tap *headerTap
	n   int
}

// NewReader reads FASTA from r. Residues are taken verbatim (gaps included).
func NewReader(r io.Reader) *Reader {
	tap := &headerTap{r: r, lineStart: true}
	template := linear.NewSeq("", nil, alphabet.DNAgapped)
	return &Reader{r: biogofasta.NewReader(tap, template), tap: tap}
}

// Read returns the next record, or io.EOF after the last one
func (r *Reader) Read() (Record, error) {
	s, err := r.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("record %d: %w", r.n+1, err)
	}
	r.n++

	ls, ok := s.(*linear.Seq)
	if !ok {
		return Record{}, fmt.Errorf("record %d: unexpected sequence type %T", r.n, s)
	}

	id, ok := r.tap.next()
	if !ok {
		id = ls.ID
		if ls.Desc != "" {
			id += " " + ls.Desc
		}
	}
	return Record{ID: id, Seq: string(ls.Seq)}, nil
}

// headerTap records header lines verbatim as the biogo reader pulls bytes
// through it. biogo splits a header into ID and description at the first
// space or tab and the separator is lost, so the raw line is kept here.
// Headers are queued in file order, which is also record order.
type headerTap struct {
	r         io.Reader
	lineStart bool
	inHeader  bool
	cur       []byte
	headers   []string
}

func (t *headerTap) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	for _, b := range p[:n] {
		switch {
		case t.inHeader:
			if b == '\n' {
				t.flush()
				t.lineStart = true
				continue
			}
			t.cur = append(t.cur, b)
		case t.lineStart && b == '>':
			t.inHeader = true
			t.lineStart = false
		default:
			t.lineStart = b == '\n'
		}
	}
	if err == io.EOF && t.inHeader {
		t.flush()
	}
	return n, err
}

func (t *headerTap) flush() {
	t.headers = append(t.headers, strings.TrimRight(string(t.cur), " \t\r"))
	t.cur = t.cur[:0]
	t.inHeader = false
}

func (t *headerTap) next() (string, bool) {
	if len(t.headers) == 0 {
		return "", false
	}
	h := t.headers[0]
	t.headers = t.headers[1:]
	return h, true
}

// ReadAll drains r
func ReadAll(r io.Reader) ([]Record, error) {
	fr := NewReader(r)
	var recs []Record
	for {
		rec, err := fr.Read()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}
