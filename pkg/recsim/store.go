package recsim

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// SequenceSource yields input records one at a time and returns io.EOF when done
type SequenceSource interface {
	Read() (SequenceRecord, error)
}

// Store holds every loaded sequence, keyed by id, in input order
type Store struct {
	seqs       map[string]string
	order      []string
	duplicates []string
}

// NewStore builds a store from records in order. Later duplicates overwrite
// earlier bases but keep the first position.
func NewStore(records ...SequenceRecord) *Store {
	s := &Store{seqs: make(map[string]string, len(records))}
	for _, r := range records {
		s.put(r)
	}
	return s
}

// LoadStore drains src into a new store
func LoadStore(src SequenceSource) (*Store, error) {
	s := &Store{seqs: make(map[string]string)}
	for {
		rec, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sequence %d: %w", len(s.order)+1, err)
		}
		s.put(rec)
	}
	return s, nil
}

func (s *Store) put(r SequenceRecord) {
	if _, ok := s.seqs[r.ID]; ok {
		s.duplicates = append(s.duplicates, r.ID)
	} else {
		s.order = append(s.order, r.ID)
	}
	s.seqs[r.ID] = r.Bases
}

// Get returns the bases for id
func (s *Store) Get(id string) (string, error) {
	bases, ok := s.seqs[id]
	if !ok {
		return "", &NotFoundError{ID: id}
	}
	return bases, nil
}

// IDs returns the ids in insertion order
func (s *Store) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of distinct ids
func (s *Store) Len() int {
	return len(s.order)
}

// Duplicates lists ids that appeared more than once during load, once per overwrite
func (s *Store) Duplicates() []string {
	return append([]string(nil), s.duplicates...)
}

// Records returns every record in insertion order
func (s *Store) Records() []SequenceRecord {
	recs := make([]SequenceRecord, len(s.order))
	for i, id := range s.order {
		recs[i] = SequenceRecord{ID: id, Bases: s.seqs[id]}
	}
	return recs
}

// Indexed checks that ids "0".."n-1" are all present, which single
// breakpoint planning relies on.
func (s *Store) Indexed(n int) error {
	for i := 0; i < n; i++ {
		if _, ok := s.seqs[strconv.Itoa(i)]; !ok {
			return &NotFoundError{ID: strconv.Itoa(i)}
		}
	}
	return nil
}
