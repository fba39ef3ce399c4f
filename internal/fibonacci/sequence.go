package fibonacci

import "iter"

// Sequence is a lazy, unbounded Fibonacci generator seeded with F(0)=0 and
// F(1)=1. It holds exactly two terms of state and advances one step per
// call to Next. A Sequence is not safe for concurrent use; it is owned by
// whoever constructed it.
//
// There is no reset: restart by calling New.
type Sequence struct {
	cur, next int64
	pos       int
}

// New returns a Sequence positioned before F(0).
func New() *Sequence {
	return &Sequence{cur: 0, next: 1}
}

// Next returns the next term and advances the sequence.
//
// Terms past MaxIndex wrap around int64 and must not be trusted.
func (s *Sequence) Next() int64 {
	term := s.cur
	s.cur, s.next = s.next, s.cur+s.next
	s.pos++
	return term
}

// Position returns the index of the term the next call to Next will return.
func (s *Sequence) Position() int {
	return s.pos
}

// All returns an iterator over (position, term) pairs starting at the
// current position. The iterator never ends on its own; consumers stop it
// by breaking out of the range loop. Pulling from All advances s.
func (s *Sequence) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		for {
			pos := s.pos
			if !yield(pos, s.Next()) {
				return
			}
		}
	}
}

// Take returns the next count terms of s as a slice.
func (s *Sequence) Take(count int) []int64 {
	if count <= 0 {
		return nil
	}
	terms := make([]int64, count)
	for i := range terms {
		terms[i] = s.Next()
	}
	return terms
}
