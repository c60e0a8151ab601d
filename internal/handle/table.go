package handle

import (
	"errors"
	"sync"
)

// ErrInvalidToken is returned when a token does not resolve to a live slot.
var ErrInvalidToken = errors.New("invalid or released token")

// Token identifies a live entry in a Table. The zero Token never resolves.
//
// The low 32 bits hold the slot index plus one, the high 32 bits hold the
// slot generation at insert time.
type Token uint64

func newToken(index, gen uint32) Token {
	return Token(uint64(gen)<<32 | uint64(index+1))
}

func (t Token) split() (index uint32, gen uint32, ok bool) {
	low := uint32(t)
	if low == 0 {
		return 0, 0, false
	}
	return low - 1, uint32(t >> 32), true
}

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// Table is a process-wide arena of values addressed by Token.
// The zero value is ready to use and safe for concurrent use.
type Table[T any] struct {
	mu    sync.Mutex
	slots []slot[T]
	free  []uint32
}

// Insert stores v and returns a token for it.
func (t *Table[T]) Insert(v T) Token {
	t.mu.Lock()
	defer t.mu.Unlock()

	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot[T]{gen: 1})
	}

	s := &t.slots[idx]
	s.live = true
	s.val = v

	return newToken(idx, s.gen)
}

// Get resolves tok. It reports false for the zero token, released tokens
// and tokens from a previous generation of the slot.
func (t *Table[T]) Get(tok Token) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.lookup(tok)
	if s == nil {
		var zero T
		return zero, false
	}

	return s.val, true
}

// Remove releases tok and returns the value it held.
// Removing an unknown token is a no-op reporting false.
func (t *Table[T]) Remove(tok Token) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	s := t.lookup(tok)
	if s == nil {
		return zero, false
	}

	v := s.val
	s.val = zero
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}

	idx, _, _ := tok.split()
	t.free = append(t.free, idx)

	return v, true
}

// Len reports the number of live entries.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.slots) - len(t.free)
}

func (t *Table[T]) lookup(tok Token) *slot[T] {
	idx, gen, ok := tok.split()
	if !ok || int(idx) >= len(t.slots) {
		return nil
	}

	s := &t.slots[idx]
	if !s.live || s.gen != gen {
		return nil
	}

	return s
}
