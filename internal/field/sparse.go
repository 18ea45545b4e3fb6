package field

import (
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/emirpasic/gods/v2/sets/hashset"
)

// Sparse is a field with an explicit active-index set.
//
// Elements are stored densely; the active set holds row-major offsets.
// Writing an inactive index activates it and deactivating an index resets
// its components to zero.
type Sparse[T Numeric] struct {
	shape  Shape
	layout Layout
	data   []T

	mu     sync.Mutex // Guards active
	active *hashset.Set[int]
}

// NewSparse creates a sparse field with no active indices.
func NewSparse[T Numeric](shape Shape, layout Layout) (*Sparse[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Sparse[T]{
		shape:  shape.Clone(),
		layout: layout,
		data:   make([]T, shape.NumElements()*layout.Size()),
		active: hashset.New[int](),
	}, nil
}

// Shape returns the field's shape.
func (s *Sparse[T]) Shape() Shape {
	return s.shape
}

// Layout returns the field's element layout.
func (s *Sparse[T]) Layout() Layout {
	return s.layout
}

// Active enumerates a snapshot of the active set in row-major order.
// The yielded Index is reused between steps.
func (s *Sparse[T]) Active() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		s.mu.Lock()
		offsets := s.active.Values()
		s.mu.Unlock()
		slices.Sort(offsets)

		idx := make(Index, len(s.shape))
		for _, off := range offsets {
			s.shape.Unravel(off, idx)
			if !yield(idx) {
				return
			}
		}
	}
}

// At returns component c of the element at idx. Inactive elements read zero.
func (s *Sparse[T]) At(idx Index, c int) T {
	return s.data[s.offset(idx, c)]
}

// Set writes component c of the element at idx, activating it.
func (s *Sparse[T]) Set(idx Index, c int, v T) {
	off := s.offset(idx, c)
	s.mark(off / s.layout.Size())
	s.data[off] = v
}

// Activate adds idx to the active set without changing its value.
func (s *Sparse[T]) Activate(idx Index) {
	s.mark(s.shape.Offset(idx))
}

// Deactivate removes idx from the active set and zeroes its components.
func (s *Sparse[T]) Deactivate(idx Index) {
	lin := s.shape.Offset(idx)
	s.mu.Lock()
	s.active.Remove(lin)
	s.mu.Unlock()

	base := lin * s.layout.Size()
	clear(s.data[base : base+s.layout.Size()])
}

// IsActive reports whether idx is in the active set.
func (s *Sparse[T]) IsActive(idx Index) bool {
	lin := s.shape.Offset(idx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Contains(lin)
}

// NumActive returns the size of the active set.
func (s *Sparse[T]) NumActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Size()
}

// String returns a human-readable representation of the field.
func (s *Sparse[T]) String() string {
	return fmt.Sprintf("Sparse[%s]%v %s (%d active)", TypeOf[T](), s.shape, s.layout, s.NumActive())
}

func (s *Sparse[T]) mark(lin int) {
	s.mu.Lock()
	if !s.active.Contains(lin) {
		s.active.Add(lin)
	}
	s.mu.Unlock()
}

func (s *Sparse[T]) offset(idx Index, c int) int {
	if c < 0 || c >= s.layout.Size() {
		panic(fmt.Sprintf("component %d out of bounds for layout %s", c, s.layout))
	}
	return s.shape.Offset(idx)*s.layout.Size() + c
}
