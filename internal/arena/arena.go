// Package arena provides a generational index arena: a dense slice of slots
// addressed by (index, generation) handles with a free list for reuse.
//
// A handle stays valid until its slot is removed. Reusing a slot bumps its
// generation, so stale handles are detected instead of aliasing a new value.
//
// Thread safety: Arena is safe for concurrent use. Values are returned by copy;
// callers that store slices inside values must not mutate them while rendering.
package arena

import "sync"

// Handle addresses a value in an Arena. The zero Handle is never valid and
// can be used to mean "none".
type Handle struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether h is the zero ("none") handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena stores values of type T addressed by Handle.
// Arena must not be copied after creation (has mutex).
type Arena[T any] struct {
	mu    sync.RWMutex
	slots []slot[T]
	free  []uint32
	count int
}

// New creates an empty arena with room for capacity values.
func New[T any](capacity int) *Arena[T] {
	return &Arena[T]{slots: make([]slot[T], 0, capacity)}
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		s.occupied = true
		return Handle{Index: idx, Generation: s.generation}
	}

	// Generations start at 1 so the zero Handle never matches.
	a.slots = append(a.slots, slot[T]{value: v, generation: 1, occupied: true})
	//nolint:gosec // G115: arena sizes stay far below 2^32
	return Handle{Index: uint32(len(a.slots) - 1), Generation: 1}
}

// Get returns the value for h. ok is false for stale, removed or zero handles.
func (a *Arena[T]) Get(h Handle) (v T, ok bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if !a.validLocked(h) {
		return v, false
	}
	return a.slots[h.Index].value, true
}

// Contains reports whether h refers to a live value.
func (a *Arena[T]) Contains(h Handle) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.validLocked(h)
}

// Set replaces the value for h. It returns false if h is not live.
func (a *Arena[T]) Set(h Handle, v T) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.validLocked(h) {
		return false
	}
	a.slots[h.Index].value = v
	return true
}

// Remove deletes the value for h and returns it. The slot's generation is
// bumped so h and its copies become stale.
func (a *Arena[T]) Remove(h Handle) (v T, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.validLocked(h) {
		return v, false
	}
	s := &a.slots[h.Index]
	v = s.value
	var zero T
	s.value = zero
	s.occupied = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	a.free = append(a.free, h.Index)
	a.count--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.count
}

// Each calls fn for every live value in index order. fn must not modify the arena.
func (a *Arena[T]) Each(fn func(Handle, T)) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			//nolint:gosec // G115: see Insert
			fn(Handle{Index: uint32(i), Generation: s.generation}, s.value)
		}
	}
}

func (a *Arena[T]) validLocked(h Handle) bool {
	if int(h.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	return s.occupied && s.generation == h.Generation
}
