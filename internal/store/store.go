// Package store provides the id-indexed object tables behind a Context.
//
// Ids start at 1. Id 0 is the reserved null object: it always exists, holds
// the zero value and is never erased.
package store

// Store is a growable table of objects addressed by small integer ids.
//
// Store is not safe for concurrent use; the owning Context serializes access.
type Store[T any] struct {
	objects   []*T
	used      []bool
	firstFree int
	onErase   func(id uint32, obj *T)
}

const initialSize = 8

// New creates an empty store. onErase, when non-nil, runs for every erased
// object before its slot is recycled.
func New[T any](onErase func(id uint32, obj *T)) *Store[T] {
	s := &Store[T]{onErase: onErase, firstFree: 1}
	s.grow(initialSize)
	return s
}

// grow extends the table to hold at least n slots, by factor 1.5.
func (s *Store[T]) grow(n int) {
	size := len(s.objects)
	if size >= n {
		return
	}
	if size == 0 {
		size = initialSize
	}
	for size < n {
		size += size / 2
	}
	objects := make([]*T, size)
	copy(objects, s.objects)
	used := make([]bool, size)
	copy(used, s.used)
	s.objects, s.used = objects, used
	if s.objects[0] == nil {
		s.objects[0] = new(T)
		s.used[0] = true
	}
}

// Len returns the current slot capacity.
func (s *Store[T]) Len() int { return len(s.objects) }

// Insert stores obj under the lowest free non-zero id and returns it.
func (s *Store[T]) Insert(obj *T) uint32 {
	id := s.firstFree
	for id < len(s.used) && s.used[id] {
		id++
	}
	s.grow(id + 1)
	s.objects[id] = obj
	s.used[id] = true
	s.firstFree = id + 1
	return uint32(id) // #nosec G115 -- ids are bounded by table size
}

// Allocate inserts a fresh zero object and returns its id.
func (s *Store[T]) Allocate() uint32 {
	return s.Insert(new(T))
}

// Get returns the object for id, creating it on first access.
// Ids beyond the table grow it.
func (s *Store[T]) Get(id uint32) *T {
	i := int(id)
	s.grow(i + 1)
	if !s.used[i] {
		s.objects[i] = new(T)
		s.used[i] = true
	}
	return s.objects[i]
}

// Find returns the object for id without creating it.
func (s *Store[T]) Find(id uint32) (*T, bool) {
	i := int(id)
	if i >= len(s.used) || !s.used[i] {
		return nil, false
	}
	return s.objects[i], true
}

// Erase removes id, running the on-erase hook. Erasing 0 or a free id is a no-op.
// Reports whether an object was removed.
func (s *Store[T]) Erase(id uint32) bool {
	i := int(id)
	if i == 0 || i >= len(s.used) || !s.used[i] {
		return false
	}
	obj := s.objects[i]
	if s.onErase != nil {
		s.onErase(id, obj)
	}
	s.objects[i] = nil
	s.used[i] = false
	s.firstFree = min(s.firstFree, i)
	return true
}

// Each calls fn for every live non-null object in id order.
func (s *Store[T]) Each(fn func(id uint32, obj *T)) {
	for i := 1; i < len(s.objects); i++ {
		if s.used[i] {
			fn(uint32(i), s.objects[i]) // #nosec G115
		}
	}
}
