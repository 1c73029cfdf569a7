package harmony

import (
	"iter"
)

// Mode is the kind of access a borrow grants.
type Mode uint8

const (
	Shared Mode = iota
	Exclusive
)

func (m Mode) String() string {
	if m == Exclusive {
		return "exclusive"
	}

	return "shared"
}

// borrowState is the reader/writer guard of a single column. Any number
// of shared borrows, or exactly one exclusive borrow, may be outstanding.
type borrowState struct {
	shared    int32
	exclusive bool
}

func (b *borrowState) idle() bool {
	return b.shared == 0 && !b.exclusive
}

// held returns the mode of an outstanding borrow. Must only be called if
// the state is not idle.
func (b *borrowState) held() Mode {
	if b.exclusive {
		return Exclusive
	}

	return Shared
}

func (b *borrowState) tryAcquire(mode Mode) bool {
	switch {
	case b.exclusive:
		return false

	case mode == Exclusive && b.shared > 0:
		return false

	case mode == Exclusive:
		b.exclusive = true

	default:
		b.shared += 1
	}

	return true
}

func (b *borrowState) release(mode Mode) {
	if mode == Exclusive {
		b.exclusive = false
		return
	}

	b.shared -= 1
}

// Ref is a shared borrow of the column of C. It must be released with
// Release once the caller is done with it.
type Ref[C any] struct {
	world    *World
	guard    *borrowState
	column   *column[C]
	released bool
}

// Borrow acquires shared access to all values of type C. Borrowing a type
// that was never registered yields an empty column, which is still guarded
// like a real one.
func Borrow[C any](w *World) (*Ref[C], error) {
	ty := ComponentTypeOf[C]()

	guard, err := w.acquire(ty, Shared)
	if err != nil {
		return nil, err
	}

	return &Ref[C]{world: w, guard: guard, column: columnOf[C](w.columns[ty])}, nil
}

// Get returns a copy of the value of C stored for the entity.
func (r *Ref[C]) Get(entity EntityId) (C, bool) {
	r.world.checkRange(entity, ComponentTypeOf[C]())

	var zero C
	if r.column == nil {
		return zero, false
	}

	value, ok := r.column.get(entity)
	if !ok {
		return zero, false
	}

	return *value, true
}

// All iterates over every entity that has a value, in ascending id order.
func (r *Ref[C]) All() iter.Seq2[EntityId, C] {
	return func(yield func(EntityId, C) bool) {
		if r.column == nil {
			return
		}

		for idx := range r.column.slots {
			s := &r.column.slots[idx]
			if s.Present && !yield(EntityId(idx), s.Value) {
				return
			}
		}
	}
}

// Release ends the borrow. Calling Release more than once is a no-op.
func (r *Ref[C]) Release() {
	if r.released {
		return
	}

	r.released = true
	r.world.release(r.guard, Shared)
}

// RefMut is an exclusive borrow of the column of C.
type RefMut[C any] struct {
	world    *World
	guard    *borrowState
	column   *column[C]
	released bool
}

// BorrowMut acquires exclusive access to all values of type C.
//
// Borrowing a type that was never registered yields an empty column. The
// borrow still conflicts with other borrows of C, and the column can not be
// created by Insert until it is released.
func BorrowMut[C any](w *World) (*RefMut[C], error) {
	ty := ComponentTypeOf[C]()

	guard, err := w.acquire(ty, Exclusive)
	if err != nil {
		return nil, err
	}

	return &RefMut[C]{world: w, guard: guard, column: columnOf[C](w.columns[ty])}, nil
}

// Get returns a pointer to the value of C stored for the entity. The pointer
// must not be used after the borrow is released.
func (r *RefMut[C]) Get(entity EntityId) (*C, bool) {
	r.world.checkRange(entity, ComponentTypeOf[C]())

	if r.column == nil {
		return nil, false
	}

	return r.column.get(entity)
}

// Clear removes the value of the entity, if any.
func (r *RefMut[C]) Clear(entity EntityId) bool {
	r.world.checkRange(entity, ComponentTypeOf[C]())

	if r.column == nil {
		return false
	}

	return r.column.clear(entity)
}

func (r *RefMut[C]) All() iter.Seq2[EntityId, *C] {
	return func(yield func(EntityId, *C) bool) {
		if r.column == nil {
			return
		}

		for idx := range r.column.slots {
			s := &r.column.slots[idx]
			if s.Present && !yield(EntityId(idx), &s.Value) {
				return
			}
		}
	}
}

// Release ends the borrow. Calling Release more than once is a no-op.
func (r *RefMut[C]) Release() {
	if r.released {
		return
	}

	r.released = true
	r.world.release(r.guard, Exclusive)
}
