package harmony

import (
	"unsafe"
)

// erasedColumn is the narrow interface the World uses to manage columns
// without knowing their component type.
type erasedColumn interface {
	ComponentType() *ComponentType
	Len() int

	pushEmptySlot()
	clear(entity EntityId) bool
	has(entity EntityId) bool

	// ptrAt returns a pointer to the value stored for the entity.
	// The slot must be present.
	ptrAt(entity EntityId) unsafe.Pointer

	guard() *borrowState
}

type slot[C any] struct {
	Value   C
	Present bool
}

// column is a dense array of optional C values, one slot per entity.
type column[C any] struct {
	componentType *ComponentType
	slots         []slot[C]
	borrow        borrowState
}

func newColumn[C any](ty *ComponentType, n int) *column[C] {
	return &column[C]{
		componentType: ty,
		slots:         make([]slot[C], n),
	}
}

// columnOf downcasts an erased column. A nil column stays nil.
func columnOf[C any](erased erasedColumn) *column[C] {
	if erased == nil {
		return nil
	}

	return erased.(*column[C])
}

func (c *column[C]) ComponentType() *ComponentType {
	return c.componentType
}

func (c *column[C]) Len() int {
	return len(c.slots)
}

func (c *column[C]) pushEmptySlot() {
	c.slots = append(c.slots, slot[C]{})
}

func (c *column[C]) clear(entity EntityId) bool {
	s := &c.slots[entity]
	if !s.Present {
		return false
	}

	// reset to the zero value so the column does not keep references alive
	*s = slot[C]{}

	return true
}

func (c *column[C]) has(entity EntityId) bool {
	return c.slots[entity].Present
}

func (c *column[C]) ptrAt(entity EntityId) unsafe.Pointer {
	return unsafe.Pointer(&c.slots[entity].Value)
}

func (c *column[C]) guard() *borrowState {
	return &c.borrow
}

func (c *column[C]) set(entity EntityId, value C) {
	c.slots[entity] = slot[C]{Value: value, Present: true}
}

func (c *column[C]) get(entity EntityId) (*C, bool) {
	s := &c.slots[entity]
	if !s.Present {
		return nil, false
	}

	return &s.Value, true
}
