// Package harmony is a small column oriented entity component store.
//
// Every component type C gets a dense column holding one optional C per
// entity. Columns are created the first time a value of C is inserted and
// live as long as the World. Systems access columns through runtime checked
// borrows, either one column at a time (Borrow, BorrowMut) or joined over
// several columns (Each1 to Each5, Iter1, Iter2, QueryBuilder).
//
// A World is not safe for concurrent use. The borrow checks exist to catch
// aliasing bugs on the single simulation thread.
package harmony

import (
	"log/slog"

	"github.com/oliverbestmann/harmony/internal/assert"
)

// noCopy can be embedded to provide "go vet" linting
// when a type should not - but is - be copied
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// World holds all columns and the number of entities.
type World struct {
	noCopy noCopy

	columns map[*ComponentType]erasedColumn

	// columns in creation order, so that operations touching every
	// column behave deterministically
	ordered []erasedColumn

	entityCount int

	// deleted ids are never reused
	deleted []bool

	// guards of component types that have no column yet. Borrowing such a
	// type yields an empty view that conflicts like a real column.
	virtual map[*ComponentType]*borrowState

	// number of outstanding borrows over all columns
	borrows int
}

// NewWorld creates a new empty world.
func NewWorld() *World {
	return &World{
		columns: map[*ComponentType]erasedColumn{},
		virtual: map[*ComponentType]*borrowState{},
	}
}

// EntityCount returns the number of entities ever created, including deleted ones.
func (w *World) EntityCount() int {
	return w.entityCount
}

// ColumnCount returns the number of registered columns.
func (w *World) ColumnCount() int {
	return len(w.ordered)
}

// IsAlive returns true if the entity exists and was not deleted.
func (w *World) IsAlive(entity EntityId) bool {
	return int(entity) < w.entityCount && !w.deleted[entity]
}

// NewEntity creates a new entity without any components. Every column
// grows by one empty slot.
func (w *World) NewEntity() EntityId {
	assert.That(w.borrows == 0, func() error {
		return structuralChange("new entity", nil)
	})

	entity := EntityId(w.entityCount)

	w.entityCount += 1
	w.deleted = append(w.deleted, false)

	for _, col := range w.ordered {
		col.pushEmptySlot()
	}

	return entity
}

// Delete clears every component of the entity. The id stays reserved and
// will never report a component again. Deleting an entity twice is a no-op.
func (w *World) Delete(entity EntityId) {
	w.checkRange(entity, nil)

	if w.deleted[entity] {
		return
	}

	// check all columns first so a conflict leaves the entity untouched
	for _, col := range w.ordered {
		if state := col.guard(); !state.idle() {
			panic(&BorrowError{Type: col.ComponentType(), Requested: Exclusive, Held: state.held()})
		}
	}

	for _, col := range w.ordered {
		col.clear(entity)
	}

	w.deleted[entity] = true
}

// Insert adds the value to the entity, overwriting an existing value of
// the same type. The column for C is created on first use.
func Insert[C any](w *World, entity EntityId, value C) {
	ty := ComponentTypeOf[C]()

	w.checkAlive(entity, ty)

	col := columnOf[C](w.columnFor(ty))
	if state := col.guard(); !state.idle() {
		panic(&BorrowError{Type: ty, Requested: Exclusive, Held: state.held()})
	}

	col.set(entity, value)
}

// Remove removes the value of type C from the entity. Returns false if the
// entity did not have a value of type C.
func Remove[C any](w *World, entity EntityId) bool {
	ty := ComponentTypeOf[C]()

	w.checkRange(entity, ty)

	col := w.columns[ty]
	if col == nil {
		return false
	}

	if state := col.guard(); !state.idle() {
		panic(&BorrowError{Type: ty, Requested: Exclusive, Held: state.held()})
	}

	return col.clear(entity)
}

// Has returns true if the entity has a value of type C.
func Has[C any](w *World, entity EntityId) bool {
	ty := ComponentTypeOf[C]()

	w.checkRange(entity, ty)

	col := w.columns[ty]
	return col != nil && col.has(entity)
}

// Get returns a copy of the value of type C of the entity.
func Get[C any](w *World, entity EntityId) (C, bool) {
	ty := ComponentTypeOf[C]()

	w.checkRange(entity, ty)

	var zero C

	col := columnOf[C](w.columns[ty])
	if col == nil {
		return zero, false
	}

	if col.borrow.exclusive {
		panic(&BorrowError{Type: ty, Requested: Shared, Held: Exclusive})
	}

	value, ok := col.get(entity)
	if !ok {
		return zero, false
	}

	return *value, true
}

// GetMut returns a pointer to the value of type C of the entity. The
// column must not be borrowed. The pointer is valid until the next
// entity is created.
func GetMut[C any](w *World, entity EntityId) (*C, bool) {
	ty := ComponentTypeOf[C]()

	w.checkRange(entity, ty)

	col := columnOf[C](w.columns[ty])
	if col == nil {
		return nil, false
	}

	if !col.borrow.idle() {
		panic(&BorrowError{Type: ty, Requested: Exclusive, Held: col.borrow.held()})
	}

	return col.get(entity)
}

// columnFor returns the column of the given type, creating it if needed.
func (w *World) columnFor(ty *ComponentType) erasedColumn {
	if col, ok := w.columns[ty]; ok {
		return col
	}

	assert.That(w.borrows == 0, func() error {
		return structuralChange("create column", ty)
	})

	col := ty.makeColumn(w.entityCount)

	w.columns[ty] = col
	w.ordered = append(w.ordered, col)

	// nothing is borrowed, the column takes over
	delete(w.virtual, ty)

	slog.Debug(
		"Column created",
		slog.String("type", ty.Name),
		slog.Int("slots", col.Len()),
	)

	return col
}

// guardOf returns the borrow guard of the given type: the guard of its
// column, or a virtual guard if the type has no column yet.
func (w *World) guardOf(ty *ComponentType) *borrowState {
	if col := w.columns[ty]; col != nil {
		return col.guard()
	}

	guard := w.virtual[ty]
	if guard == nil {
		guard = &borrowState{}
		w.virtual[ty] = guard
	}

	return guard
}

func (w *World) acquire(ty *ComponentType, mode Mode) (*borrowState, error) {
	guard := w.guardOf(ty)
	if !guard.tryAcquire(mode) {
		return nil, &BorrowError{Type: ty, Requested: mode, Held: guard.held()}
	}

	w.borrows += 1

	return guard, nil
}

func (w *World) release(guard *borrowState, mode Mode) {
	guard.release(mode)
	w.borrows -= 1
}

func (w *World) checkRange(entity EntityId, ty *ComponentType) {
	assert.InRange(entity, w.entityCount, func() error {
		return &EntityError{Entity: entity, Count: w.entityCount, Type: ty, Err: ErrEntityOutOfRange}
	})
}

func (w *World) checkAlive(entity EntityId, ty *ComponentType) {
	w.checkRange(entity, ty)

	assert.That(!w.deleted[entity], func() error {
		return &EntityError{Entity: entity, Count: w.entityCount, Type: ty, Err: ErrEntityDeleted}
	})
}
