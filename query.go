package harmony

import (
	"cmp"
	"iter"
	"slices"
	"unsafe"

	"github.com/oliverbestmann/harmony/internal/typedpool"
)

type FetchComponent struct {
	ComponentType *ComponentType
	Mutable       bool
}

func (f FetchComponent) mode() Mode {
	if f.Mutable {
		return Exclusive
	}

	return Shared
}

// QueryBuilder collects the component types a Query fetches.
type QueryBuilder struct {
	Fetch []FetchComponent
}

// FetchComponent adds the component type to the query and returns the index
// that the value can be accessed with using EntityRef.GetAt.
//
// Requesting the same type twice is allowed, but acquiring the query will fail
// if either of the requests is mutable.
func (q *QueryBuilder) FetchComponent(componentType *ComponentType, mutable bool) int {
	idx := len(q.Fetch)

	q.Fetch = append(q.Fetch, FetchComponent{
		ComponentType: componentType,
		Mutable:       mutable,
	})

	return idx
}

func (q *QueryBuilder) Build() Query {
	var query Query
	query.Fetch = slices.Clone(q.Fetch)
	query.prepare()
	return query
}

// Query is a join over one or more columns. A Query can be reused for any
// number of passes over the same World.
type Query struct {
	Fetch []FetchComponent

	// indices into Fetch, sorted by component type id. Borrows
	// are acquired in this order.
	order []int
}

func (q *Query) prepare() {
	q.order = q.order[:0]
	for idx := range q.Fetch {
		q.order = append(q.order, idx)
	}

	slices.SortStableFunc(q.order, func(a, b int) int {
		return cmp.Compare(q.Fetch[a].ComponentType.Id, q.Fetch[b].ComponentType.Id)
	})
}

// EntityRef points to one entity matched by a QueryIter.
type EntityRef struct {
	Entity EntityId
	fetch  []erasedColumn
}

// GetAt returns a pointer to the value fetched at the given index of the query.
func (e EntityRef) GetAt(idx int) unsafe.Pointer {
	return e.fetch[idx].ptrAt(e.Entity)
}

var columnsPool = typedpool.New[[]erasedColumn](func(columns *[]erasedColumn) {
	clear(*columns)
	*columns = (*columns)[:0]
})

// QueryIter walks all entities in ascending id order and returns those having
// a value in every fetched column. It holds the borrows of all fetched columns
// until Close is called.
type QueryIter struct {
	noCopy noCopy

	world   *World
	query   *Query
	columns *[]erasedColumn

	next EntityId

	// set if one of the columns does not exist. nothing will match.
	empty  bool
	closed bool
}

// IterQuery acquires the borrows of the query and returns an iterator over all
// matching entities. The iterator must be closed, either by calling Close or
// by running it to completion using AsSeq.
//
// Types without a column are borrowed through a virtual guard: they match
// nothing, but conflict with other borrows of the same type.
func (w *World) IterQuery(q *Query) (*QueryIter, error) {
	it := &QueryIter{}
	if err := w.initQueryIter(it, q); err != nil {
		return nil, err
	}

	return it, nil
}

// initQueryIter acquires the borrows of the query into an iterator that
// is not in use.
func (w *World) initQueryIter(it *QueryIter, q *Query) error {
	if len(q.order) != len(q.Fetch) {
		q.prepare()
	}

	columns := columnsPool.Get()
	*columns = slices.Grow(*columns, len(q.Fetch))[:len(q.Fetch)]

	*it = QueryIter{world: w, query: q, columns: columns}

	for pos, idx := range q.order {
		fetch := q.Fetch[idx]

		if _, err := w.acquire(fetch.ComponentType, fetch.mode()); err != nil {
			it.releaseFirst(pos)
			columnsPool.Put(columns)
			*it = QueryIter{closed: true}
			return err
		}

		col := w.columns[fetch.ComponentType]
		if col == nil {
			// a column that does not exist can not have any value
			it.empty = true
		}

		(*columns)[idx] = col
	}

	return nil
}

// Next returns the next matching entity.
func (it *QueryIter) Next() (EntityRef, bool) {
	if it.closed || it.empty {
		return EntityRef{}, false
	}

	columns := *it.columns
	count := EntityId(it.world.entityCount)

outer:
	for it.next < count {
		entity := it.next
		it.next += 1

		if it.world.deleted[entity] {
			continue
		}

		for _, col := range columns {
			if !col.has(entity) {
				continue outer
			}
		}

		return EntityRef{Entity: entity, fetch: columns}, true
	}

	return EntityRef{}, false
}

// Close releases all borrows. Calling Close more than once is a no-op.
func (it *QueryIter) Close() {
	if it.closed || it.columns == nil {
		return
	}

	it.closed = true
	it.releaseFirst(len(it.query.order))

	columnsPool.Put(it.columns)
	it.columns = nil
}

// releaseFirst releases the borrows acquired for the first n entries of
// the acquisition order, in reverse order.
func (it *QueryIter) releaseFirst(n int) {
	for pos := n - 1; pos >= 0; pos-- {
		fetch := it.query.Fetch[it.query.order[pos]]

		// no column can be created while borrowed, so this is the guard
		// that was acquired
		guard := it.world.guardOf(fetch.ComponentType)
		it.world.release(guard, fetch.mode())
	}
}

// AsSeq returns the remaining entities as a sequence. The iterator is closed
// once the sequence ends or the consumer stops early.
func (it *QueryIter) AsSeq() iter.Seq[EntityRef] {
	return func(yield func(EntityRef) bool) {
		defer it.Close()

		for {
			ref, ok := it.Next()
			if !ok {
				return
			}

			if !yield(ref) {
				return
			}
		}
	}
}
