package harmony

import (
	"iter"

	"github.com/oliverbestmann/harmony/internal/typedpool"
)

// Access selects shared or exclusive access to the column of C in a join.
type Access[C any] struct {
	mutable bool
}

// Read requests shared access to C. Values passed to the callback must not
// be modified.
func Read[C any]() Access[C] {
	return Access[C]{}
}

// Write requests exclusive access to C.
func Write[C any]() Access[C] {
	return Access[C]{mutable: true}
}

func (a Access[C]) fetch() FetchComponent {
	return FetchComponent{
		ComponentType: ComponentTypeOf[C](),
		Mutable:       a.mutable,
	}
}

// join is the scratch state of one typed pass. It is pooled so that
// repeated passes do not allocate.
type join struct {
	query Query
	iter  QueryIter
}

var joinPool = typedpool.New[join](func(j *join) {
	clear(j.query.Fetch)
	j.query.Fetch = j.query.Fetch[:0]
	j.iter = QueryIter{}
})

func startJoin(w *World, fetch ...FetchComponent) *join {
	j := joinPool.Get()

	j.query.Fetch = append(j.query.Fetch, fetch...)
	j.query.prepare()

	if err := w.initQueryIter(&j.iter, &j.query); err != nil {
		joinPool.Put(j)
		panic(err)
	}

	return j
}

func (j *join) finish() {
	j.iter.Close()
	joinPool.Put(j)
}

// Each1 calls fn for every entity with a value of A.
func Each1[A any](w *World, a Access[A], fn func(EntityId, *A)) {
	j := startJoin(w, a.fetch())
	defer j.finish()

	for {
		ref, ok := j.iter.Next()
		if !ok {
			return
		}

		fn(ref.Entity, (*A)(ref.GetAt(0)))
	}
}

// Each2 calls fn for every entity having values of both A and B.
func Each2[A, B any](w *World, a Access[A], b Access[B], fn func(EntityId, *A, *B)) {
	j := startJoin(w, a.fetch(), b.fetch())
	defer j.finish()

	for {
		ref, ok := j.iter.Next()
		if !ok {
			return
		}

		fn(ref.Entity, (*A)(ref.GetAt(0)), (*B)(ref.GetAt(1)))
	}
}

func Each3[A, B, C any](w *World, a Access[A], b Access[B], c Access[C], fn func(EntityId, *A, *B, *C)) {
	j := startJoin(w, a.fetch(), b.fetch(), c.fetch())
	defer j.finish()

	for {
		ref, ok := j.iter.Next()
		if !ok {
			return
		}

		fn(ref.Entity, (*A)(ref.GetAt(0)), (*B)(ref.GetAt(1)), (*C)(ref.GetAt(2)))
	}
}

func Each4[A, B, C, D any](w *World, a Access[A], b Access[B], c Access[C], d Access[D], fn func(EntityId, *A, *B, *C, *D)) {
	j := startJoin(w, a.fetch(), b.fetch(), c.fetch(), d.fetch())
	defer j.finish()

	for {
		ref, ok := j.iter.Next()
		if !ok {
			return
		}

		fn(
			ref.Entity,
			(*A)(ref.GetAt(0)),
			(*B)(ref.GetAt(1)),
			(*C)(ref.GetAt(2)),
			(*D)(ref.GetAt(3)),
		)
	}
}

func Each5[A, B, C, D, E any](w *World, a Access[A], b Access[B], c Access[C], d Access[D], e Access[E], fn func(EntityId, *A, *B, *C, *D, *E)) {
	j := startJoin(w, a.fetch(), b.fetch(), c.fetch(), d.fetch(), e.fetch())
	defer j.finish()

	for {
		ref, ok := j.iter.Next()
		if !ok {
			return
		}

		fn(
			ref.Entity,
			(*A)(ref.GetAt(0)),
			(*B)(ref.GetAt(1)),
			(*C)(ref.GetAt(2)),
			(*D)(ref.GetAt(3)),
			(*E)(ref.GetAt(4)),
		)
	}
}

// Iter1 returns a lazy sequence of all entities with a value of A. The
// column is borrowed once ranging starts and released when it ends.
func Iter1[A any](w *World, a Access[A]) iter.Seq2[EntityId, *A] {
	return func(yield func(EntityId, *A) bool) {
		j := startJoin(w, a.fetch())
		defer j.finish()

		for {
			ref, ok := j.iter.Next()
			if !ok || !yield(ref.Entity, (*A)(ref.GetAt(0))) {
				return
			}
		}
	}
}

// Iter2 returns a lazy sequence of value pairs of all entities having both
// A and B.
func Iter2[A, B any](w *World, a Access[A], b Access[B]) iter.Seq2[*A, *B] {
	return func(yield func(*A, *B) bool) {
		j := startJoin(w, a.fetch(), b.fetch())
		defer j.finish()

		for {
			ref, ok := j.iter.Next()
			if !ok || !yield((*A)(ref.GetAt(0)), (*B)(ref.GetAt(1))) {
				return
			}
		}
	}
}
