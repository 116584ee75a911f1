package ecs

// A Term is one clause of a query: Present[T], Optional[T], or Exclude[T].
// Queries compose any number of terms (the spec caps composition at arity
// 10 for readability; the engine itself does not enforce a hard limit).
type Term interface {
	resolve(w *World) resolvedTerm
}

type termKind int

const (
	kindPresent termKind = iota
	kindOptional
	kindExclude
)

// resolvedTerm is the type-erased, World-bound form of a Term, produced once
// per NewQuery call.
type resolvedTerm struct {
	kind       termKind
	id         ComponentID
	registered bool
	liveCount  func() int
	get        func(slot int) any // returns *T, nil if absent; unused for Exclude
}

type presentTerm[T any] struct{}

// Present requires the entity to carry component T. Yields *T.
func Present[T any]() Term { return presentTerm[T]{} }

func (presentTerm[T]) resolve(w *World) resolvedTerm {
	id, ok := lookupComponentID[T](w)
	if !ok {
		return resolvedTerm{kind: kindPresent, registered: false}
	}
	s := w.storages[id].(*ComponentStorage[T])
	return resolvedTerm{
		kind:       kindPresent,
		id:         id,
		registered: true,
		liveCount:  s.liveCount,
		get: func(slot int) any {
			v, _ := s.Get(slot)
			return v
		},
	}
}

type optionalTerm[T any] struct{}

// Optional permits the entity to carry component T or not. Yields *T, which
// is nil when absent or when T has never been registered in the World.
func Optional[T any]() Term { return optionalTerm[T]{} }

func (optionalTerm[T]) resolve(w *World) resolvedTerm {
	id, ok := lookupComponentID[T](w)
	if !ok {
		return resolvedTerm{
			kind:       kindOptional,
			registered: false,
			get:        func(slot int) any { return (*T)(nil) },
		}
	}
	s := w.storages[id].(*ComponentStorage[T])
	return resolvedTerm{
		kind:       kindOptional,
		id:         id,
		registered: true,
		get: func(slot int) any {
			v, _ := s.Get(slot)
			return v
		},
	}
}

type excludeTerm[T any] struct{}

// Exclude rejects any entity carrying component T. Yields nothing.
func Exclude[T any]() Term { return excludeTerm[T]{} }

func (excludeTerm[T]) resolve(w *World) resolvedTerm {
	id, ok := lookupComponentID[T](w)
	return resolvedTerm{kind: kindExclude, id: id, registered: ok}
}

// Query is a built, World-bound iteration plan over a set of terms.
type Query struct {
	w        *World
	terms    []resolvedTerm
	required Mask
	exclude  Mask
	empty    bool // true if a Present term's family was never registered
}

// NewQuery builds a Query from terms. Fails if a mutable (Present/Optional)
// term names the same registered component family as another such term in
// the same query, since the iterator cannot route two overlapping mutable
// borrows into a single tuple slot safely.
func NewQuery(w *World, terms ...Term) (*Query, error) {
	resolved := make([]resolvedTerm, len(terms))
	seen := make(map[ComponentID]bool)
	empty := false
	var required, exclude Mask

	for i, t := range terms {
		r := t.resolve(w)
		switch r.kind {
		case kindPresent:
			if !r.registered {
				empty = true
				break
			}
			if seen[r.id] {
				return nil, ErrDuplicateMutableBorrow
			}
			seen[r.id] = true
			required.Set(int(r.id), true)
		case kindOptional:
			if r.registered {
				if seen[r.id] {
					return nil, ErrDuplicateMutableBorrow
				}
				seen[r.id] = true
			}
		case kindExclude:
			if r.registered {
				exclude.Set(int(r.id), true)
			}
		}
		resolved[i] = r
	}

	return &Query{w: w, terms: resolved, required: required, exclude: exclude, empty: empty}, nil
}

// smallestLiveCount bounds total yields by the smallest live count among
// Present storages, since Optional/Exclude terms do not constrain
// cardinality monotonically.
func (q *Query) smallestLiveCount() int {
	min := -1
	for _, t := range q.terms {
		if t.kind != kindPresent {
			continue
		}
		c := t.liveCount()
		if min == -1 || c < min {
			min = c
		}
	}
	if min == -1 {
		return len(q.w.entities)
	}
	return min
}

// Each walks matching entities in slot order, calling yield with the entity
// and its term tuple (indexed the same as the terms passed to NewQuery;
// Exclude slots carry a zero-value struct{}). Stops early if yield returns
// false. Iteration order is deterministic: entity-slot order, unaffected by
// anything but World mutation between calls.
func (q *Query) Each(yield func(e Entity, values []any) bool) {
	if q.empty {
		return
	}
	limit := q.smallestLiveCount()
	if limit <= 0 {
		return
	}
	produced := 0
	for slot := 0; slot < len(q.w.entities) && produced < limit; slot++ {
		ed := &q.w.entities[slot]
		if !ed.alive {
			continue
		}
		if ed.mask.Intersects(q.exclude) {
			continue
		}
		if !ed.mask.Contains(q.required) {
			continue
		}

		values := make([]any, len(q.terms))
		for i, t := range q.terms {
			if t.kind == kindExclude {
				values[i] = struct{}{}
				continue
			}
			values[i] = t.get(slot)
		}
		produced++
		if !yield(Entity{ID: uint32(slot), Version: ed.version}, values) {
			return
		}
	}
}

// Get evaluates the query against a single entity, returning its term tuple
// (or ok=false if e does not match).
func (q *Query) Get(e Entity) (values []any, ok bool) {
	if q.empty || !q.w.IsAlive(e) {
		return nil, false
	}
	ed := &q.w.entities[e.ID]
	if ed.mask.Intersects(q.exclude) {
		return nil, false
	}
	if !ed.mask.Contains(q.required) {
		return nil, false
	}
	values = make([]any, len(q.terms))
	for i, t := range q.terms {
		if t.kind == kindExclude {
			values[i] = struct{}{}
			continue
		}
		values[i] = t.get(int(e.ID))
	}
	return values, true
}
