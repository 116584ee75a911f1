package ecs

// Typed convenience wrappers over Query for the common case of one to five
// required (Present) component types, optionally extended with additional
// Optional/Exclude terms. These mirror the arity-per-type-parameter query
// shape the engine's predecessor used, generalized to the Present/Optional/
// Exclude term algebra; callers needing more than five Present types, or
// needing typed access to Optional/Exclude results, can drop to the
// untyped NewQuery/Query.Each directly — the term-based engine itself has
// no arity limit.

// ForEach1 iterates entities carrying A, plus any extra terms, calling fn
// for each match. fn's rest slice holds the resolved values for extra, in
// order. Returns false from fn to stop early.
func ForEach1[A any](w *World, extra []Term, fn func(e Entity, a *A, rest []any) bool) error {
	q, err := NewQuery(w, append([]Term{Present[A]()}, extra...)...)
	if err != nil {
		return err
	}
	q.Each(func(e Entity, values []any) bool {
		a, _ := values[0].(*A)
		return fn(e, a, values[1:])
	})
	return nil
}

func ForEach2[A, B any](w *World, extra []Term, fn func(e Entity, a *A, b *B, rest []any) bool) error {
	q, err := NewQuery(w, append([]Term{Present[A](), Present[B]()}, extra...)...)
	if err != nil {
		return err
	}
	q.Each(func(e Entity, values []any) bool {
		a, _ := values[0].(*A)
		b, _ := values[1].(*B)
		return fn(e, a, b, values[2:])
	})
	return nil
}

func ForEach3[A, B, C any](w *World, extra []Term, fn func(e Entity, a *A, b *B, c *C, rest []any) bool) error {
	q, err := NewQuery(w, append([]Term{Present[A](), Present[B](), Present[C]()}, extra...)...)
	if err != nil {
		return err
	}
	q.Each(func(e Entity, values []any) bool {
		a, _ := values[0].(*A)
		b, _ := values[1].(*B)
		c, _ := values[2].(*C)
		return fn(e, a, b, c, values[3:])
	})
	return nil
}

func ForEach4[A, B, C, D any](w *World, extra []Term, fn func(e Entity, a *A, b *B, c *C, d *D, rest []any) bool) error {
	q, err := NewQuery(w, append([]Term{Present[A](), Present[B](), Present[C](), Present[D]()}, extra...)...)
	if err != nil {
		return err
	}
	q.Each(func(e Entity, values []any) bool {
		a, _ := values[0].(*A)
		b, _ := values[1].(*B)
		c, _ := values[2].(*C)
		d, _ := values[3].(*D)
		return fn(e, a, b, c, d, values[4:])
	})
	return nil
}

func ForEach5[A, B, C, D, E any](w *World, extra []Term, fn func(ent Entity, a *A, b *B, c *C, d *D, e *E, rest []any) bool) error {
	q, err := NewQuery(w, append([]Term{Present[A](), Present[B](), Present[C](), Present[D](), Present[E]()}, extra...)...)
	if err != nil {
		return err
	}
	q.Each(func(ent Entity, values []any) bool {
		a, _ := values[0].(*A)
		b, _ := values[1].(*B)
		c, _ := values[2].(*C)
		d, _ := values[3].(*D)
		e2, _ := values[4].(*E)
		return fn(ent, a, b, c, d, e2, values[5:])
	})
	return nil
}
