package field

import "iter"

// Domain is an index space together with its active-index set.
type Domain interface {
	// Shape returns the extents of the index space.
	Shape() Shape

	// Active enumerates the active multi-indices in unspecified order.
	// The sequence is finite and every call restarts it.
	Active() iter.Seq[Index]
}

// Field is an N-dimensional, possibly sparse container of elements of T.
//
// At and Set address component c (see Layout.Component) of the element at
// idx and must be valid at every index of Shape, active or not. Set on an
// inactive index may activate it. Concurrent Set calls on distinct indices
// must be safe.
type Field[T Numeric] interface {
	Domain

	// Layout returns the element kind and component bounds.
	Layout() Layout

	// At returns component c of the element at idx.
	At(idx Index, c int) T

	// Set writes component c of the element at idx.
	Set(idx Index, c int, v T)
}

// Deactivator is a domain whose indices can be removed from the active set.
// Deactivate must be safe to call while Active is being enumerated.
type Deactivator interface {
	Domain
	Deactivate(idx Index)
}

// Child is a deactivatable structure whose active set is cheaper to reach
// through a coarser parent. Deactivate accepts a parent index and clears
// the corresponding child range.
type Child interface {
	Deactivator
	Parent() Domain
}

// Differentiable is a field paired with a derivative field of equal shape.
type Differentiable[T Numeric] interface {
	Field[T]
	Grad() Field[T]
}
