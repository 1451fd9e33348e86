package mro

import "iter"

// Class is an opaque handle to a class owned by the external class table
// (the "stash" in spec terms). Implementations are expected to be pointer
// types so that a Class can key a Context's internal metadata map by
// identity rather than by name.
type Class interface {
	// Names returns the class's current name(s). The first element is the
	// canonical name used to seed a linearization. A class with no names
	// is anonymous and every operation requiring a name fails with an
	// *Error of Kind AnonymousClass.
	Names() []string

	// ParentNames returns the ordered parent-name list as currently
	// mutated by the caller. Duplicates are allowed; linearizers collapse
	// them. Names that don't resolve via the owning ClassTable are kept
	// as bare names in the linearization.
	ParentNames() []string

	// Methods returns this class's own method table (not including
	// inherited methods).
	Methods() MethodTable

	// Nested iterates the (key, nested class) pairs declared directly
	// under this class's own namespace, for the namespace-move
	// propagator to discover classes that move along with their parent.
	// A leaf class with no nested namespace returns an empty sequence.
	Nested() iter.Seq2[string, Class]
}

// ClassTable resolves a class name to its current handle. This is the
// external name-indexed class table ("stash") the subsystem consumes but
// never owns.
type ClassTable interface {
	Resolve(name string) (Class, bool)
}

// MethodTable is a class's own method table, external to this subsystem.
type MethodTable interface {
	Lookup(name string) (MethodEntry, bool)
}

// MethodEntry is an opaque method implementation. IsDispatchCache reports
// whether this entry is itself a memoized dispatch result rather than a
// genuine definition; the next-method resolver skips such entries so it
// never returns a stale cached dispatch as if it were the "next"
// implementation (spec §4.9 step 4).
type MethodEntry interface {
	IsDispatchCache() bool
}

// Slot represents the namespace location a class was assigned into.
// Contains reports whether the slot still holds the given class, used by
// OnClassMoved's default existence check.
type Slot interface {
	Contains(class Class) bool
}

// MoveFlags controls OnClassMoved behavior.
type MoveFlags uint32

const (
	// SkipExistenceCheck suppresses the check that the slot still
	// contains newClass before processing the move (spec §6, "flags").
	SkipExistenceCheck MoveFlags = 1 << 0
)
