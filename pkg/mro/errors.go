package mro

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a *Error.
type Kind string

const (
	// AnonymousClass: the operation requires a named class.
	AnonymousClass Kind = "anonymous-class"
	// RecursiveInheritance: linearization recursion exceeded the depth
	// ceiling, or a class was found to be its own parent.
	RecursiveInheritance Kind = "recursive-inheritance"
	// C3Inconsistency: the C3 merge could not place a head.
	C3Inconsistency Kind = "c3-inconsistency"
	// UnknownAlgorithm: no algorithm is registered under the given name.
	UnknownAlgorithm Kind = "unknown-algorithm"
	// NoNextMethod: next_method found nothing past the caller in the MRO.
	NoNextMethod Kind = "no-next-method"
	// DuplicateAlgorithm: an algorithm name is already registered.
	DuplicateAlgorithm Kind = "duplicate-algorithm"
)

// Error is the single error type raised by this package's operations.
// Most fields are Kind-specific; see the constructors below.
type Error struct {
	Kind    Kind
	Message string
	Wrapped error

	// Class names, populated when relevant to the Kind.
	ClassName string

	// Partial and Blocking are populated for C3Inconsistency: the
	// linearization accumulated so far, and the head that could not be
	// placed.
	Partial  []string
	Blocking string
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, string(e.Kind))
	if e.ClassName != "" {
		parts = append(parts, fmt.Sprintf("class %q", e.ClassName))
	}
	parts = append(parts, e.Message)
	if e.Kind == C3Inconsistency {
		parts = append(parts, fmt.Sprintf("partial=%v blocking=%q", e.Partial, e.Blocking))
	}
	if e.Wrapped != nil {
		parts = append(parts, e.Wrapped.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Wrapped }

func errAnonymousClass() *Error {
	return &Error{Kind: AnonymousClass, Message: "class has no name"}
}

func errRecursiveInheritance(className string) *Error {
	return &Error{
		Kind:      RecursiveInheritance,
		ClassName: className,
		Message:   "recursive inheritance detected",
	}
}

func errC3Inconsistency(className string, partial []string, blocking string) *Error {
	return &Error{
		Kind:      C3Inconsistency,
		ClassName: className,
		Message:   "inconsistent hierarchy, cannot compute C3 linearization",
		Partial:   partial,
		Blocking:  blocking,
	}
}

func errUnknownAlgorithm(name string) *Error {
	return &Error{Kind: UnknownAlgorithm, Message: fmt.Sprintf("no algorithm registered as %q", name)}
}

func errNoNextMethod(callerFQName string) *Error {
	return &Error{Kind: NoNextMethod, Message: fmt.Sprintf("no next method after %q", callerFQName)}
}

func errDuplicateAlgorithm(name string) *Error {
	return &Error{Kind: DuplicateAlgorithm, Message: fmt.Sprintf("algorithm %q already registered", name)}
}
