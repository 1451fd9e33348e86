package classtable

import (
	"iter"

	"github.com/oolang/mro/pkg/mro"
)

// Class is a named, mutable class definition tracked by an Environment.
// It satisfies mro.Class: Environment never computes a linearization
// itself, it only hands classes to a *mro.Context and reads the result
// back.
type Class struct {
	name    string
	parents []string
	methods methodTable
	nested  map[string]*Class
}

func newClass(name string) *Class {
	return &Class{name: name, methods: methodTable{}}
}

// Names implements mro.Class.
func (c *Class) Names() []string {
	if c.name == "" {
		return nil
	}
	return []string{c.name}
}

// ParentNames implements mro.Class.
func (c *Class) ParentNames() []string { return c.parents }

// Methods implements mro.Class.
func (c *Class) Methods() mro.MethodTable { return c.methods }

// Nested implements mro.Class, iterating directly-declared nested
// classes (package-style sub-namespaces).
func (c *Class) Nested() iter.Seq2[string, mro.Class] {
	return func(yield func(string, mro.Class) bool) {
		for key, nested := range c.nested {
			if !yield(key, nested) {
				return
			}
		}
	}
}

// Method is one class's own implementation of a named method.
type Method struct {
	Name string
	Impl func(self *ObjectInstance, args []any) (any, error)
	// dispatchCache marks an entry synthesized by a dispatch-memoization
	// layer above Environment rather than written by a class author; the
	// next-method resolver must never treat one as a genuine definition.
	dispatchCache bool
}

// IsDispatchCache implements mro.MethodEntry.
func (m *Method) IsDispatchCache() bool { return m.dispatchCache }

type methodTable map[string]*Method

// Lookup implements mro.MethodTable.
func (t methodTable) Lookup(name string) (mro.MethodEntry, bool) {
	m, ok := t[name]
	if !ok {
		return nil, false
	}
	return m, true
}

func (c *Class) lookupOwn(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}
