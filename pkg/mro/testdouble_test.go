package mro

import "iter"

// fakeClass is a minimal in-memory Class used across this package's
// tests. Always used as a pointer so it satisfies the identity-as-map-key
// expectation documented on Class.
type fakeClass struct {
	name    string
	parents []string
	methods fakeMethodTable
	nested  map[string]Class
}

func newFakeClass(name string, parents ...string) *fakeClass {
	return &fakeClass{name: name, parents: parents, methods: fakeMethodTable{}}
}

func (c *fakeClass) Names() []string {
	if c.name == "" {
		return nil
	}
	return []string{c.name}
}
func (c *fakeClass) ParentNames() []string { return c.parents }
func (c *fakeClass) Methods() MethodTable  { return c.methods }

func (c *fakeClass) Nested() iter.Seq2[string, Class] {
	return func(yield func(string, Class) bool) {
		for k, v := range c.nested {
			if !yield(k, v) {
				return
			}
		}
	}
}

func (c *fakeClass) define(method string) {
	c.methods[method] = fakeMethodEntry{}
}

// fakeMethodTable is a class's own method table.
type fakeMethodTable map[string]MethodEntry

func (t fakeMethodTable) Lookup(name string) (MethodEntry, bool) {
	e, ok := t[name]
	return e, ok
}

type fakeMethodEntry struct {
	dispatchCache bool
}

func (e fakeMethodEntry) IsDispatchCache() bool { return e.dispatchCache }

// fakeClassTable resolves names to registered fakeClass handles.
type fakeClassTable struct {
	classes map[string]Class
}

func newFakeClassTable() *fakeClassTable {
	return &fakeClassTable{classes: make(map[string]Class)}
}

func (t *fakeClassTable) register(c *fakeClass) {
	t.classes[c.name] = c
}

func (t *fakeClassTable) Resolve(name string) (Class, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// fakeSlot always (or never) contains the class it's asked about,
// depending on how the test constructs it.
type fakeSlot struct {
	holds Class
}

func (s fakeSlot) Contains(class Class) bool { return s.holds == class }
