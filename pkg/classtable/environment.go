package classtable

import (
	"fmt"
	"sync"

	"github.com/oolang/mro/pkg/mro"
)

// Environment is the name-indexed class table ("stash") this package owns:
// it creates and mutates Class values, and asks a *mro.Context to compute
// and keep linearizations coherent across those mutations. Environment
// itself never runs a linearization algorithm.
type Environment struct {
	mu      sync.RWMutex
	classes map[string]*Class
	mro     *mro.Context
}

// NewEnvironment constructs an empty Environment with its own independent
// mro.Context.
func NewEnvironment(opts ...mro.Option) *Environment {
	env := &Environment{classes: make(map[string]*Class)}
	env.mro = mro.NewContext(env, opts...)
	return env
}

// MRO exposes the underlying context for callers that need direct access
// to operations not mirrored on Environment (algorithm registration,
// ISA-rev queries, and so on).
func (e *Environment) MRO() *mro.Context { return e.mro }

// Resolve implements mro.ClassTable.
func (e *Environment) Resolve(name string) (mro.Class, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.classes[name]
	if !ok {
		return nil, false
	}
	return c, true
}

// DefineClass creates name with the given parents, or updates an
// existing class's parent list in place and notifies the context, so
// every transitive subclass already computed is kept coherent.
func (e *Environment) DefineClass(name string, parents ...string) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("classtable: class name must not be empty")
	}

	e.mu.Lock()
	existing, exists := e.classes[name]
	if !exists {
		c := newClass(name)
		c.parents = parents
		e.classes[name] = c
		e.mu.Unlock()
		return c, nil
	}
	existing.parents = parents
	e.mu.Unlock()

	if err := e.mro.OnParentsChanged(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DefineMethod installs impl as name's implementation on class and
// notifies the context that class's method table changed.
func (e *Environment) DefineMethod(class *Class, name string, impl func(self *ObjectInstance, args []any) (any, error)) error {
	e.mu.Lock()
	class.methods[name] = &Method{Name: name, Impl: impl}
	e.mu.Unlock()

	return e.mro.OnMethodChanged(class)
}

// DefineNested declares child as a sub-namespace of parent under key, so
// that a later RenameClass on parent carries child along with it.
func (e *Environment) DefineNested(parent *Class, key string, child *Class) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if parent.nested == nil {
		parent.nested = make(map[string]*Class)
	}
	parent.nested[key] = child
}

// RenameClass moves class to newName. oldName is the name it was
// previously known by, used to invalidate subclasses that depended on
// that symbol.
func (e *Environment) RenameClass(class *Class, newName string) error {
	e.mu.Lock()
	oldName := class.name
	// old carries class's real pre-rename nested map (and parent list),
	// not an empty placeholder, so OnClassMoved's old-subtree walk
	// actually reaches the classes that lived under oldName rather than
	// finding nothing.
	old := &Class{name: oldName, parents: class.parents, methods: class.methods, nested: class.nested}
	delete(e.classes, oldName)
	class.name = newName
	e.classes[newName] = class
	e.mu.Unlock()

	return e.mro.OnClassMoved(class, old, classSlot{env: e, name: newName}, 0)
}

// classSlot reports whether a name still resolves to the class that was
// just moved into it.
type classSlot struct {
	env  *Environment
	name string
}

func (s classSlot) Contains(c mro.Class) bool {
	s.env.mu.RLock()
	defer s.env.mu.RUnlock()
	return s.env.classes[s.name] == c
}
