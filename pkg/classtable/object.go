package classtable

import "fmt"

// ObjectInstance is a live instance of a Class, carrying its own instance
// variables and a reference back to the class it was constructed from.
// Method dispatch always goes through the owning Environment, never
// through a cached copy of the MRO on the instance itself.
type ObjectInstance struct {
	class *Class
	vars  map[string]any
}

// NewObject constructs an instance of className, initializing instance
// variables by walking the class's MRO base-to-derived so a subclass's
// own defaults win over an ancestor's, mirroring the teacher's
// initializeInstanceVariablesWithMRO.
func (e *Environment) NewObject(className string, defaults map[string]map[string]any) (*ObjectInstance, error) {
	class, ok := e.Resolve(className)
	if !ok {
		return nil, fmt.Errorf("classtable: unknown class %q", className)
	}
	concrete := class.(*Class)

	lin, err := e.mro.LinearISA(concrete)
	if err != nil {
		return nil, err
	}

	obj := &ObjectInstance{class: concrete, vars: make(map[string]any)}
	for i := len(lin.Names) - 1; i >= 0; i-- {
		for k, v := range defaults[lin.Names[i]] {
			obj.vars[k] = v
		}
	}
	return obj, nil
}

// Class returns the instance's owning class.
func (o *ObjectInstance) Class() *Class { return o.class }

// Get reads an instance variable.
func (o *ObjectInstance) Get(name string) (any, bool) {
	v, ok := o.vars[name]
	return v, ok
}

// Set writes an instance variable.
func (o *ObjectInstance) Set(name string, value any) {
	o.vars[name] = value
}

// GetMemberFunction resolves name by walking obj's MRO front-to-back,
// returning the first class that defines it.
func (e *Environment) GetMemberFunction(obj *ObjectInstance, name string) (*Method, error) {
	lin, err := e.mro.LinearISA(obj.class)
	if err != nil {
		return nil, err
	}
	for _, n := range lin.Names {
		cls, ok := e.Resolve(n)
		if !ok {
			continue
		}
		if m, ok := cls.(*Class).lookupOwn(name); ok {
			return m, nil
		}
	}
	return nil, fmt.Errorf("classtable: no method %q in %s's MRO", name, obj.class.name)
}

// CallNextMethod resolves the next implementation of the method named in
// callerFQName (formatted "Class::method") as seen from obj's MRO, the
// equivalent of a next::method call from within that method's body.
func (e *Environment) CallNextMethod(obj *ObjectInstance, callerFQName string) (*Method, error) {
	entry, err := e.mro.NextMethod(obj.class, callerFQName, true)
	if err != nil {
		return nil, err
	}
	m, _ := entry.(*Method)
	return m, nil
}
