package mro

// Identity is an algorithm's identity token, distinct from its name. A
// class's metadata records it next to the bound algorithm's name;
// linearization looks the algorithm up by that name, which always maps to
// the same Algorithm because RegisterAlgorithm rejects a name that is
// already registered.
type Identity struct {
	name string
}

// LinearizeFunc computes the linearization of class within ctx. It must
// call ctx.resolve to look up parents by name rather than walking
// class.ParentNames() directly, so that not-yet-existing classes are
// handled uniformly.
type LinearizeFunc func(ctx *Context, class Class) (*Linearization, error)

// Algorithm is a pluggable linearization strategy, registered once under a
// name and referenced afterward either as a class's default or as a
// per-call override.
type Algorithm struct {
	name      string
	linearize LinearizeFunc
	identity  *Identity
}

// NewAlgorithm constructs a named algorithm around fn. The returned value
// is registered with Context.RegisterAlgorithm.
func NewAlgorithm(name string, fn LinearizeFunc) *Algorithm {
	return &Algorithm{name: name, linearize: fn, identity: &Identity{name: name}}
}

// Name returns the algorithm's registered name.
func (a *Algorithm) Name() string { return a.name }

// RegisterAlgorithm adds a to the registry. Re-registering an already-used
// name is a DuplicateAlgorithm error; algorithm identity, once assigned to
// a class, never changes underneath it.
func (c *Context) RegisterAlgorithm(a *Algorithm) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.algorithms[a.name]; exists {
		return errDuplicateAlgorithm(a.name)
	}
	c.algorithms[a.name] = a
	return nil
}

func (c *Context) lookupAlgorithm(name string) (*Algorithm, error) {
	a, ok := c.algorithms[name]
	if !ok {
		return nil, errUnknownAlgorithm(name)
	}
	return a, nil
}
