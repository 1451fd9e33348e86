package mro

// classMeta is the per-class metadata block, the Go analog of mro.c's
// struct mro_meta hung off each stash.
//
// pkgGen and cacheGen are pure observable counters, not cache-validity
// signals: pkgGen bumps only on a direct change to this class itself
// (parent list or method table); cacheGen bumps on a change that could
// affect method dispatch as seen from this class (its own parent list or
// bound algorithm, or an ancestor's parents or methods; its own method
// edits leave it alone). Cache validity is tracked separately by linear itself:
// nil means "must recompute", matching the spec's explicit rule that a
// method-table change never invalidates a cached linearization even
// though it does bump cacheGen.
type classMeta struct {
	pkgGen   uint64
	cacheGen uint64

	algoName string
	algo     *Identity

	linear *Linearization

	// isaSet mirrors the linearization as a membership set plus
	// "UNIVERSAL", for O(1) ancestry queries without rescanning Names.
	isaSet map[string]struct{}
}

func newClassMeta(defaultAlgoName string, defaultAlgo *Identity) *classMeta {
	return &classMeta{
		pkgGen:   1,
		cacheGen: 1,
		algoName: defaultAlgoName,
		algo:     defaultAlgo,
	}
}

func (m *classMeta) stale() bool { return m.linear == nil }

func (m *classMeta) store(lin *Linearization) {
	m.linear = lin
	set := make(map[string]struct{}, len(lin.Names)+1)
	for _, n := range lin.Names {
		set[n] = struct{}{}
	}
	set[universalName] = struct{}{}
	m.isaSet = set
}

// clearLinearization drops the cached linearization and isa-set without
// touching either generation counter; callers bump the counter(s)
// appropriate to the event that triggered the clear.
func (m *classMeta) clearLinearization() {
	m.linear = nil
	m.isaSet = nil
}

// metaFor returns the metadata block for class, creating it on first
// touch with the context's current default algorithm.
func (c *Context) metaFor(class Class) *classMeta {
	m, ok := c.meta[class]
	if !ok {
		m = newClassMeta(c.defaultAlgoName, c.defaultAlgoIdentity)
		c.meta[class] = m
	}
	return m
}
