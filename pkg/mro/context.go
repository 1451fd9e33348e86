package mro

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// universalName is the name every linearization implicitly terminates
// with, mirroring Perl's UNIVERSAL package.
const universalName = "UNIVERSAL"

const defaultNextMethodCacheSize = 512

// Context is the explicit, lockable home for everything this package would
// otherwise keep in package-level globals: the algorithm registry, the
// per-class metadata table, the reverse-ISA index, and the generation
// counter. A host embeds one Context per independent class universe, the
// same way the teacher's api.VM wraps one interpreter per embedding.
type Context struct {
	mu sync.RWMutex

	classTable ClassTable

	algorithms          map[string]*Algorithm
	defaultAlgoName     string
	defaultAlgoIdentity *Identity

	meta map[Class]*classMeta

	// isarev maps a class name to the set of classes whose cached
	// linearization (under their bound algorithm) includes that name as a
	// proper ancestor, i.e. its known transitive subclasses; a class is
	// never listed under its own name.
	isarev map[string]map[Class]struct{}

	// subGeneration increments on a parent or method change in UNIVERSAL's
	// global-invalidation scope and on InvalidateAllMethodCaches, read by
	// hosts that memoize dispatch outside this package (mirroring
	// PL_sub_generation).
	subGeneration uint64

	nextMethodCache     *lru.Cache
	nextMethodCacheSize int

	// computing is a stack of classes whose linearization is in progress,
	// for cycle and depth detection across recursive parent resolution.
	computing []Class
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithNextMethodCacheSize bounds the next-method memoization cache. The
// default is 512 entries.
func WithNextMethodCacheSize(n int) Option {
	return func(c *Context) { c.nextMethodCacheSize = n }
}

// WithDefaultAlgorithm sets the algorithm newly-seen classes start with.
// The algorithm must already be registered, or name must be "dfs" or "c3"
// (registered automatically by NewContext). The default is "dfs".
func WithDefaultAlgorithm(name string) Option {
	return func(c *Context) { c.defaultAlgoName = name }
}

// NewContext constructs a Context over table, with the built-in "dfs" and
// "c3" algorithms pre-registered.
func NewContext(table ClassTable, opts ...Option) *Context {
	c := &Context{
		classTable:          table,
		algorithms:          make(map[string]*Algorithm),
		defaultAlgoName:     "dfs",
		meta:                make(map[Class]*classMeta),
		isarev:              make(map[string]map[Class]struct{}),
		nextMethodCacheSize: defaultNextMethodCacheSize,
	}

	dfsAlgo := NewAlgorithm("dfs", linearizeDFS)
	c3Algo := NewAlgorithm("c3", linearizeC3)
	c.algorithms[dfsAlgo.name] = dfsAlgo
	c.algorithms[c3Algo.name] = c3Algo

	for _, opt := range opts {
		opt(c)
	}

	switch c.defaultAlgoName {
	case "dfs":
		c.defaultAlgoIdentity = dfsAlgo.identity
	case "c3":
		c.defaultAlgoIdentity = c3Algo.identity
	default:
		if a, ok := c.algorithms[c.defaultAlgoName]; ok {
			c.defaultAlgoIdentity = a.identity
		}
	}

	cache, err := lru.New(c.nextMethodCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which only a
		// WithNextMethodCacheSize(n) with n <= 0 can supply.
		panic(err)
	}
	c.nextMethodCache = cache

	return c
}

func (c *Context) resolve(name string) (Class, bool) {
	return c.classTable.Resolve(name)
}

func className(class Class) (string, bool) {
	names := class.Names()
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// SetAlgorithm pins class to the named algorithm. class's cached
// linearization is dropped and its cache_gen bumped, and the context-wide
// next-method cache is purged; its pkg_gen is untouched, since no parent
// or method-table mutation occurred (mro.c's Perl_mro_set_mro: "only
// local cache invalidation needed").
func (c *Context) SetAlgorithm(class Class, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	algo, err := c.lookupAlgorithm(name)
	if err != nil {
		return err
	}
	m := c.metaFor(class)
	m.algoName = name
	m.algo = algo.identity
	m.cacheGen++
	m.clearLinearization()
	c.nextMethodCache.Purge()
	return nil
}

// AlgorithmName returns the algorithm currently bound to class.
func (c *Context) AlgorithmName(class Class) string {
	// Write lock: metaFor creates class's metadata on first touch.
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metaFor(class).algoName
}

// PkgGen returns class's current generation counter.
func (c *Context) PkgGen(class Class) uint64 {
	// Write lock: metaFor creates class's metadata on first touch.
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metaFor(class).pkgGen
}

// IsUniversal reports whether name is the universal base implicit in
// every class's isa-set (it is not listed in Linearization.Names).
func (c *Context) IsUniversal(name string) bool {
	return name == universalName
}

// InvalidateAllMethodCaches bumps the global sub-generation counter,
// signalling every host-side dispatch cache (outside this package) to
// recheck its entries, mirroring PL_sub_generation++ in mro.c.
func (c *Context) InvalidateAllMethodCaches() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subGeneration++
	c.nextMethodCache.Purge()
}

// LinearISA returns class's linearization, computing and caching it if
// stale. An optional algo name overrides the class's bound algorithm for
// this call only, without touching its current_algo or cache (mro.c's
// Perl_mro_get_linear_isa two-argument form).
func (c *Context) LinearISA(class Class, algo ...string) (*Linearization, error) {
	if len(algo) > 0 {
		return c.linearWithOverride(class, algo[0])
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linearLocked(class)
}

func (c *Context) linearWithOverride(class Class, algoName string) (*Linearization, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Deliberately bypasses the cache: an override computes a
	// linearization under a foreign algorithm without disturbing class's
	// bound algorithm or cached result.
	return c.computeLinearization(class, algoName)
}

// maxLinearizationDepth bounds recursive parent resolution, mirroring
// mro.c's hardcoded depth-100 check in S_mro_get_linear_isa_dfs.
const maxLinearizationDepth = 100

// linearLocked computes (or returns the cached) linearization for class.
// Callers must hold c.mu for writing, since a cache miss mutates meta and
// may recurse into parents' own linearizations.
func (c *Context) linearLocked(class Class) (*Linearization, error) {
	m := c.metaFor(class)
	if !m.stale() {
		return m.linear.clone(), nil
	}

	lin, err := c.computeLinearization(class, m.algoName)
	if err != nil {
		return nil, err
	}

	m.store(lin)
	c.reindexLocked(class, lin)
	return lin.clone(), nil
}

// computeLinearization runs algoName's linearizer over class, guarding
// against cycles and excessive recursion depth, and synthesizing a
// canonical head (spec step "get_linear_isa" §4.4.3) when a custom
// algorithm's result doesn't already start with class's own name.
// Callers must hold c.mu.
func (c *Context) computeLinearization(class Class, algoName string) (*Linearization, error) {
	name, ok := className(class)
	if !ok {
		return nil, errAnonymousClass()
	}

	for _, onStack := range c.computing {
		if onStack == class {
			return nil, errRecursiveInheritance(name)
		}
	}
	if len(c.computing) >= maxLinearizationDepth {
		return nil, errRecursiveInheritance(name)
	}
	c.computing = append(c.computing, class)
	defer func() { c.computing = c.computing[:len(c.computing)-1] }()

	algo, err := c.lookupAlgorithm(algoName)
	if err != nil {
		return nil, err
	}
	lin, err := algo.linearize(c, class)
	if err != nil {
		return nil, err
	}

	return ensureCanonicalHead(name, lin), nil
}

// ensureCanonicalHead guarantees lin's first element is name, prepending
// and deduplicating if a custom algorithm omitted it.
func ensureCanonicalHead(name string, lin *Linearization) *Linearization {
	if len(lin.Names) > 0 && lin.Names[0] == name {
		return lin
	}
	names := append([]string{name}, lin.Names...)
	return &Linearization{Names: dedupPreserveFirst(names)}
}

// parentEntry is one position in class's declared parent list: either a
// resolved parent (carrying its own linearization) or a dangling name that
// didn't resolve via the class table. Keeping resolved and unresolved
// parents in a single ordered sequence, rather than splitting them into two
// slices, preserves the declared parent order required by spec §4.2 (a
// dangling parent interleaved between resolvable ones must stay in its
// original position) and by C3's tie-break sequence P (spec §4.3).
type parentEntry struct {
	name     string
	resolved bool
	lin      *Linearization
}

// parentEntries resolves each of class's parents in declared order,
// linearizing the ones that resolve (each under its own bound algorithm, so
// a hierarchy may freely mix algorithms class by class) and keeping the
// rest as bare names at their original position.
func (c *Context) parentEntries(class Class) ([]parentEntry, error) {
	entries := make([]parentEntry, 0, len(class.ParentNames()))
	for _, pname := range class.ParentNames() {
		parent, ok := c.resolve(pname)
		if !ok {
			entries = append(entries, parentEntry{name: pname})
			continue
		}
		if parent == class {
			n, _ := className(class)
			return nil, errRecursiveInheritance(n)
		}
		lin, err := c.linearLocked(parent)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parentEntry{name: pname, resolved: true, lin: lin})
	}
	return entries, nil
}

// ISARev returns the names of classes currently linearized to include
// name as a proper ancestor (name's known transitive subclasses, never
// name itself).
func (c *Context) ISARev(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subs, ok := c.isarev[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(subs))
	for sub := range subs {
		if n, ok := className(sub); ok {
			out = append(out, n)
		}
	}
	return out
}

// indexISARevLocked records class under every ancestor name in lin,
// excluding class's own name(s): R[X] holds the names of classes for
// which X is a proper ancestor, never the class itself.
func (c *Context) indexISARevLocked(class Class, lin *Linearization) {
	self := make(map[string]struct{})
	for _, n := range class.Names() {
		self[n] = struct{}{}
	}
	for _, name := range lin.Names {
		if _, isSelf := self[name]; isSelf {
			continue
		}
		set, ok := c.isarev[name]
		if !ok {
			set = make(map[Class]struct{})
			c.isarev[name] = set
		}
		set[class] = struct{}{}
	}
}
