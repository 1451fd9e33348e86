package mro

// OnParentsChanged notifies the context that class's own parent list was
// mutated by the caller. class's cache is invalidated, along with every
// class currently known to transitively inherit from it — the isarev
// entry for class's name already holds that full transitive set, since
// each class was indexed under every ancestor name in its own
// linearization when last computed.
//
// Every affected class has its cache cleared before any of them are
// recomputed (mirroring mro.c's two-pass Perl_mro_isa_changed_in, which
// avoids a subclass being recomputed against a parent that hasn't been
// invalidated yet). Recomputation then proceeds for every affected class
// even if one fails, and the first error encountered is returned.
func (c *Context) OnParentsChanged(class Class) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onParentsChangedLocked(class)
}

func (c *Context) onParentsChangedLocked(class Class) error {
	name, ok := className(class)
	if !ok {
		return errAnonymousClass()
	}

	affected := c.directSubclassesLocked(name)
	global := c.globalInvalidationScopeLocked(name)

	m := c.metaFor(class)
	m.clearLinearization()
	m.pkgGen++
	if global {
		c.subGeneration++
	} else {
		m.cacheGen++
	}

	for _, sub := range affected {
		sm := c.metaFor(sub)
		sm.clearLinearization()
		if !global {
			sm.cacheGen++
		}
	}
	c.nextMethodCache.Purge()

	var first error
	if _, err := c.linearLocked(class); err != nil && first == nil {
		first = err
	}
	for _, sub := range affected {
		if _, err := c.linearLocked(sub); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// globalInvalidationScopeLocked reports whether a change to name should
// be treated as globally significant: name is itself "UNIVERSAL", or
// "UNIVERSAL" is currently one of name's transitive subclasses. Such a
// change bumps the process-wide sub-generation counter instead of a
// per-class cache_gen, since every class in the universe implicitly
// depends on UNIVERSAL.
func (c *Context) globalInvalidationScopeLocked(name string) bool {
	if name == universalName {
		return true
	}
	for _, sub := range c.directSubclassesLocked(name) {
		if n, ok := className(sub); ok && n == universalName {
			return true
		}
	}
	return false
}

// OnMethodChanged notifies the context that class's own method table was
// mutated. No linearization is invalidated — a method edit never changes
// ancestry — but class's pkg_gen bumps, and every transitive subclass's
// cache_gen bumps (or, in UNIVERSAL's global-invalidation scope, the
// process-wide sub-generation counter bumps instead), mirroring
// Perl_mro_method_changed_in.
func (c *Context) OnMethodChanged(class Class) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name, ok := className(class)
	if !ok {
		return errAnonymousClass()
	}

	m := c.metaFor(class)
	m.pkgGen++

	if c.globalInvalidationScopeLocked(name) {
		c.subGeneration++
		c.nextMethodCache.Purge()
		return nil
	}

	for _, sub := range c.directSubclassesLocked(name) {
		c.metaFor(sub).cacheGen++
	}
	c.nextMethodCache.Purge()
	return nil
}
