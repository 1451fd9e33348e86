package mro

// removeFromISARevLocked drops class from every isarev entry except the
// ones named in keep, mirroring mro.c's S_mro_clean_isarev: a class whose
// linearization is being recomputed must not linger in stale reverse
// entries for names it no longer (or not yet) inherits from.
func (c *Context) removeFromISARevLocked(class Class, keep map[string]struct{}) {
	for name, subs := range c.isarev {
		if _, skip := keep[name]; skip {
			continue
		}
		if _, present := subs[class]; !present {
			continue
		}
		delete(subs, class)
		if len(subs) == 0 {
			delete(c.isarev, name)
		}
	}
}

// reindexLocked recomputes class's isarev membership: first stripping it
// from every entry not named in its current (freshly computed)
// linearization, then adding it wherever that linearization says it
// belongs.
func (c *Context) reindexLocked(class Class, lin *Linearization) {
	keep := make(map[string]struct{}, len(lin.Names))
	for _, n := range lin.Names {
		keep[n] = struct{}{}
	}
	c.removeFromISARevLocked(class, keep)
	c.indexISARevLocked(class, lin)
}

// directSubclassesLocked returns the classes whose own linearization
// includes name as a transitive base, restricted to those for which we
// hold metadata (i.e. classes this Context has already linearized at
// least once).
func (c *Context) directSubclassesLocked(name string) []Class {
	subs, ok := c.isarev[name]
	if !ok {
		return nil
	}
	out := make([]Class, 0, len(subs))
	for class := range subs {
		out = append(out, class)
	}
	return out
}
