package mro

// moveState is the tri-state marker used while walking a moved namespace,
// mirroring mro.c's seen_stashes sentinel values (&PL_sv_undef / &PL_sv_no
// / &PL_sv_yes): a class is either unvisited, currently being visited (to
// catch a namespace that nests itself), or fully processed.
type moveState int

const (
	moveUnseen moveState = iota
	moveVisiting
	moveDone
)

// OnClassMoved notifies the context that a namespace rename moved
// oldClass to newClass's current name. Both the old and the new namespace
// subtrees are walked (spec §4.7 step 1): every class nested directly or
// transitively under newClass moved along with it and is re-indexed under
// its current name; every class reachable from oldClass's own (pre-move)
// subtree but no longer reachable from newClass's was deleted or replaced
// by the move and has its reverse-ISA membership scrubbed (spec §4.7 step
// 5), so it doesn't linger in Context.isarev forever. Every class that had
// oldClass's former name in its linearization (the isarev entry for that
// name) is invalidated and recomputed, since the symbol it depended on no
// longer resolves the way it used to.
//
// Unless flags includes SkipExistenceCheck, the move is a no-op when slot
// no longer actually contains newClass (it moved again before this call
// ran).
func (c *Context) OnClassMoved(newClass, oldClass Class, slot Slot, flags MoveFlags) error {
	if flags&SkipExistenceCheck == 0 && slot != nil && !slot.Contains(newClass) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	newName, ok := className(newClass)
	if !ok {
		return errAnonymousClass()
	}

	newGathered, err := c.gatherMovedNamespace(newClass, make(map[Class]moveState))
	if err != nil {
		return err
	}
	oldGathered, err := c.gatherMovedNamespace(oldClass, make(map[Class]moveState))
	if err != nil {
		return err
	}

	newSet := make(map[Class]struct{}, len(newGathered))
	for _, cls := range newGathered {
		newSet[cls] = struct{}{}
	}
	for _, cls := range oldGathered {
		if _, stillPresent := newSet[cls]; stillPresent {
			continue
		}
		// Only ever reachable through the old subtree: this class was
		// deleted (or replaced by something else at the same nested
		// key) by the move, so its reverse-ISA entries and metadata
		// would otherwise never be reclaimed.
		c.removeFromISARevLocked(cls, nil)
		delete(c.meta, cls)
	}

	// Rename-before-invalidate: every affected class is renamed into the
	// new namespace (the caller already did this before invoking
	// OnClassMoved) before any of them runs on_parents_changed-equivalent
	// invalidation, so no subclass ever observes a half-renamed ancestor.
	var first error
	for _, cls := range newGathered {
		if err := c.onParentsChangedLocked(cls); err != nil && first == nil {
			first = err
		}
	}

	if oldName, ok := className(oldClass); ok && oldName != newName {
		for _, sub := range c.directSubclassesLocked(oldName) {
			if err := c.onParentsChangedLocked(sub); err != nil && first == nil {
				first = err
			}
		}
	}

	return first
}

// gatherMovedNamespace collects root and every class reachable through
// its Nested() iterator, refusing to revisit a class already being
// visited on the current path (a self-nesting namespace is rejected as
// RecursiveInheritance rather than silently looping).
func (c *Context) gatherMovedNamespace(root Class, seen map[Class]moveState) ([]Class, error) {
	switch seen[root] {
	case moveDone:
		return nil, nil
	case moveVisiting:
		name, _ := className(root)
		return nil, errRecursiveInheritance(name)
	}
	seen[root] = moveVisiting

	out := []Class{root}
	for _, nested := range root.Nested() {
		if nested == nil {
			continue
		}
		children, err := c.gatherMovedNamespace(nested, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, children...)
	}

	seen[root] = moveDone
	return out, nil
}
