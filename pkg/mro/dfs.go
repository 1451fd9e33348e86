package mro

// linearizeDFS computes a depth-first, pre-order linearization with
// first-occurrence deduplication: class itself, then each parent's own
// linearization in declaration order, flattened and deduplicated.
// UNIVERSAL is not appended to the name list itself; it is implicit in
// every class's isa-set (see classMeta.store).
func linearizeDFS(ctx *Context, class Class) (*Linearization, error) {
	name, ok := className(class)
	if !ok {
		return nil, errAnonymousClass()
	}

	entries, err := ctx.parentEntries(class)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, 1+len(entries))
	names = append(names, name)
	for _, e := range entries {
		if e.resolved {
			names = append(names, e.lin.Names...)
		} else {
			names = append(names, e.name)
		}
	}
	names = dedupPreserveFirst(names)

	return &Linearization{Names: names}, nil
}
