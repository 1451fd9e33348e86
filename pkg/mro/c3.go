package mro

// linearizeC3 computes the C3 linearization: class, merged with its
// parents' own linearizations and its direct parent list, following the
// standard "good head" merge rule (a candidate must not appear in the
// tail of any remaining sequence).
func linearizeC3(ctx *Context, class Class) (*Linearization, error) {
	name, ok := className(class)
	if !ok {
		return nil, errAnonymousClass()
	}

	entries, err := ctx.parentEntries(class)
	if err != nil {
		return nil, err
	}

	// directParents preserves the declared parent order (spec §4.3's tie-
	// break sequence P): each resolved parent contributes its own head
	// name, each dangling parent contributes its bare name, in position.
	directParents := make([]string, 0, len(entries))
	resolvedCount := 0
	for _, e := range entries {
		if e.resolved {
			resolvedCount++
			if len(e.lin.Names) > 0 {
				directParents = append(directParents, e.lin.Names[0])
			}
			continue
		}
		directParents = append(directParents, e.name)
	}
	// A parent listed more than once counts once; left in, its repeat
	// would sit in P's own tail and block every merge.
	directParents = dedupPreserveFirst(directParents)

	// Single-parent fast path: a lone, fully-resolved parent's linearization
	// is already consistent, nothing to merge (mro.c S_mro_get_linear_isa_c3's
	// items==0 branch).
	if len(entries) == 1 && resolvedCount == 1 {
		names := append([]string{name}, entries[0].lin.Names...)
		return &Linearization{Names: dedupPreserveFirst(names)}, nil
	}

	seqs := make([][]string, 0, len(entries)+2)
	for _, e := range entries {
		if e.resolved {
			seqs = append(seqs, append([]string(nil), e.lin.Names...))
		}
	}
	if len(directParents) > 0 {
		seqs = append(seqs, directParents)
	}

	merged, blocking, ok := mergeC3Sequences(seqs)
	if !ok {
		partial := append([]string{name}, merged...)
		return nil, errC3Inconsistency(name, partial, blocking)
	}

	names := append([]string{name}, merged...)
	return &Linearization{Names: dedupPreserveFirst(names)}, nil
}

// mergeC3Sequences repeatedly takes the head of the first sequence that
// doesn't appear in the tail of any sequence, removes it everywhere, and
// appends it to the result. Returns ok=false with the partial result and
// the blocking head if no sequence's head is ever a valid candidate.
func mergeC3Sequences(seqs [][]string) (result []string, blocking string, ok bool) {
	seqs = cloneSeqs(seqs)

	for {
		seqs = dropEmpty(seqs)
		if len(seqs) == 0 {
			return result, "", true
		}

		var candidate string
		found := false
		for _, seq := range seqs {
			head := seq[0]
			if !inAnyTail(seqs, head) {
				candidate = head
				found = true
				break
			}
		}
		if !found {
			return result, seqs[0][0], false
		}

		result = append(result, candidate)
		for i, seq := range seqs {
			seqs[i] = removeHeadOccurrence(seq, candidate)
		}
	}
}

func inAnyTail(seqs [][]string, name string) bool {
	for _, seq := range seqs {
		for _, n := range seq[1:] {
			if n == name {
				return true
			}
		}
	}
	return false
}

func removeHeadOccurrence(seq []string, name string) []string {
	if len(seq) > 0 && seq[0] == name {
		return seq[1:]
	}
	return seq
}

func dropEmpty(seqs [][]string) [][]string {
	out := seqs[:0]
	for _, seq := range seqs {
		if len(seq) > 0 {
			out = append(out, seq)
		}
	}
	return out
}

func cloneSeqs(seqs [][]string) [][]string {
	out := make([][]string, len(seqs))
	for i, seq := range seqs {
		out[i] = append([]string(nil), seq...)
	}
	return out
}
