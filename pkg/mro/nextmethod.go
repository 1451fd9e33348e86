package mro

import "strings"

// nextMethodKey identifies a memoized next-method lookup: a caller frame
// (the class whose method body is currently executing, qualified with the
// method name) as seen from a particular invocant's linearization.
type nextMethodKey struct {
	invocant Class
	caller   string
}

type nextMethodResult struct {
	entry MethodEntry
	found bool
	gen   uint64
}

// NextMethod resolves the implementation the next::method construct
// would dispatch to: the first method named by the part of callerFQName
// after the last "::" found in invocant's linearization strictly after
// the class named by the part before it, skipping any entry that is
// itself a memoized dispatch cache rather than a genuine definition.
//
// If throw is true and no further implementation exists, a NoNextMethod
// error is returned; otherwise a nil entry and nil error indicate the
// search was exhausted.
func (c *Context) NextMethod(invocant Class, callerFQName string, throw bool) (MethodEntry, error) {
	callerClass, methodName, ok := splitFQName(callerFQName)
	if !ok {
		return nil, errNoNextMethod(callerFQName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := nextMethodKey{invocant: invocant, caller: callerFQName}
	if cached, ok := c.nextMethodCache.Get(key); ok {
		res := cached.(nextMethodResult)
		if res.gen == c.subGeneration {
			if !res.found {
				if throw {
					return nil, errNoNextMethod(callerFQName)
				}
				return nil, nil
			}
			return res.entry, nil
		}
		c.nextMethodCache.Remove(key)
	}

	// next-method always walks the C3 linearization regardless of
	// invocant's own bound algorithm (spec §4.9 step 2); this never
	// touches invocant's cached linearization or current_algo.
	lin, err := c.computeLinearization(invocant, "c3")
	if err != nil {
		return nil, err
	}

	start := -1
	for i, n := range lin.Names {
		if n == callerClass {
			start = i + 1
			break
		}
	}

	var found MethodEntry
	if start >= 0 {
		for _, name := range lin.Names[start:] {
			cls, ok := c.resolve(name)
			if !ok {
				continue
			}
			entry, ok := cls.Methods().Lookup(methodName)
			if !ok || entry.IsDispatchCache() {
				continue
			}
			found = entry
			break
		}
	}

	c.nextMethodCache.Add(key, nextMethodResult{entry: found, found: found != nil, gen: c.subGeneration})

	if found == nil {
		if throw {
			return nil, errNoNextMethod(callerFQName)
		}
		return nil, nil
	}
	return found, nil
}

func splitFQName(fq string) (class, method string, ok bool) {
	i := strings.LastIndex(fq, "::")
	if i < 0 {
		return "", "", false
	}
	return fq[:i], fq[i+2:], true
}
