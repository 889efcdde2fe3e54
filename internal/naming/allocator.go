package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxSuffix bounds the search for a free "(n)" suffix. Reaching it means
// the caller is generating names in a loop.
const maxSuffix = 10000

// suffixRegex matches a trailing " (n)" copy counter.
var suffixRegex = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// Allocator computes names that do not collide with a set of taken names.
//
// Comparison is exact (case-sensitive), matching how look and sound names
// are compared during a merge.
type Allocator struct {
	taken map[string]struct{}
}

// NewAllocator creates an Allocator that treats existing as already taken.
func NewAllocator(existing ...string) *Allocator {
	a := &Allocator{taken: make(map[string]struct{}, len(existing))}
	a.Reserve(existing...)
	return a
}

// Reserve marks names as taken without allocating them.
func (a *Allocator) Reserve(names ...string) {
	for _, n := range names {
		a.taken[n] = struct{}{}
	}
}

// IsTaken reports whether name is already in use.
func (a *Allocator) IsTaken(name string) bool {
	_, ok := a.taken[name]
	return ok
}

// Allocate returns base itself when it is free, or the first free
// "stem (n)" otherwise. The returned name is reserved.
func (a *Allocator) Allocate(base string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("cannot allocate a name from an empty base")
	}

	if !a.IsTaken(base) {
		a.Reserve(base)
		return base, nil
	}

	stem, start := splitSuffix(base)
	for n := start; n <= maxSuffix; n++ {
		candidate := fmt.Sprintf("%s (%d)", stem, n)
		if !a.IsTaken(candidate) {
			a.Reserve(candidate)
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %q after %d attempts", base, maxSuffix)
}

// splitSuffix separates a trailing " (n)" counter from name. It returns the
// stem and the counter value to start searching from.
func splitSuffix(name string) (string, int) {
	m := suffixRegex.FindStringSubmatch(name)
	if m == nil {
		return name, 1
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || m[1] == "" {
		return name, 1
	}
	return m[1], n + 1
}

// UniqueName is a convenience for a one-off allocation against a list of
// existing names.
func UniqueName(base string, existing []string) (string, error) {
	return NewAllocator(existing...).Allocate(base)
}
