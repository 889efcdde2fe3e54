// Package dedup provides the identity and duplicate checks shared by every
// merge step.
//
// All helpers take an explicit equality function instead of relying on
// struct comparison, so that each entity kind decides what "the same" means:
// name + scope for user variables and lists, string equality for broadcast
// messages, name for looks and sounds. Method expressions such as
// model.UserVariable.Equal plug in directly.
package dedup

// HasDuplicates reports whether any two elements of items compare equal.
// It is pure and runs in O(n²), which is fine for the collection sizes of a
// single project.
func HasDuplicates[T any](items []T, equal func(a, b T) bool) bool {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if equal(items[i], items[j]) {
				return true
			}
		}
	}
	return false
}

// FirstDuplicate returns the index pair of the first two equal elements, or
// (-1, -1) when items is duplicate-free.
func FirstDuplicate[T any](items []T, equal func(a, b T) bool) (int, int) {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if equal(items[i], items[j]) {
				return i, j
			}
		}
	}
	return -1, -1
}

// Contains reports whether items holds an element equal to x.
func Contains[T any](items []T, x T, equal func(a, b T) bool) bool {
	for _, it := range items {
		if equal(it, x) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of sub has an equal element in
// super. An empty sub is contained in anything.
func ContainsAll[T any](super, sub []T, equal func(a, b T) bool) bool {
	for _, x := range sub {
		if !Contains(super, x, equal) {
			return false
		}
	}
	return true
}

// AppendMissing appends to dst every element of src that is not already
// present in dst, preserving src order, and returns the extended slice.
// Elements repeated inside src are appended once.
func AppendMissing[T any](dst, src []T, equal func(a, b T) bool) []T {
	for _, x := range src {
		if !Contains(dst, x, equal) {
			dst = append(dst, x)
		}
	}
	return dst
}
