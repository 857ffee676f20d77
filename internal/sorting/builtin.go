package sorting

import (
	"cmp"
	"slices"
)

// Builtin sorts s in place with the standard library sort and returns s.
func Builtin[S ~[]E, E cmp.Ordered](s S) S {
	slices.Sort(s)
	return s
}

// BuiltinSorted returns a sorted copy of s using the standard library sort.
func BuiltinSorted[S ~[]E, E cmp.Ordered](s S) S {
	return S(slices.Sorted(slices.Values(s)))
}

// IsSorted reports whether s is in non-decreasing order.
func IsSorted[S ~[]E, E cmp.Ordered](s S) bool {
	return slices.IsSorted(s)
}
