// Package sorting holds the sorting algorithms being measured and adapters
// for the standard library sort used as the reference implementation.
package sorting

import "cmp"

// InsertionSort sorts s in place into non-decreasing order and returns s.
// It does a single comparison per element on already sorted input.
func InsertionSort[S ~[]E, E cmp.Ordered](s S) S {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && key < s[j] {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
	return s
}

// InsertionSortFunc is InsertionSort with a caller supplied ordering.
func InsertionSortFunc[S ~[]E, E any](s S, less func(a, b E) bool) S {
	for i := 1; i < len(s); i++ {
		key := s[i]
		j := i - 1
		for j >= 0 && less(key, s[j]) {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = key
	}
	return s
}

// MergeSort returns a new slice holding the elements of s in non-decreasing
// order. s is never modified. Equal elements keep their relative order.
func MergeSort[S ~[]E, E cmp.Ordered](s S) S {
	if len(s) <= 1 {
		out := make(S, len(s))
		copy(out, s)
		return out
	}

	mid := len(s) / 2
	left := MergeSort(s[:mid])
	right := MergeSort(s[mid:])

	return merge(left, right)
}

// merge combines two sorted slices. The right front is taken only when it is
// strictly smaller, so ties resolve to the left half and the sort stays stable.
func merge[S ~[]E, E cmp.Ordered](left, right S) S {
	merged := make(S, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if right[j] < left[i] {
			merged = append(merged, right[j])
			j++
		} else {
			merged = append(merged, left[i])
			i++
		}
	}

	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}

// MergeSortFunc is MergeSort with a caller supplied ordering.
func MergeSortFunc[S ~[]E, E any](s S, less func(a, b E) bool) S {
	if len(s) <= 1 {
		out := make(S, len(s))
		copy(out, s)
		return out
	}

	mid := len(s) / 2
	left := MergeSortFunc(s[:mid], less)
	right := MergeSortFunc(s[mid:], less)

	return mergeFunc(left, right, less)
}

func mergeFunc[S ~[]E, E any](left, right S, less func(a, b E) bool) S {
	merged := make(S, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if less(right[j], left[i]) {
			merged = append(merged, right[j])
			j++
		} else {
			merged = append(merged, left[i])
			i++
		}
	}

	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}
