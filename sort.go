package skew

import "golang.org/x/exp/constraints"

// BucketSort stably sorts items by key and returns their indices grouped
// by ascending key, insertion order preserved within a bucket.
// Every key must lie in [0, maxKey]. O(n + maxKey) time.
func BucketSort[E any, K constraints.Integer](items []E, maxKey K, key func(E) K) []int {
	counts := make([]int, int(maxKey)+1)
	for _, e := range items {
		counts[key(e)]++
	}

	// exclusive prefix sums turn counts into bucket offsets
	sum := 0
	for k, c := range counts {
		counts[k] = sum
		sum += c
	}

	out := make([]int, len(items))
	for i, e := range items {
		k := key(e)
		out[counts[k]] = i
		counts[k]++
	}
	return out
}

// RadixSort sorts items lexicographically, treating each item as a
// sequence of sub-elements addressed by at(item, pos) for pos in
// [0, width). It runs one stable BucketSort pass per position, from the
// last position down to the first (least-significant-first).
//
// at reports (key, true) for a present sub-element, with key in
// [0, maxKey], and ok == false when the item is shorter than pos.
// Absence sorts strictly before every real key, so a strict prefix of
// another sequence always sorts before it.
//
// The returned slice holds the indices of items in sorted order.
func RadixSort[E any, K constraints.Integer](items []E, width int, maxKey K, at func(E, int) (K, bool)) []int {
	perm := make([]int, len(items))
	for i := range perm {
		perm[i] = i
	}

	for pos := width - 1; pos >= 0; pos-- {
		// Key 0 is reserved for "absent"; real keys shift by +1.
		pass := BucketSort(perm, maxKey+1, func(idx int) K {
			if v, ok := at(items[idx], pos); ok {
				return v + 1
			}
			return 0
		})
		next := make([]int, len(perm))
		for k, j := range pass {
			next[k] = perm[j]
		}
		perm = next
	}
	return perm
}

// Ranks assigns dense 1-based ranks to an already sorted index list.
// The first index gets rank 1; each subsequent index shares its
// predecessor's rank when eq judges them equal and gets the next rank
// otherwise. The result is aligned with sorted and is non-decreasing.
func Ranks(sorted []int, eq func(a, b int) bool) []int {
	ranks := make([]int, len(sorted))
	r := 0
	for k, idx := range sorted {
		if k == 0 || !eq(sorted[k-1], idx) {
			r++
		}
		ranks[k] = r
	}
	return ranks
}

// HasAdjacentDuplicate reports whether any two sequentially adjacent
// elements are equal under eq.
func HasAdjacentDuplicate[E any](items []E, eq func(a, b E) bool) bool {
	for i := 1; i < len(items); i++ {
		if eq(items[i-1], items[i]) {
			return true
		}
	}
	return false
}
