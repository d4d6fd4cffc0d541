// Package skew builds suffix arrays of bounded integer sequences with the
// Kärkkäinen–Sanders skew (DC3) algorithm: sample suffixes at positions
// not divisible by 3 are ranked through a 3-symbol window sort (recursing
// on the rank sequence when windows collide), the remaining suffixes are
// sorted against those ranks, and the two orders are merged.
//
// The package also exports the generic sorting primitives the
// construction is made of (BucketSort, RadixSort, Ranks,
// HasAdjacentDuplicate); they carry no suffix-array assumptions.
package skew

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeSymbol = errors.New("skew: negative symbol")
	ErrSymbolTooLarge = errors.New("skew: symbol exceeds declared maximum")
)

// windowWidth is the comparison depth that distinguishes sample suffixes
// before recursion takes over.
const windowWidth = 3

// Builder configures suffix array construction for one sequence.
type Builder struct {
	seq    []int
	max    int
	hasMax bool
}

func NewBuilder(seq []int) *Builder {
	return &Builder{seq: seq}
}

// MaxSymbol declares the largest symbol value in the sequence, skipping
// the scan Build would otherwise run to size the sort buckets. Symbols
// above the declared maximum are rejected by Build.
func (b *Builder) MaxSymbol(max int) *Builder {
	b.max = max
	b.hasMax = true
	return b
}

// Build validates the sequence and returns its suffix array: the
// permutation of [0, len(seq)) that lists suffix start positions in
// ascending lexicographic order, with the conceptual terminator past the
// end of the sequence smaller than every symbol.
//
// Validation runs eagerly, before any sorting: a negative symbol, or a
// symbol above a declared maximum, fails the whole call with no partial
// result.
func (b *Builder) Build() ([]int, error) {
	maxSym := 0
	for i, s := range b.seq {
		switch {
		case s < 0:
			return nil, fmt.Errorf("%w: %d at position %d", ErrNegativeSymbol, s, i)
		case b.hasMax && s > b.max:
			return nil, fmt.Errorf("%w: %d at position %d, declared maximum %d", ErrSymbolTooLarge, s, i, b.max)
		case s > maxSym:
			maxSym = s
		}
	}
	if b.hasMax {
		maxSym = b.max
	}
	return suffixArray(b.seq, maxSym), nil
}

// SuffixArray returns the suffix array of seq. It is shorthand for
// NewBuilder(seq).Build().
func SuffixArray(seq []int) ([]int, error) {
	return NewBuilder(seq).Build()
}

// suffixArray computes the suffix array of seq, whose symbols must all
// lie in [0, maxSym]. Each recursion level works on a sequence at most
// 2/3 the length of its caller's, so the call depth is O(log n).
func suffixArray(seq []int, maxSym int) []int {
	n := len(seq)
	out := make([]int, n)
	if n <= 1 {
		return out
	}

	// Stage 1: sample positions and their sort order. Each sample suffix
	// is keyed by its window of up to 3 symbols; a window truncated by
	// the end of the sequence sorts before every extension of it.
	samples := samplePositions(n)
	m := len(samples)
	order := RadixSort(samples, windowWidth, maxSym, func(p, k int) (int, bool) {
		if p+k >= n {
			return 0, false
		}
		return seq[p+k], true
	})

	// Stage 2: dense ranks over the sorted windows, scattered back into
	// sample order.
	sortedRanks := Ranks(order, func(a, b int) bool {
		return windowsEqual(seq, samples[a], samples[b])
	})
	rankBySample := make([]int, m)
	for k, idx := range order {
		rankBySample[idx] = sortedRanks[k]
	}

	// Stage 3: if two windows collided, 3 symbols were not enough to
	// order the sample suffixes; the rank sequence, read in sample
	// order, is itself a sequence over the alphabet of ranks, and its
	// suffix array is the true sample order. Unique ranks are already a
	// total order and can be read off directly: rank r sits at sorted
	// position r-1.
	sortedSamples := make([]int, m)
	if HasAdjacentDuplicate(sortedRanks, func(a, b int) bool { return a == b }) {
		sub := suffixArray(rankBySample, sortedRanks[m-1])
		for k, idx := range sub {
			sortedSamples[k] = samples[idx]
		}
	} else {
		for idx, r := range rankBySample {
			sortedSamples[r-1] = samples[idx]
		}
	}

	// Stage 4: final rank table over positions 0..n, plus two trailing
	// sentinel slots left at rank 0 so comparisons past the end of the
	// sequence resolve as smallest.
	rank := make([]int, n+3)
	for k, p := range sortedSamples {
		rank[p] = k + 1
	}

	// Stage 5: sort the mod-0 suffixes by the pair (first symbol, rank
	// of the suffix one position later). Position i+1 is always a
	// sample position, so its rank is already final. Two stable bucket
	// passes, least significant first.
	nonsample := make([]int, 0, n/3+1)
	for i := 0; i < n; i += 3 {
		nonsample = append(nonsample, i)
	}
	tail := BucketSort(nonsample, m, func(p int) int { return rank[p+1] })
	byTail := make([]int, len(nonsample))
	for k, j := range tail {
		byTail[k] = nonsample[j]
	}
	head := BucketSort(byTail, maxSym, func(p int) int { return seq[p] })
	sortedNonsample := make([]int, len(byTail))
	for k, j := range head {
		sortedNonsample[k] = byTail[j]
	}

	// Stage 6: two-pointer merge of the two sorted orders. When the
	// sample list carries the virtual terminator position n, it sorted
	// first and is not a real suffix, so the sample pointer starts past
	// it.
	s, t, k := 0, 0, 0
	if n%3 == 1 {
		s = 1
	}
	for s < m && t < len(sortedNonsample) {
		if sampleFirst(seq, rank, sortedSamples[s], sortedNonsample[t]) {
			out[k] = sortedSamples[s]
			s++
		} else {
			out[k] = sortedNonsample[t]
			t++
		}
		k++
	}
	for ; s < m; s++ {
		out[k] = sortedSamples[s]
		k++
	}
	for ; t < len(sortedNonsample); t++ {
		out[k] = sortedNonsample[t]
		k++
	}
	return out
}

// samplePositions lists the positions of the sample suffixes of a
// sequence of length n: the mod-1 positions ascending, then the mod-2
// positions ascending. When n%3 == 1 a virtual position n joins the end
// of the mod-1 block; its empty window is the unique smallest, so the
// renamed mod-1 block ends with a terminator rank and comparisons inside
// the recursion never run across the block boundary undecided.
func samplePositions(n int) []int {
	c := make([]int, 0, 2*n/3+2)
	for i := 1; i < n; i += 3 {
		c = append(c, i)
	}
	if n%3 == 1 {
		c = append(c, n)
	}
	for i := 2; i < n; i += 3 {
		c = append(c, i)
	}
	return c
}

// sampleIndex maps a sample position back to its index in
// samplePositions(n). It is the inverse of indexing that list.
func sampleIndex(n, p int) int {
	if p%3 == 1 {
		return p / 3
	}
	return mod1Count(n) + p/3
}

// mod1Count is the size of the mod-1 block of samplePositions(n),
// counting the virtual position when present.
func mod1Count(n int) int {
	c := (n + 1) / 3
	if n%3 == 1 {
		c++
	}
	return c
}

// windowsEqual reports whether the windows of up to windowWidth symbols
// at positions p and q are identical, truncation included.
func windowsEqual(seq []int, p, q int) bool {
	n := len(seq)
	for k := 0; k < windowWidth; k++ {
		if (p+k < n) != (q+k < n) {
			return false
		}
		if p+k < n && seq[p+k] != seq[q+k] {
			return false
		}
	}
	return true
}

// sampleFirst reports whether the sample suffix at i sorts at or before
// the mod-0 suffix at j. A mod-1 suffix is compared through the pair
// (symbol, rank one later); a mod-2 suffix needs two symbols before its
// rank lookup lands on a sample position. Ties favor the sample side,
// keeping the merge deterministic.
func sampleFirst(seq, rank []int, i, j int) bool {
	if seq[i] != seq[j] {
		return seq[i] < seq[j]
	}
	if i%3 == 1 {
		return rank[i+1] <= rank[j+1]
	}
	si, sj := symbolAt(seq, i+1), symbolAt(seq, j+1)
	if si != sj {
		return si < sj
	}
	return rank[i+2] <= rank[j+2]
}

// symbolAt reads seq[p], standing in the terminator, smaller than every
// real symbol, for positions past the end.
func symbolAt(seq []int, p int) int {
	if p >= len(seq) {
		return -1
	}
	return seq[p]
}
